package relay

import (
	"context"
	"net/http"

	"github.com/zoobzio/pipz"
)

// Interceptor is a named, fallible transformation applied to a wire
// request before dispatch. Interceptors receive one wire request and
// produce a new one (or the same, unmodified). They are treated as
// stateless by the pipeline and may be reused across concurrent sends;
// an interceptor that carries mutable state must synchronize itself.
type Interceptor interface {
	// Name identifies the interceptor in chain composition and errors.
	Name() string

	// Intercept transforms the wire request. A failure aborts the send
	// before anything reaches the transport.
	Intercept(ctx context.Context, req *http.Request) (*http.Request, error)
}

// InterceptorFunc adapts a plain synchronous transformation closure into
// an Interceptor, for callers who don't need a named object.
type InterceptorFunc func(*http.Request) (*http.Request, error)

func (f InterceptorFunc) Name() string { return "inline" }

func (f InterceptorFunc) Intercept(_ context.Context, req *http.Request) (*http.Request, error) {
	return f(req)
}

// newChain composes interceptor units into a single pipz transformation.
// Units execute strictly in the order supplied; the first failure stops
// the chain with later units never running. A nil return means the unit
// list was empty and there is nothing to apply, letting the send loop
// skip the transform entirely.
func newChain(units []Interceptor) pipz.Chainable[*http.Request] {
	if len(units) == 0 {
		return nil
	}
	steps := make([]pipz.Chainable[*http.Request], len(units))
	for i, unit := range units {
		steps[i] = pipz.Apply(unit.Name(), unit.Intercept)
	}
	if len(steps) == 1 {
		return steps[0]
	}
	return pipz.NewSequence("interceptors", steps...)
}

type headerInterceptor struct {
	key, value string
}

func (h headerInterceptor) Name() string { return "set-header" }

func (h headerInterceptor) Intercept(_ context.Context, req *http.Request) (*http.Request, error) {
	req.Header.Set(h.key, h.value)
	return req, nil
}

// SetHeader returns an interceptor that sets a single header on every
// request it sees, replacing any existing value.
func SetHeader(key, value string) Interceptor {
	return headerInterceptor{key: key, value: value}
}

// UserAgent returns an interceptor that sets the User-Agent header.
func UserAgent(ua string) Interceptor {
	return headerInterceptor{key: "User-Agent", value: ua}
}
