package relay

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
)

// An HTTPDoer implements a Do method in the same manner as the standard
// library http.Client from the net/http package.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// HTTPSession executes wire requests through an HTTPDoer and buffers the
// entire response body. A nil Doer falls back to http.DefaultClient.
type HTTPSession struct {
	Doer HTTPDoer
}

func (s *HTTPSession) Execute(ctx context.Context, req *http.Request) ([]byte, *http.Response, error) {
	doer := s.Doer
	if doer == nil {
		doer = http.DefaultClient
	}
	resp, err := doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, err
	}
	return payload, resp, nil
}

// HTTPSessionFactory mints one HTTPSession per send, all sharing the same
// underlying Doer. Session lifetime is scoped to a single send; connection
// reuse happens inside the shared Doer's transport.
type HTTPSessionFactory struct {
	Doer HTTPDoer
}

func (f HTTPSessionFactory) Build(Request) (Session, error) {
	return &HTTPSession{Doer: f.Doer}, nil
}

// isConnectivity reports whether err is a classified transport-layer
// failure. http.Client surfaces those as *url.Error; custom sessions may
// return any net.Error.
func isConnectivity(err error) bool {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr)
}
