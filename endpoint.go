package relay

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Endpoint is the logical request form understood by the standard Builder:
// what to call, independent of scheme, host, and ambient headers. An empty
// Method defaults to GET.
type Endpoint struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

func (e *Endpoint) String() string {
	method := e.Method
	if method == "" {
		method = http.MethodGet
	}
	return method + " " + e.Path
}

// Get describes a GET call to path.
func Get(path string) *Endpoint {
	return &Endpoint{Method: http.MethodGet, Path: path}
}

// Post describes a POST call to path with the given body.
func Post(path string, body []byte) *Endpoint {
	return &Endpoint{Method: http.MethodPost, Path: path, Body: body}
}

// Config configures the standard Builder and the default session factory.
//
// Query and Header are eager: captured once at construction. QueryFunc and
// HeaderFunc are lazy: re-evaluated on every send, never cached, so values
// computed per call (a rotating auth token, a fresh trace header) stay
// fresh. Lazy values are merged over the eager ones; endpoint-level values
// win over both.
type Config struct {
	Scheme   string `validate:"required,oneof=http https"`
	Host     string `validate:"required"`
	BasePath string

	Query  url.Values
	Header http.Header

	QueryFunc  func() url.Values
	HeaderFunc func() http.Header

	// Timeout applies to the HTTP client behind the default session
	// factory. Zero means no timeout beyond what the transport enforces.
	Timeout time.Duration
}

func (cfg Config) doer() HTTPDoer {
	if cfg.Timeout > 0 {
		return &http.Client{Timeout: cfg.Timeout}
	}
	return http.DefaultClient
}

var validate = validator.New()

// Builder is the standard wire-request builder. It expects the logical
// request to be an *Endpoint and composes it with the configured scheme,
// host, base path, query values, and headers.
type Builder struct {
	cfg Config
}

// NewBuilder validates the configuration and captures its eager values.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("relay: invalid config: %w", err)
	}
	// Clone eager values so later caller mutation doesn't leak in.
	if cfg.Query != nil {
		query := url.Values{}
		mergeValues(query, cfg.Query)
		cfg.Query = query
	}
	if cfg.Header != nil {
		cfg.Header = cfg.Header.Clone()
	}
	return &Builder{cfg: cfg}, nil
}

func (b *Builder) Build(req Request) (*http.Request, error) {
	ep, ok := req.(*Endpoint)
	if !ok {
		return nil, fmt.Errorf("relay: standard builder expects *Endpoint, got %T", req)
	}

	method := ep.Method
	if method == "" {
		method = http.MethodGet
	}

	query := url.Values{}
	mergeValues(query, b.cfg.Query)
	if b.cfg.QueryFunc != nil {
		mergeValues(query, b.cfg.QueryFunc())
	}
	mergeValues(query, ep.Query)

	u := url.URL{
		Scheme:   b.cfg.Scheme,
		Host:     b.cfg.Host,
		Path:     joinPath(b.cfg.BasePath, ep.Path),
		RawQuery: query.Encode(),
	}

	var body io.Reader
	if len(ep.Body) > 0 {
		body = bytes.NewReader(ep.Body)
	}
	wire, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, err
	}

	mergeHeader(wire.Header, b.cfg.Header)
	if b.cfg.HeaderFunc != nil {
		mergeHeader(wire.Header, b.cfg.HeaderFunc())
	}
	mergeHeader(wire.Header, ep.Header)
	return wire, nil
}

func mergeValues(dst, src url.Values) {
	for key, values := range src {
		dst[key] = append([]string(nil), values...)
	}
}

func mergeHeader(dst http.Header, src http.Header) {
	for key, values := range src {
		dst[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
}

func joinPath(base, path string) string {
	switch {
	case base == "":
		return path
	case path == "":
		return base
	default:
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	}
}
