package relay

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Client drives the send pipeline: it builds the wire request, applies the
// interceptor chain, executes the transport call, and decodes the result.
// All state is immutable after construction, so a Client is safe for
// concurrent use; each send owns its own request identifier, wire request,
// and error.
type Client struct {
	sessions     SessionFactory
	builder      RequestBuilder
	interceptors []Interceptor
	decoder      Decoder
	logger       Logger
}

// ClientOption configures a Client at construction.
type ClientOption func(*Client)

// WithSessionFactory replaces the default HTTP session factory.
func WithSessionFactory(f SessionFactory) ClientOption {
	return func(c *Client) { c.sessions = f }
}

// WithInterceptors sets the client's standing interceptor list. Units run
// in the declared order on every send, after any one-off interceptors
// supplied at call time.
func WithInterceptors(units ...Interceptor) ClientOption {
	return func(c *Client) { c.interceptors = units }
}

// WithDecoder replaces the default JSON decoder used by the Decode and
// Model result shapes.
func WithDecoder(d Decoder) ClientOption {
	return func(c *Client) { c.decoder = d }
}

// WithLogger replaces the default capitan-backed logger.
func WithLogger(l Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client around a wire-request builder. Defaults:
// HTTPSessionFactory over http.DefaultClient, JSONDecoder, HookLogger.
func NewClient(builder RequestBuilder, opts ...ClientOption) *Client {
	c := &Client{
		sessions: HTTPSessionFactory{},
		builder:  builder,
		decoder:  JSONDecoder{},
		logger:   HookLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig builds a client directly from endpoint configuration:
// the standard Builder plus a default session factory honoring the config
// timeout. Lazy config values (QueryFunc, HeaderFunc) are re-evaluated on
// every send; eager values are captured once here.
func NewClientFromConfig(cfg Config, opts ...ClientOption) (*Client, error) {
	builder, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	base := []ClientOption{WithSessionFactory(HTTPSessionFactory{Doer: cfg.doer()})}
	return NewClient(builder, append(base, opts...)...), nil
}

type sendConfig struct {
	interceptors []Interceptor
}

// SendOption adjusts a single send call.
type SendOption func(*sendConfig)

// WithInterceptor supplies a one-off interceptor for this send. One-off
// units run before the client's standing list, letting a single call
// pre-process what the standing interceptors would otherwise see first.
func WithInterceptor(unit Interceptor) SendOption {
	return func(cfg *sendConfig) { cfg.interceptors = append(cfg.interceptors, unit) }
}

// WithTransform supplies a one-off inline transformation closure for this
// send, with the same ordering as WithInterceptor.
func WithTransform(fn func(*http.Request) (*http.Request, error)) SendOption {
	return func(cfg *sendConfig) { cfg.interceptors = append(cfg.interceptors, InterceptorFunc(fn)) }
}

// Send executes the request and returns the raw response shape.
func (c *Client) Send(ctx context.Context, req Request, opts ...SendOption) (*Response, error) {
	return send(ctx, c, req, func(payload []byte, meta *http.Response) (*Response, error) {
		return &Response{Body: payload, HTTP: meta}, nil
	}, opts...)
}

// Decode executes the request and decodes the payload into T using the
// client's decoder.
func Decode[T any](ctx context.Context, c *Client, req Request, opts ...SendOption) (T, error) {
	return send(ctx, c, req, func(payload []byte, _ *http.Response) (T, error) {
		var v T
		if err := c.decoder.Decode(payload, &v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}, opts...)
}

// Model executes the request and returns the decoded model wrapped with
// the raw transport output. Decoding additionally verifies that all
// required JSON fields of M are present in the payload.
func Model[M any](ctx context.Context, c *Client, req Request, opts ...SendOption) (*ModelResponse[M], error) {
	return send(ctx, c, req, func(payload []byte, meta *http.Response) (*ModelResponse[M], error) {
		m, err := decodeModel[M](c.decoder, payload)
		if err != nil {
			return nil, err
		}
		return &ModelResponse[M]{Model: m, Body: payload, HTTP: meta}, nil
	}, opts...)
}

// send is the single three-stage pipeline every result shape funnels
// through. It performs exactly one await point, the transport call; no
// stage is retried, and exactly one categorized error is constructed and
// logged per failing call.
func send[T any](ctx context.Context, c *Client, req Request, construct func([]byte, *http.Response) (T, error), opts ...SendOption) (T, error) {
	var zero T
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New().String()

	// Build stage. Any failure here means nothing was sent.
	session, err := c.sessions.Build(req)
	if err != nil {
		return zero, c.fail(ctx, &Error{RequestID: id, Request: req, Category: CategoryRequestBuild, Cause: err})
	}
	wire, err := c.builder.Build(req)
	if err != nil {
		return zero, c.fail(ctx, &Error{RequestID: id, Request: req, Category: CategoryRequestBuild, Cause: err})
	}

	// One-off units run ahead of the standing list.
	units := make([]Interceptor, 0, len(cfg.interceptors)+len(c.interceptors))
	units = append(units, cfg.interceptors...)
	units = append(units, c.interceptors...)
	if chain := newChain(units); chain != nil {
		wire, err = chain.Process(ctx, wire)
		if err != nil {
			return zero, c.fail(ctx, &Error{RequestID: id, Request: req, Category: CategoryRequestBuild, Cause: err})
		}
	}

	c.logger.RequestSent(ctx, id, req, session, wire)

	// Network stage. The only suspension point; cancellation of ctx
	// propagates into the transport call.
	payload, meta, err := session.Execute(ctx, wire)
	if err != nil {
		category := CategoryGeneral
		if isConnectivity(err) {
			category = CategoryNetwork
		}
		return zero, c.fail(ctx, &Error{
			RequestID: id,
			Request:   req,
			Category:  category,
			Session:   session,
			Wire:      wire,
			Cause:     err,
		})
	}

	c.logger.ResponseReceived(ctx, id, req, payload, meta)

	// Decode stage.
	out, err := construct(payload, meta)
	if err != nil {
		return zero, c.fail(ctx, &Error{RequestID: id, Request: req, Category: CategoryResponseDecode, Cause: err})
	}
	return out, nil
}

// fail logs the categorized error once and returns it unchanged.
func (c *Client) fail(ctx context.Context, err *Error) *Error {
	c.logger.RequestFailed(ctx, err.RequestID, err.Request, err)
	return err
}
