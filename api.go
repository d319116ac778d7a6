// Package relay provides a typed, interceptable HTTP request pipeline.
//
// A Client turns a logical request into a concrete wire request, runs it
// through an ordered interceptor chain, executes it on a transport session,
// and decodes the response into one of three result shapes:
//
//   - Send: the raw response (buffered payload plus transport metadata)
//   - Decode: a caller-supplied decodable type
//   - Model: a decoded model wrapped together with the raw transport output
//
// Every failure is funneled into a single categorized *Error, constructed
// and logged exactly once at the stage that produced it (request build,
// network, response decode, or general). Lifecycle events are emitted
// through capitan hooks, tagged with a per-send request identifier.
//
// Basic usage:
//
//	client, _ := relay.NewClientFromConfig(relay.Config{
//	    Scheme: "https",
//	    Host:   "api.example.com",
//	    HeaderFunc: func() http.Header {
//	        return http.Header{"Authorization": {"Bearer " + token()}}
//	    },
//	})
//	user, err := relay.Model[User](ctx, client, relay.Get("/users/1"))
package relay

import (
	"context"
	"net/http"
)

// Request is the caller's logical description of an API call, independent
// of transport encoding. The pipeline never inspects it; it is handed to
// the session factory and wire-request builder and attached to log events
// and errors for correlation. The standard Builder understands *Endpoint;
// custom builders may accept any type.
type Request any

// Session performs the network I/O for a single wire request. Execute
// returns the fully buffered response payload together with the transport
// response metadata. Connectivity failures should surface as *url.Error or
// net.Error values so the pipeline can classify them as network failures;
// anything else is treated as a general failure.
type Session interface {
	Execute(ctx context.Context, req *http.Request) ([]byte, *http.Response, error)
}

// SessionFactory builds the transport session for a logical request.
// Factories may vary session configuration per request, for example a
// per-host timeout policy.
type SessionFactory interface {
	Build(req Request) (Session, error)
}

// RequestBuilder derives the concrete wire request from a logical request.
type RequestBuilder interface {
	Build(req Request) (*http.Request, error)
}

// Decoder turns raw payload bytes into a typed value. Used by the Decode
// and Model result shapes; the raw Send shape never decodes.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Response is the raw result shape: the buffered payload and the transport
// response metadata, untouched by any decoder.
type Response struct {
	Body []byte
	HTTP *http.Response
}

// ModelResponse wraps a decoded model together with the raw transport
// output it was decoded from.
type ModelResponse[M any] struct {
	Model M
	Body  []byte
	HTTP  *http.Response
}
