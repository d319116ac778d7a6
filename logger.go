package relay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zoobzio/capitan"
)

// Logger receives pipeline lifecycle events, each tagged with the request
// identifier and the logical request they belong to. Loggers are pure
// side-effect consumers: implementations must not fail and must not block
// the send path.
type Logger interface {
	// RequestSent fires once per send that completes the build stage,
	// immediately before the transport call.
	RequestSent(ctx context.Context, id string, req Request, session Session, wire *http.Request)

	// ResponseReceived fires once per send whose transport call succeeds.
	ResponseReceived(ctx context.Context, id string, req Request, payload []byte, meta *http.Response)

	// RequestFailed fires exactly once per failing send, at the stage
	// where the failure occurred.
	RequestFailed(ctx context.Context, id string, req Request, err *Error)
}

// HookLogger is the default Logger. It emits capitan signals so observers
// attach through capitan.Hook without the client knowing about them.
type HookLogger struct{}

func (HookLogger) RequestSent(ctx context.Context, id string, req Request, _ Session, wire *http.Request) {
	capitan.Info(ctx, RequestSent,
		RequestIDKey.Field(id),
		RequestKey.Field(describe(req)),
		MethodKey.Field(wire.Method),
		URLKey.Field(wire.URL.String()),
	)
}

func (HookLogger) ResponseReceived(ctx context.Context, id string, req Request, payload []byte, meta *http.Response) {
	capitan.Info(ctx, ResponseReceived,
		RequestIDKey.Field(id),
		RequestKey.Field(describe(req)),
		StatusKey.Field(meta.StatusCode),
		BytesKey.Field(len(payload)),
	)
}

func (HookLogger) RequestFailed(ctx context.Context, id string, req Request, err *Error) {
	capitan.Error(ctx, RequestFailed,
		RequestIDKey.Field(id),
		RequestKey.Field(describe(req)),
		CategoryKey.Field(string(err.Category)),
		ErrorKey.Field(err.Cause.Error()),
	)
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) RequestSent(context.Context, string, Request, Session, *http.Request) {}

func (NopLogger) ResponseReceived(context.Context, string, Request, []byte, *http.Response) {}

func (NopLogger) RequestFailed(context.Context, string, Request, *Error) {}

func describe(req Request) string {
	if s, ok := req.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", req)
}
