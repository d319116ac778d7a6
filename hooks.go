package relay

import "github.com/zoobzio/capitan"

// Signals for pipeline lifecycle events.
const (
	RequestSent      = capitan.Signal("http.request.sent")
	ResponseReceived = capitan.Signal("http.response.received")
	RequestFailed    = capitan.Signal("http.request.failed")
)

// Keys for hook event fields.
var (
	// Request identification.
	RequestIDKey = capitan.NewStringKey("http.request.id")
	RequestKey   = capitan.NewStringKey("http.request.logical")

	// Wire request data.
	MethodKey = capitan.NewStringKey("http.request.method")
	URLKey    = capitan.NewStringKey("http.request.url")

	// Response data.
	StatusKey = capitan.NewIntKey("http.response.status")
	BytesKey  = capitan.NewIntKey("http.response.bytes")

	// Error information.
	CategoryKey = capitan.NewStringKey("http.error.category")
	ErrorKey    = capitan.NewStringKey("http.error")
)
