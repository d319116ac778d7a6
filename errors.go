package relay

import (
	"errors"
	"fmt"
	"net/http"
)

// Category identifies the pipeline stage that produced a failure.
type Category string

const (
	// CategoryRequestBuild covers session construction, wire-request
	// building, and interceptor failures. Nothing was sent.
	CategoryRequestBuild Category = "request_build"

	// CategoryNetwork covers classified connectivity failures after the
	// wire request was dispatched.
	CategoryNetwork Category = "network"

	// CategoryResponseDecode covers failures turning a successful
	// transport payload into the requested result shape.
	CategoryResponseDecode Category = "response_decode"

	// CategoryGeneral covers any other failure during the network stage
	// not recognized as a connectivity error.
	CategoryGeneral Category = "general"
)

// Error is the single failure type surfaced by the pipeline. It is
// constructed once per failing send, logged once at the stage where the
// failure occurred, and then returned to the caller unchanged.
//
// Session and Wire are populated for network and general failures only,
// carrying enough context to retry the call externally.
type Error struct {
	RequestID string
	Request   Request
	Category  Category
	Session   Session
	Wire      *http.Request
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("relay: %s: %v", e.Category, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// CategoryOf extracts the pipeline category from an error chain. Callers
// pattern-match on the category to decide retry, backoff, or user
// messaging outside the pipeline.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return "", false
}
