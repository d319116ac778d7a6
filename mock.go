package relay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
)

// MockBuilder returns a fixed wire request or error. For testing.
// Safe for concurrent sends.
type MockBuilder struct {
	Request *http.Request
	Err     error

	mu    sync.Mutex
	calls int
}

func (b *MockBuilder) Build(Request) (*http.Request, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	if b.Request != nil {
		return b.Request, nil
	}
	wire, _ := http.NewRequest(http.MethodGet, "http://example.test/", nil)
	return wire, nil
}

// Calls reports how many times Build ran.
func (b *MockBuilder) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// MockSession returns a canned payload and status, or a fixed error. It
// records the last wire request it saw and how often it was invoked.
// Safe for concurrent sends.
type MockSession struct {
	Payload []byte
	Status  int
	Err     error

	mu    sync.Mutex
	calls int
	last  *http.Request
}

func (s *MockSession) Execute(_ context.Context, req *http.Request) ([]byte, *http.Response, error) {
	s.mu.Lock()
	s.calls++
	s.last = req
	s.mu.Unlock()
	if s.Err != nil {
		return nil, nil, s.Err
	}
	status := s.Status
	if status == 0 {
		status = http.StatusOK
	}
	resp := &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Request:    req,
	}
	return s.Payload, resp, nil
}

// Calls reports how many times Execute ran.
func (s *MockSession) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Last returns the most recent wire request Execute saw.
func (s *MockSession) Last() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// MockSessionFactory hands out a fixed session or fails the build stage.
type MockSessionFactory struct {
	Session Session
	Err     error

	mu    sync.Mutex
	calls int
}

func (f *MockSessionFactory) Build(Request) (Session, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Session != nil {
		return f.Session, nil
	}
	return &MockSession{}, nil
}

// Calls reports how many times Build ran.
func (f *MockSessionFactory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// RecordingLogger captures events for assertions.
type RecordingLogger struct {
	mu       sync.Mutex
	sent     []string
	received []string
	failed   []*Error
}

func (l *RecordingLogger) RequestSent(_ context.Context, id string, _ Request, _ Session, _ *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, id)
}

func (l *RecordingLogger) ResponseReceived(_ context.Context, id string, _ Request, _ []byte, _ *http.Response) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.received = append(l.received, id)
}

func (l *RecordingLogger) RequestFailed(_ context.Context, _ string, _ Request, err *Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed = append(l.failed, err)
}

// Sent returns the request IDs of recorded outgoing-request events.
func (l *RecordingLogger) Sent() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sent...)
}

// Received returns the request IDs of recorded incoming-response events.
func (l *RecordingLogger) Received() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.received...)
}

// Failed returns the recorded categorized errors.
func (l *RecordingLogger) Failed() []*Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Error(nil), l.failed...)
}
