package relay

import (
	"context"
	"testing"
)

func TestDescribe(t *testing.T) {
	t.Run("stringer", func(t *testing.T) {
		if got := describe(Get("/users/1")); got != "GET /users/1" {
			t.Errorf("Expected 'GET /users/1', got %q", got)
		}
	})

	t.Run("plain value", func(t *testing.T) {
		if got := describe("lookup"); got != "lookup" {
			t.Errorf("Expected 'lookup', got %q", got)
		}
	})
}

func TestNopLogger(t *testing.T) {
	session := &MockSession{Payload: []byte("{}")}
	client := NewClient(&MockBuilder{},
		WithSessionFactory(&MockSessionFactory{Session: session}),
		WithLogger(NopLogger{}),
	)

	if _, err := client.Send(context.Background(), Get("/quiet")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
}
