package relay

import (
	"net/http"
	"net/url"
	"testing"
)

func TestNewBuilder(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		builder, err := NewBuilder(Config{Scheme: "https", Host: "api.example.com"})
		if err != nil {
			t.Fatalf("NewBuilder failed: %v", err)
		}
		if builder == nil {
			t.Fatal("Expected a builder")
		}
	})

	t.Run("missing scheme", func(t *testing.T) {
		if _, err := NewBuilder(Config{Host: "api.example.com"}); err == nil {
			t.Error("Expected validation error for missing scheme")
		}
	})

	t.Run("bad scheme", func(t *testing.T) {
		if _, err := NewBuilder(Config{Scheme: "ftp", Host: "api.example.com"}); err == nil {
			t.Error("Expected validation error for non-http scheme")
		}
	})

	t.Run("missing host", func(t *testing.T) {
		if _, err := NewBuilder(Config{Scheme: "https"}); err == nil {
			t.Error("Expected validation error for missing host")
		}
	})
}

func TestBuilder_Build(t *testing.T) {
	t.Run("url composition", func(t *testing.T) {
		builder, err := NewBuilder(Config{
			Scheme:   "https",
			Host:     "api.example.com",
			BasePath: "/v2",
			Query:    url.Values{"key": {"k1"}},
		})
		if err != nil {
			t.Fatalf("NewBuilder failed: %v", err)
		}

		wire, err := builder.Build(&Endpoint{Path: "/users/1", Query: url.Values{"expand": {"profile"}}})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		want := "https://api.example.com/v2/users/1?expand=profile&key=k1"
		if wire.URL.String() != want {
			t.Errorf("Expected %q, got %q", want, wire.URL.String())
		}
		if wire.Method != http.MethodGet {
			t.Errorf("Empty method should default to GET, got %s", wire.Method)
		}
	})

	t.Run("rejects non-endpoint request", func(t *testing.T) {
		builder, _ := NewBuilder(Config{Scheme: "https", Host: "api.example.com"})
		if _, err := builder.Build("not an endpoint"); err == nil {
			t.Error("Expected error for foreign logical request type")
		}
	})

	t.Run("body and method", func(t *testing.T) {
		builder, _ := NewBuilder(Config{Scheme: "https", Host: "api.example.com"})
		wire, err := builder.Build(Post("/users", []byte(`{"name":"A"}`)))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if wire.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", wire.Method)
		}
		if wire.Body == nil {
			t.Error("Expected a request body")
		}
	})

	t.Run("endpoint header wins over config header", func(t *testing.T) {
		builder, _ := NewBuilder(Config{
			Scheme: "https",
			Host:   "api.example.com",
			Header: http.Header{"X-Env": {"base"}},
		})
		wire, err := builder.Build(&Endpoint{Path: "/", Header: http.Header{"X-Env": {"call"}}})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if got := wire.Header.Get("X-Env"); got != "call" {
			t.Errorf("Expected 'call', got %q", got)
		}
	})
}

func TestBuilder_EagerValuesCapturedOnce(t *testing.T) {
	header := http.Header{"X-Token": {"original"}}
	builder, err := NewBuilder(Config{Scheme: "https", Host: "api.example.com", Header: header})
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	// Mutating the caller's map after construction must not leak in.
	header.Set("X-Token", "mutated")

	wire, err := builder.Build(Get("/"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := wire.Header.Get("X-Token"); got != "original" {
		t.Errorf("Eager header should be captured at construction, got %q", got)
	}
}

func TestBuilder_LazyValuesPerBuild(t *testing.T) {
	t.Run("header func re-evaluated every build", func(t *testing.T) {
		calls := 0
		builder, err := NewBuilder(Config{
			Scheme: "https",
			Host:   "api.example.com",
			HeaderFunc: func() http.Header {
				calls++
				return http.Header{"X-Count": {string(rune('0' + calls))}}
			},
		})
		if err != nil {
			t.Fatalf("NewBuilder failed: %v", err)
		}

		first, _ := builder.Build(Get("/"))
		second, _ := builder.Build(Get("/"))
		if calls != 2 {
			t.Errorf("Expected 2 evaluations, got %d", calls)
		}
		if first.Header.Get("X-Count") != "1" || second.Header.Get("X-Count") != "2" {
			t.Error("Lazy headers must reflect each evaluation")
		}
	})

	t.Run("query func re-evaluated every build", func(t *testing.T) {
		calls := 0
		builder, err := NewBuilder(Config{
			Scheme: "https",
			Host:   "api.example.com",
			QueryFunc: func() url.Values {
				calls++
				return url.Values{"nonce": {"fresh"}}
			},
		})
		if err != nil {
			t.Fatalf("NewBuilder failed: %v", err)
		}

		builder.Build(Get("/"))
		builder.Build(Get("/"))
		if calls != 2 {
			t.Errorf("Expected 2 evaluations, got %d", calls)
		}
	})
}

func TestEndpoint_String(t *testing.T) {
	if got := Get("/users/1").String(); got != "GET /users/1" {
		t.Errorf("Expected 'GET /users/1', got %q", got)
	}
	if got := (&Endpoint{Path: "/x"}).String(); got != "GET /x" {
		t.Errorf("Empty method should print as GET, got %q", got)
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"", "/users", "/users"},
		{"/v2", "", "/v2"},
		{"/v2", "/users", "/v2/users"},
		{"/v2/", "/users", "/v2/users"},
		{"/v2", "users", "/v2/users"},
	}
	for _, tc := range cases {
		if got := joinPath(tc.base, tc.path); got != tc.want {
			t.Errorf("joinPath(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
