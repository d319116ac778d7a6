package relay

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenInterceptor injects an Authorization header from an oauth2 token
// source. Refreshing sources keep rotating credentials fresh because the
// source is consulted on every send, not at construction.
type TokenInterceptor struct {
	Source oauth2.TokenSource
}

func (t TokenInterceptor) Name() string { return "oauth2-token" }

func (t TokenInterceptor) Intercept(_ context.Context, req *http.Request) (*http.Request, error) {
	token, err := t.Source.Token()
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)
	return req, nil
}
