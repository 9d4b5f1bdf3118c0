package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// spreadsheetScope is the OAuth scope needed to read and write sheet values.
const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// TokenSourceFromJSON builds a token source from service-account
// credentials JSON.
func TokenSourceFromJSON(ctx context.Context, credsJSON []byte) (oauth2.TokenSource, error) {
	cfg, err := google.JWTConfigFromJSON(credsJSON, spreadsheetScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}
	return cfg.TokenSource(ctx), nil
}

// TokenSourceFromFile builds a token source from a service-account
// credentials file on disk.
func TokenSourceFromFile(ctx context.Context, path string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return TokenSourceFromJSON(ctx, data)
}

// StaticTokenSource wraps a fixed bearer token. Used in tests and local
// development against a fake API.
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}
