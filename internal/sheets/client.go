// Package sheets stores habit data in a Google Sheet laid out as one row
// per day: date, day name, one column per habit, then total minutes and
// percentage.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// Config identifies the spreadsheet and tab holding the tracker.
type Config struct {
	SpreadsheetID string
	SheetName     string
	// BaseURL overrides the Sheets API host, for tests.
	BaseURL string
}

// Client is a thin wrapper over the Sheets v4 values endpoints.
type Client struct {
	cfg    Config
	tokens oauth2.TokenSource
	http   *http.Client
}

// NewClient creates a Client authenticating with the given token source.
// A nil token source sends unauthenticated requests, which only makes
// sense against a test server.
func NewClient(cfg Config, tokens oauth2.TokenSource) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://sheets.googleapis.com"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

type valueRange struct {
	Range          string  `json:"range,omitempty"`
	MajorDimension string  `json:"majorDimension,omitempty"`
	Values         [][]any `json:"values"`
}

// getValues fetches a range in A1 notation, rows-major.
func (c *Client) getValues(ctx context.Context, rangeA1 string) ([][]any, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.SpreadsheetID), url.PathEscape(rangeA1))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var vr valueRange
	if err := c.do(req, &vr); err != nil {
		return nil, err
	}
	return vr.Values, nil
}

// updateValues writes a range in A1 notation with USER_ENTERED semantics,
// matching how a human would type the values in.
func (c *Client) updateValues(ctx context.Context, rangeA1 string, values [][]any) error {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?valueInputOption=USER_ENTERED",
		c.cfg.BaseURL, url.PathEscape(c.cfg.SpreadsheetID), url.PathEscape(rangeA1))

	body, err := json.Marshal(valueRange{Range: rangeA1, MajorDimension: "ROWS", Values: values})
	if err != nil {
		return fmt.Errorf("marshaling values: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("fetching access token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling sheets api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sheets api status %d: %s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding sheets response: %w", err)
	}
	return nil
}
