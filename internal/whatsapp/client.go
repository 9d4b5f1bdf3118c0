// Package whatsapp talks to the Meta WhatsApp Cloud API: sending text and
// template messages, and decoding/verifying inbound webhook traffic.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrDelivery wraps any failure to hand a message to the Graph API.
var ErrDelivery = errors.New("whatsapp delivery failed")

// Config holds the Cloud API credentials and addressing.
type Config struct {
	AccessToken   string
	PhoneNumberID string
	APIVersion    string
	// BaseURL overrides the Graph API host, for tests.
	BaseURL string
}

// Client sends messages through the WhatsApp Cloud API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client for the given Cloud API configuration.
func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v21.0"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com"
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText sends a free-form text message. Only deliverable inside the
// rolling 24h session window.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	p := textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
	}
	p.Text.Body = body
	return c.post(ctx, p)
}

type templatePayload struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Template         struct {
		Name     string `json:"name"`
		Language struct {
			Code string `json:"code"`
		} `json:"language"`
		Components []templateComponent `json:"components"`
	} `json:"template"`
}

type templateComponent struct {
	Type       string          `json:"type"`
	Parameters []templateParam `json:"parameters"`
}

type templateParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTemplate sends a pre-approved template message with ordered body
// parameters. Works outside the session window.
func (c *Client) SendTemplate(ctx context.Context, to, templateName string, params []string) error {
	p := templatePayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "template",
	}
	p.Template.Name = templateName
	p.Template.Language.Code = "en"
	if len(params) > 0 {
		body := templateComponent{Type: "body"}
		for _, v := range params {
			body.Parameters = append(body.Parameters, templateParam{Type: "text", Text: v})
		}
		p.Template.Components = []templateComponent{body}
	}
	return c.post(ctx, p)
}

func (c *Client) post(ctx context.Context, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.cfg.BaseURL, c.cfg.APIVersion, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: graph api status %d: %s", ErrDelivery, resp.StatusCode, string(body))
	}
	return nil
}
