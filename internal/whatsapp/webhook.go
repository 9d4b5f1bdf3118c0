package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// VerifyChallenge handles Meta's webhook verification handshake. It returns
// the challenge to echo back and whether verification succeeded.
func VerifyChallenge(mode, token, challenge, expectedToken string) (string, bool) {
	if mode == "subscribe" && expectedToken != "" && token == expectedToken {
		return challenge, true
	}
	return "", false
}

// ValidateSignature checks the X-Hub-Signature-256 header against an
// HMAC-SHA256 of the raw request body. The "sha256=" prefix is stripped and
// the comparison is constant-time.
func ValidateSignature(body []byte, signatureHeader, appSecret string) bool {
	if signatureHeader == "" {
		return false
	}
	received := strings.TrimPrefix(signatureHeader, "sha256=")

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(received))
}

// InboundMessage is a text message extracted from a webhook delivery.
type InboundMessage struct {
	From      string
	Text      string
	MessageID string
}

// webhookEnvelope mirrors the nesting of Meta's webhook payloads down to
// the fields we consume.
type webhookEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					ID   string `json:"id"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ExtractMessage pulls the first text message out of a webhook payload.
// Status updates, media messages and malformed bodies return ok=false;
// they are acknowledged but not processed.
func ExtractMessage(body []byte) (InboundMessage, bool) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return InboundMessage{}, false
	}

	if len(env.Entry) == 0 || len(env.Entry[0].Changes) == 0 {
		return InboundMessage{}, false
	}
	messages := env.Entry[0].Changes[0].Value.Messages
	if len(messages) == 0 {
		return InboundMessage{}, false
	}

	msg := messages[0]
	if msg.Type != "text" {
		return InboundMessage{}, false
	}

	return InboundMessage{
		From:      msg.From,
		Text:      msg.Text.Body,
		MessageID: msg.ID,
	}, true
}
