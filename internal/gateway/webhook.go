// ABOUTME: Webhook endpoint handling for inbound chat-provider events
// ABOUTME: Verifies signatures, validates the envelope, and dispatches to the flow engine

package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ailucid/flow-gateway/internal/flow"
)

// signatureHeader is the request header carrying the provider's HMAC signature.
const signatureHeader = "X-Hub-Signature-256"

// maxWebhookBody caps the accepted request body size.
const maxWebhookBody = 1 << 20 // 1 MiB

// WebhookPayload is the provider's envelope for inbound messages. Only the
// first message of the first change of the first entry is consumed; the rest
// of the structure exists to match the provider's shape.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one provider entry holding a list of changes.
type Entry struct {
	Changes []Change `json:"changes"`
}

// Change wraps the value object carrying the messages.
type Change struct {
	Value ChangeValue `json:"value"`
}

// ChangeValue holds the inbound messages of one change.
type ChangeValue struct {
	Messages []InboundMessage `json:"messages"`
}

// InboundMessage is a single message from a user.
type InboundMessage struct {
	From string      `json:"from"`
	Text MessageText `json:"text"`
	Type string      `json:"type"`
}

// MessageText carries the message body.
type MessageText struct {
	Body string `json:"body"`
}

// WebhookResponse is the JSON response for POST /webhook.
type WebhookResponse struct {
	Status  string      `json:"status"`
	To      string      `json:"to,omitempty"`
	Message *flow.Reply `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// webhookErrorResponse is the JSON response for unauthorized and internal
// error outcomes, where message is a plain string.
type webhookErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// validate checks the structural shape of the payload and returns field-level
// error descriptions. An empty slice means the payload is well-formed.
func (p *WebhookPayload) validate() []string {
	var errs []string

	if p.Object == "" {
		errs = append(errs, "object: required field is missing")
	}
	if len(p.Entry) == 0 {
		errs = append(errs, "entry: at least one entry is required")
		return errs
	}
	if len(p.Entry[0].Changes) == 0 {
		errs = append(errs, "entry[0].changes: at least one change is required")
		return errs
	}
	if len(p.Entry[0].Changes[0].Value.Messages) == 0 {
		errs = append(errs, "entry[0].changes[0].value.messages: at least one message is required")
		return errs
	}

	msg := p.Entry[0].Changes[0].Value.Messages[0]
	if msg.From == "" {
		errs = append(errs, "entry[0].changes[0].value.messages[0].from: sender id is required")
	}
	if msg.Text.Body == "" {
		errs = append(errs, "entry[0].changes[0].value.messages[0].text.body: message body is required")
	}

	return errs
}

// firstMessage extracts the single message the gateway consumes. Extra
// messages in the same payload are ignored.
func (p *WebhookPayload) firstMessage() InboundMessage {
	return p.Entry[0].Changes[0].Value.Messages[0]
}

// handleWebhook handles POST /webhook requests.
//
// Order of operations:
//  1. Signature check over the raw body, before any parsing
//  2. Structural validation of the envelope
//  3. Extraction of the first message
//  4. Dispatch to the flow engine
//  5. Response shaping
func (g *Gateway) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		g.logger.Error("failed to read webhook body", "error", err)
		g.writeJSON(w, http.StatusInternalServerError, webhookErrorResponse{Status: "error", Message: "internal server error"})
		return
	}

	if len(g.verifySecret) > 0 {
		if !verifySignature(g.verifySecret, body, r.Header.Get(signatureHeader)) {
			g.logger.Warn("webhook signature verification failed")
			g.writeJSON(w, http.StatusUnauthorized, webhookErrorResponse{Status: "unauthorized"})
			return
		}
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		g.writeJSON(w, http.StatusBadRequest, WebhookResponse{
			Status: "validation_error",
			Errors: []string{"body: invalid JSON"},
		})
		return
	}

	if errs := payload.validate(); len(errs) > 0 {
		g.writeJSON(w, http.StatusBadRequest, WebhookResponse{
			Status: "validation_error",
			Errors: errs,
		})
		return
	}

	msg := payload.firstMessage()

	// A client abort must not cancel an issued state transition; the reply
	// is best-effort but the persistence runs to completion.
	reply, err := g.engine.ProcessMessage(context.WithoutCancel(r.Context()), msg.From, msg.Text.Body)
	if err != nil {
		// Full detail stays in the log; the caller gets a generic error
		g.logger.Error("failed to process message", "user_id", msg.From, "error", err)
		g.writeJSON(w, http.StatusInternalServerError, webhookErrorResponse{Status: "error", Message: "internal server error"})
		return
	}

	g.writeJSON(w, http.StatusOK, WebhookResponse{
		Status:  "success",
		To:      msg.From,
		Message: reply,
	})
}
