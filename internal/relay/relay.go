// Package relay abstracts the hosted transactional-email relay that turns a
// contact form payload into an email.
package relay

import (
	"context"
	"fmt"
	"net/http"
)

// Credentials identify the relay account, service and template.
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Complete reports whether all three credentials are present.
func (c Credentials) Complete() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// TemplateParams are the variables interpolated into the email template.
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Message   string `json:"message"`
	ToName    string `json:"to_name"`
}

// Payload is one send request.
type Payload struct {
	Credentials
	Variables TemplateParams
}

// Response is what the relay answered. Status 200 means the message was accepted.
type Response struct {
	Status int    `json:"status"`
	Text   string `json:"text"`
}

// OK reports whether the relay accepted the message.
func (r *Response) OK() bool {
	return r != nil && r.Status == http.StatusOK
}

// Sender delivers payloads to the relay.
type Sender interface {
	Send(ctx context.Context, payload Payload) (*Response, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, payload Payload) (*Response, error)

func (f SenderFunc) Send(ctx context.Context, payload Payload) (*Response, error) {
	return f(ctx, payload)
}

// Error is returned when the relay rejected or failed a send. Message is the
// text reported by the relay and may be empty.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("relay returned status %d: %s", e.Status, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("relay request failed: %v", e.Err)
	default:
		return fmt.Sprintf("relay returned status %d", e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
