package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultEmailJSURL is the EmailJS REST send endpoint.
const DefaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

const maxResponseBody = 4 << 10

var tracer = otel.Tracer("github.com/osa911/folio/internal/relay")

// EmailJSClient sends payloads through the EmailJS REST API
type EmailJSClient struct {
	endpoint    string
	accessToken string
	client      *http.Client
}

// EmailJSOption configures an EmailJSClient
type EmailJSOption func(*EmailJSClient)

// WithEndpoint overrides the send endpoint
func WithEndpoint(endpoint string) EmailJSOption {
	return func(c *EmailJSClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithAccessToken sets the account private key, required when the account
// enforces strict mode for API calls
func WithAccessToken(token string) EmailJSOption {
	return func(c *EmailJSClient) {
		c.accessToken = token
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) EmailJSOption {
	return func(c *EmailJSClient) {
		if client != nil {
			c.client = client
		}
	}
}

// NewEmailJSClient creates a new EmailJS client
func NewEmailJSClient(opts ...EmailJSOption) *EmailJSClient {
	c := &EmailJSClient{
		endpoint: DefaultEmailJSURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// emailJSRequest is the JSON body expected by the send endpoint
type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// Send posts the payload to EmailJS. A non-200 answer is returned both as the
// Response and as an *Error carrying the relay's text.
func (c *EmailJSClient) Send(ctx context.Context, payload Payload) (*Response, error) {
	ctx, span := tracer.Start(ctx, "relay.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("relay.provider", "emailjs"),
		attribute.String("relay.service_id", payload.ServiceID),
		attribute.String("relay.template_id", payload.TemplateID),
	)

	resp, err := c.send(ctx, payload)
	if resp != nil {
		span.SetAttributes(attribute.Int("relay.status", resp.Status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

func (c *EmailJSClient) send(ctx context.Context, payload Payload) (*Response, error) {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      payload.ServiceID,
		TemplateID:     payload.TemplateID,
		UserID:         payload.PublicKey,
		AccessToken:    c.accessToken,
		TemplateParams: payload.Variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, &Error{Status: httpResp.StatusCode, Err: fmt.Errorf("failed to read emailjs response: %w", err)}
	}

	resp := &Response{
		Status: httpResp.StatusCode,
		Text:   strings.TrimSpace(string(raw)),
	}
	if !resp.OK() {
		return resp, &Error{Status: resp.Status, Message: resp.Text}
	}
	return resp, nil
}
