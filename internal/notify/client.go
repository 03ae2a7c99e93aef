// Package notify wraps the external confirmation collaborator: an HTTP
// endpoint that accepts a booking payload and renders and delivers the
// customer-facing confirmation. Its rendering format is out of scope here.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	models "github.com/albarakah/voyages/internal"
)

const confirmationPath = "/functions/v1/send-booking-confirmation"

var (
	ErrBadStatusCode = errors.New("invalid status code from notification service")
	ErrNotDelivered  = errors.New("notification service reported failure")
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	httpClient HTTPClient
	baseURL    string
	apiKey     string
}

type Option func(*Client)

// Response is the collaborator's acknowledgment payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SendConfirmation issues a single POST with the booking details. It
// returns an error both on transport failures and when the collaborator
// acknowledges with a non-success payload.
func (c *Client) SendConfirmation(ctx context.Context, confirmation models.BookingConfirmation) error {
	jsonBytes, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}

	u := c.baseURL + confirmationPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Add("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrBadStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var ack Response
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("decoding acknowledgment: %w", err)
	}
	if !ack.Success {
		return fmt.Errorf("%w: %s", ErrNotDelivered, ack.Error)
	}
	return nil
}
