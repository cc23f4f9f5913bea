// Package mailer sends the new-order notification through a
// Resend-compatible transactional email API. Sends are fire-and-forget
// from the order's perspective: a failure is logged and returned, never
// rolled into the insert that triggered it.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNoAPIKey = errors.New("mailer: API key not configured")

// Notifier is the outbound contract the intake handler depends on.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, orderID, customerEmail string, totalDZD int64) error
}

type Client struct {
	HTTP         *http.Client
	Endpoint     string
	APIKey       string
	AdminEmail   string
	AdminConsole string
}

func NewClient(endpoint, apiKey, adminEmail, adminConsole string) *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: 10 * time.Second},
		Endpoint:     strings.TrimRight(endpoint, "/"),
		APIKey:       apiKey,
		AdminEmail:   adminEmail,
		AdminConsole: adminConsole,
	}
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NotifyNewOrder emails the administrator about a freshly created order:
// customer email, total due and a deep link back into the console.
func (c *Client) NotifyNewOrder(ctx context.Context, orderID, customerEmail string, totalDZD int64) error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if customerEmail == "" {
		customerEmail = "unknown"
	}
	payload := emailPayload{
		From:    "Wassit DZ <onboarding@resend.dev>",
		To:      []string{c.AdminEmail},
		Subject: fmt.Sprintf("New order: %d DZD - %s", totalDZD, customerEmail),
		HTML: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
				<h2>A new order just landed</h2>
				<p><strong>Customer:</strong> %s</p>
				<p><strong>Total due:</strong> %d DZD</p>
				<p><strong>Order ID:</strong> <code>%s</code></p>
				<p><a href="%s">Open the admin console</a></p>
			</div>`, customerEmail, totalDZD, orderID, c.AdminConsole),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return fmt.Errorf("mailer: send failed: %s: %s", res.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}
