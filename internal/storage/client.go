// Package storage is the object-storage collaborator: upload-by-path
// plus public URL resolution against a hosted bucket API.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

// Uploader is what the handlers need: push bytes to a bucket path and
// get back the public URL.
type Uploader interface {
	Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) (string, error)
}

type Client struct {
	HTTP     *http.Client
	Endpoint string
	APIKey   string
	Bucket   string
}

func NewClient(endpoint, apiKey, bucket string) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		Bucket:   bucket,
	}
}

// Upload stores the object and returns its public URL. The caller owns
// collision avoidance via timestamped paths.
func (c *Client) Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) (string, error) {
	url := fmt.Sprintf("%s/object/%s/%s", c.Endpoint, c.Bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", fmt.Errorf("storage upload failed: %s: %s", res.Status, strings.TrimSpace(string(msg)))
	}
	return c.PublicURL(objectPath), nil
}

func (c *Client) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.Endpoint, c.Bucket, objectPath)
}

// ScreenshotPath namespaces a product screenshot by owner and upload time.
func ScreenshotPath(userID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d%s", userID, now.UnixMilli(), ext(filename))
}

// PaymentProofPath namespaces a payment receipt by owner, order and time.
func PaymentProofPath(userID, orderID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/payment_%s_%d%s", userID, orderID, now.UnixMilli(), ext(filename))
}

// ComplaintProofPath namespaces a complaint attachment by owner and time.
func ComplaintProofPath(userID, filename string, now time.Time) string {
	return fmt.Sprintf("complaints/%s/%d%s", userID, now.UnixMilli(), ext(filename))
}

func ext(filename string) string {
	e := path.Ext(filename)
	if e == "" {
		return ".bin"
	}
	return e
}
