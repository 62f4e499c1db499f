package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Error wraps a failed call to the document store. Any operation hitting it
// aborts; callers re-invoke, there is no automatic retry.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store unreachable: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client talks to the external document store: JSON collections addressed
// by REST-like paths, no authentication at the store boundary.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new store client
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	c.log.Debugf("Store %s %s completed", method, path)
	return nil
}

// GetAll fetches every record in a collection into out, a pointer to a
// slice. Record order is store-defined and not guaranteed.
func (c *Client) GetAll(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, "/"+collection, nil, out)
}

// Create stores a new record. The caller assigns the id before the call.
func (c *Client) Create(ctx context.Context, collection string, record any) error {
	return c.do(ctx, http.MethodPost, "/"+collection, record, nil)
}

// Replace overwrites the record stored at id.
func (c *Client) Replace(ctx context.Context, collection, id string, record any) error {
	return c.do(ctx, http.MethodPut, "/"+collection+"/"+id, record, nil)
}

// Delete removes the record stored at id.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, "/"+collection+"/"+id, nil, nil)
}
