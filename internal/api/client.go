// Package api is the single point of contact with the backend. It attaches
// the bearer token, serializes JSON bodies, and normalizes every outcome
// into the shared response envelope; callers never see a raw HTTP error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL matches the backend's default listen address.
const DefaultBaseURL = "http://localhost:9006/api/v1"

// Response is the envelope every endpoint answers with. Data is left raw for
// the data layer to decode into the right wire shape.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// TokenSource supplies the persisted bearer token. An empty string means no
// session, and the Authorization header is omitted.
type TokenSource interface {
	Token() string
}

// Client issues authenticated requests against the backend API.
type Client struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
}

// NewClient builds a client for the given base URL. A nil tokens source means
// all requests go out unauthenticated.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   &http.Client{},
	}
}

// do performs one request and normalizes the result. Non-2xx statuses and
// transport failures both come back as Success=false with an error message;
// a single attempt, no retry or timeout (context deadlines are the caller's
// to impose).
func (c *Client) do(ctx context.Context, method, endpoint string, body any) Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{Success: false, Error: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Response{Success: false, Error: networkError(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Success: false, Error: networkError(err)}
	}

	var envelope Response
	decodeErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return Response{Success: false, Error: msg}
	}
	if decodeErr != nil {
		return Response{Success: false, Error: networkError(decodeErr)}
	}
	return envelope
}

func networkError(err error) string {
	if err == nil || err.Error() == "" {
		return "Network error"
	}
	return err.Error()
}

func (c *Client) get(ctx context.Context, endpoint string) Response {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) post(ctx context.Context, endpoint string, body any) Response {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) put(ctx context.Context, endpoint string, body any) Response {
	return c.do(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) patch(ctx context.Context, endpoint string, body any) Response {
	return c.do(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) delete(ctx context.Context, endpoint string) Response {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}
