package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when the caller's context has no
// deadline of its own.
const DefaultTimeout = 15 * time.Second

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, body)
}

// Client talks to the book-recommendation HTTP service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListSessions fetches all persisted sessions, most recent first.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var out sessionListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/sessions", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return out.Sessions, nil
}

// LoadSession fetches the full message history of a session.
func (c *Client) LoadSession(ctx context.Context, id string) ([]Message, error) {
	var out sessionDetailResponse
	path := "/sessions/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return out.Messages, nil
}

// SaveSession persists the full message set under a session id, creating the
// session if it does not exist. The server derives the title from the first
// user message.
func (c *Client) SaveSession(ctx context.Context, id string, messages []Message) error {
	in := saveSessionRequest{SessionID: id, Messages: messages}
	if err := c.doJSON(ctx, http.MethodPost, "/sessions", &in, nil); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

// RenameSession updates a session's title.
func (c *Client) RenameSession(ctx context.Context, id, newTitle string) error {
	in := renameRequest{NewTitle: newTitle}
	path := "/sessions/" + url.PathEscape(id) + "/title"
	if err := c.doJSON(ctx, http.MethodPatch, path, &in, nil); err != nil {
		return fmt.Errorf("failed to rename session %s: %w", id, err)
	}
	return nil
}

// DeleteSession removes a session. The returned string is the server's
// optional notification text and may be empty.
func (c *Client) DeleteSession(ctx context.Context, id string) (string, error) {
	var out deleteResponse
	path := "/sessions/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return "", fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return out.Noti, nil
}

// Chat sends a user query and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, query, lang, sessionID string) (string, error) {
	in := chatRequest{Query: query, Lang: lang, SessionID: sessionID}
	var out chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/response", &in, &out); err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	return out.Response, nil
}

// Autocomplete fetches up to limit phrase completions for an input prefix.
// The prefix must be non-empty; the service rejects blank prefixes.
func (c *Client) Autocomplete(ctx context.Context, sessionID, prefix string, limit int) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("autocomplete prefix cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{}
	q.Set("input_prefix", prefix)
	q.Set("limit", strconv.Itoa(limit))
	path := "/sessions/" + url.PathEscape(sessionID) + "/autocomplete?" + q.Encode()

	var out autocompleteResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("autocomplete failed: %w", err)
	}
	return out.Completions, nil
}

// doJSON performs a JSON request against the service. A nil in skips the
// request body; a nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
