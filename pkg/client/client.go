package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the single point of network access: it attaches the bearer
// credential when present, always sends JSON, and normalizes failures.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Session exposes the session store (identity checks, logout).
func (c *Client) Session() *Session {
	return c.session
}

// Login exchanges credentials for a token pair and persists it. On
// failure the server's detail message is surfaced and existing session
// state is left unchanged.
func (c *Client) Login(ctx context.Context, username, password string) (*Identity, error) {
	var pair Credentials
	err := c.doJSON(ctx, http.MethodPost, "/api/token/", map[string]string{
		"username": username,
		"password": password,
	}, &pair)
	if err != nil {
		return nil, err
	}
	if err := c.session.store(pair); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}
	return c.session.Identity(), nil
}

// Logout clears the session unconditionally.
func (c *Client) Logout() {
	c.session.Clear()
}

// doJSON issues one request. Non-2xx responses become an error carrying
// the parsed detail message when present, else "HTTP error,
// status=<code>". An empty or 204 body yields no decode.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.session.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil && payload.Detail != "" {
			return fmt.Errorf("%s", payload.Detail)
		}
		return fmt.Errorf("HTTP error, status=%d", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 || out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
