// Package api is the HTTP client for the sessions server. The session token
// lives in a cookie managed by the client's cookie jar, so callers never
// handle tokens directly: once Login or Register succeeds, every later call
// is authenticated until Logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// User is a profile as returned by the server. Email is only populated on
// the caller's own profile.
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// Todo is a row of the shared todos collection.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
}

// Client talks to the sessions server over HTTP.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New constructs a Client for the server at baseURL. The cookie jar holds
// the session cookie between calls.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

type apiError struct {
	Message string `json:"message"`
}

// do sends one JSON request and decodes the response into out (when out is
// non-nil). A non-2xx status is turned into an error carrying the server's
// message.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apiError
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
			return fmt.Errorf("server returned %s", resp.Status)
		}
		return fmt.Errorf("server returned %s: %s", resp.Status, e.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

// Register creates an account and leaves the client logged in as it.
func (c *Client) Register(ctx context.Context, email, name, password string) error {
	in := map[string]string{"email": email, "name": name, "password": password}
	return c.do(ctx, http.MethodPost, "/rpc/register", in, nil)
}

// Login authenticates with the email/password pair; the session cookie is
// stored in the jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	in := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/rpc/login", in, nil)
}

// Logout revokes the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/rpc/logout", nil, nil)
}

// RefreshSession rotates the session token; the jar picks up the new cookie.
func (c *Client) RefreshSession(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/rpc/refresh_session", nil, nil)
}

// CurrentUser returns the profile of the logged-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/rpc/current_user", nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("server returned no profile")
	}
	return &out[0], nil
}

// Users lists all user profiles.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Todos lists every todo visible to the logged-in user.
func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	var out []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTodo adds a private todo owned by the logged-in user.
func (c *Client) CreateTodo(ctx context.Context, description string) (*Todo, error) {
	in := map[string]string{"description": description}
	var out []Todo
	if err := c.do(ctx, http.MethodPost, "/todos", in, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("server returned no todo")
	}
	return &out[0], nil
}

// SetTodosPublic flips the public flag on all todos owned by the logged-in
// user.
func (c *Client) SetTodosPublic(ctx context.Context, public bool) error {
	in := map[string]bool{"public": public}
	return c.do(ctx, http.MethodPatch, "/todos", in, nil)
}
