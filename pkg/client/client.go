// Package client talks to the Taskpilot API and owns client-side state:
// the auth Session and the TaskBoard the assistant panel watches.
package client

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

	"github.com/raushan165/Taskpilot/pkg/assistant"
)

// APIError is a non-2xx response decoded from the API's error shape.
type APIError struct {
	Status  int
	Message string
	Detail  any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *Session
}

func New(baseURL string, session *Session) *Client {
	if session == nil {
		session = NewSession(nil)
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Session: session,
	}
}

// ContactMessage is the body of POST /api/contact.
type ContactMessage struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Subject  string          `json:"subject,omitempty"`
	Message  string          `json:"message"`
	Services ContactServices `json:"services"`
}

type ContactServices struct {
	Website  bool `json:"website"`
	UX       bool `json:"ux"`
	Strategy bool `json:"strategy"`
	Other    bool `json:"other"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c *Client) Signup(ctx context.Context, name, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{"name": name, "email": email}, nil)
}

func (c *Client) VerifySignup(ctx context.Context, name, email, otp, password string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"name": name, "email": email, "otp": otp, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify-signup", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
}

// GoogleLogin exchanges a Google ID token for a session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*User, error) {
	return c.authenticate(ctx, "/api/auth/google-login", map[string]string{"token": idToken})
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

// Me asks the server who the current token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout is purely local: tokens are never revoked server-side.
func (c *Client) Logout() error {
	return c.Session.Clear()
}

func (c *Client) SendContact(ctx context.Context, m ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/api/contact", m, nil)
}

// Analyze runs the advisory engine server-side. today may be nil.
func (c *Client) Analyze(ctx context.Context, tasks []assistant.Task, today *assistant.Date) ([]assistant.Message, error) {
	body := struct {
		Tasks []assistant.Task `json:"tasks"`
		Today *assistant.Date  `json:"today,omitempty"`
	}{Tasks: tasks, Today: today}
	var out struct {
		Messages []assistant.Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/assistant/analyze", body, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("api: response carries no token")
	}
	if err := c.Session.Set(out.Token, out.User); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// do sends body as JSON and decodes a 2xx response into out. A 401 on a
// request that carried a token clears the session.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.Session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var payload struct {
			Message string `json:"message"`
			Error   any    `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Detail = payload.Error
		}
		if res.StatusCode == http.StatusUnauthorized && token != "" {
			_ = c.Session.Clear()
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
