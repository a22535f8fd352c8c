package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushan165/Taskpilot/pkg/assistant"
)

type stubAPI struct {
	lastAuth string
	lastBody map[string]any
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
	read := func(r *http.Request) {
		s.lastAuth = r.Header.Get("Authorization")
		s.lastBody = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&s.lastBody)
		}
	}
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		read(r)
		if s.lastBody["password"] != "password123" {
			reply(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   "tok-1",
			"user":    map[string]string{"id": "u-1", "name": "Ada", "email": "ada@example.com"},
		})
	})
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		read(r)
		reply(w, http.StatusOK, map[string]string{"message": "OTP sent to email. Please verify."})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		read(r)
		if s.lastAuth != "Bearer tok-1" {
			reply(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"user": map[string]string{"id": "u-1", "name": "Ada", "email": "ada@example.com"}})
	})
	mux.HandleFunc("POST /api/contact", func(w http.ResponseWriter, r *http.Request) {
		read(r)
		reply(w, http.StatusInternalServerError, map[string]string{"message": "Server Error", "error": "db down"})
	})
	mux.HandleFunc("POST /api/assistant/analyze", func(w http.ResponseWriter, r *http.Request) {
		read(r)
		reply(w, http.StatusOK, map[string]any{"messages": []map[string]string{
			{"type": "info", "category": "welcome", "text": "hi"},
		}})
	})
	return mux
}

func newStub(t *testing.T) (*stubAPI, *Client) {
	t.Helper()
	stub := &stubAPI{}
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return stub, New(srv.URL+"/", NewSession(FileTokenStore{Path: filepath.Join(t.TempDir(), "session.json")}))
}

func TestLoginStoresSessionAndAuthorizes(t *testing.T) {
	stub, c := newStub(t)
	ctx := context.Background()

	u, err := c.Login(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "tok-1", c.Session.Token())
	assert.Empty(t, stub.lastAuth, "login is sent without a token")

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.Equal(t, "Bearer tok-1", stub.lastAuth)
}

func TestLoginFailureDecodesAPIError(t *testing.T) {
	_, c := newStub(t)

	_, err := c.Login(context.Background(), "ada@example.com", "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, c.Session.Token())
}

func TestServerErrorCarriesDetail(t *testing.T) {
	_, c := newStub(t)

	err := c.SendContact(context.Background(), ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "Server Error", apiErr.Message)
	assert.Equal(t, "db down", apiErr.Detail)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	_, c := newStub(t)
	require.NoError(t, c.Session.Set("stale", User{ID: "u-1"}))

	_, err := c.Me(context.Background())
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Empty(t, c.Session.Token())
	assert.Nil(t, c.Session.User())
}

func TestSignupSendsBody(t *testing.T) {
	stub, c := newStub(t)

	require.NoError(t, c.Signup(context.Background(), "Ada", "ada@example.com"))
	assert.Equal(t, "ada@example.com", stub.lastBody["email"])
}

func TestAnalyzeSendsTasks(t *testing.T) {
	stub, c := newStub(t)

	msgs, err := c.Analyze(context.Background(), []assistant.Task{{Title: "Write report"}}, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, assistant.Welcome, msgs[0].Category)

	tasks, ok := stub.lastBody["tasks"].([]any)
	require.True(t, ok)
	assert.Len(t, tasks, 1)
	assert.NotContains(t, stub.lastBody, "today")
}

func TestLogoutClearsStoredSession(t *testing.T) {
	_, c := newStub(t)
	_, err := c.Login(context.Background(), "ada@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, c.Logout())
	assert.Empty(t, c.Session.Token())
}
