package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushan165/Taskpilot/config"
	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/domain/entity"
	"github.com/raushan165/Taskpilot/internal/domain/repository"
	"github.com/raushan165/Taskpilot/internal/infrastructure/redisstore"
	"github.com/raushan165/Taskpilot/internal/interface/middleware"
	"github.com/raushan165/Taskpilot/pkg/helpers"
	"github.com/raushan165/Taskpilot/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type memUsers struct {
	mu    sync.Mutex
	users []*entity.User
	fault error
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if strings.EqualFold(x.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.ID = fmt.Sprintf("u-%d", len(m.users)+1)
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return nil, m.fault
	}
	for _, x := range m.users {
		if match(x) {
			cp := *x
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) })
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.ID == u.ID {
			x.Name, x.AvatarURL = u.Name, u.AvatarURL
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.ID == id {
			x.Password = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

type inbox struct {
	mu   sync.Mutex
	code string
	to   []string
}

func (i *inbox) Send(_ context.Context, to, _ string, data map[string]any) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.to = append(i.to, to)
	if code, ok := data["Code"].(string); ok {
		i.code = code
	}
	return nil
}

type contacts struct {
	saved []*entity.ContactMessage
}

func (c *contacts) Create(_ context.Context, m *entity.ContactMessage) error {
	m.ID = fmt.Sprintf("c-%d", len(c.saved)+1)
	m.CreatedAt = time.Now()
	c.saved = append(c.saved, m)
	return nil
}

type verifier struct{}

func (verifier) Verify(_ context.Context, token string) (*application.Identity, error) {
	if token != "good" {
		return nil, errors.New("Wrong number of segments in token")
	}
	return &application.Identity{Email: "g@mail.com", Name: "Gee"}, nil
}

type server struct {
	engine   *gin.Engine
	users    *memUsers
	inbox    *inbox
	contacts *contacts
	jwt      *helpers.JWTManager
}

func newServer(t *testing.T, expose bool) *server {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger, _ := test.NewNullLogger()
	s := &server{users: &memUsers{}, inbox: &inbox{}, contacts: &contacts{}, jwt: helpers.NewJWTManager("test-secret")}
	cfg := &config.Config{CompanyName: "TaskMaster", OTPTTL: 10 * time.Minute, ContactInbox: "inbox@example.com"}

	authSvc := application.NewAuthService(s.users, redisstore.NewOTPStore(rdb, cfg.OTPTTL), s.inbox, verifier{}, s.jwt, cfg, logger)
	contactSvc := application.NewContactService(s.contacts, nil, s.inbox, cfg, logger)
	profileSvc := application.NewProfileService(s.users, nil, logger)

	auth := NewAuthHandler(authSvc, logger, expose)
	contact := NewContactHandler(contactSvc, logger, expose)
	profile := NewProfileHandler(profileSvc, logger, expose)
	adv := NewAssistantHandler()
	adv.now = func() time.Time { return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	api := r.Group("/api")
	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/verify-signup", auth.VerifySignup)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/forgot-password", auth.ForgotPassword)
	api.POST("/auth/reset-password", auth.ResetPassword)
	api.POST("/auth/google-login", auth.GoogleLogin)
	api.POST("/contact", contact.Submit)
	protected := api.Group("/", middleware.Auth(s.jwt))
	protected.GET("/auth/me", auth.Me)
	protected.GET("/profile", profile.GetProfile)
	protected.PUT("/profile", profile.UpdateProfile)
	protected.POST("/profile/avatar", profile.UploadAvatar)
	protected.POST("/assistant/analyze", adv.Analyze)
	s.engine = r
	return s
}

func (s *server) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (s *server) register(t *testing.T, name, email, password string) {
	t.Helper()
	code, _ := s.do(t, http.MethodPost, "/api/auth/signup", gin.H{"name": name, "email": email}, "")
	require.Equal(t, http.StatusOK, code)
	code, body := s.do(t, http.MethodPost, "/api/auth/verify-signup",
		gin.H{"name": name, "email": email, "otp": s.inbox.code, "password": password}, "")
	require.Equal(t, http.StatusCreated, code, body)
}

func TestSignupVerifyLoginMe(t *testing.T) {
	s := newServer(t, false)

	code, body := s.do(t, http.MethodPost, "/api/auth/signup", gin.H{"email": "foo@bar.com"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "otp")
	otp := s.inbox.code

	verify := gin.H{"name": "Foo", "email": "foo@bar.com", "otp": otp, "password": "secret1"}
	code, body = s.do(t, http.MethodPost, "/api/auth/verify-signup", verify, "")
	require.Equal(t, http.StatusCreated, code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "foo@bar.com", user["email"])
	assert.NotContains(t, user, "password")

	code, body = s.do(t, http.MethodPost, "/api/auth/verify-signup", verify, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid or expired OTP", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "FOO@bar.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, code)
	token := body["token"].(string)
	assert.Equal(t, "Foo", body["user"].(map[string]any)["name"])

	code, body = s.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, user["id"], body["user"].(map[string]any)["id"])
}

func TestAuthErrorStatuses(t *testing.T) {
	s := newServer(t, false)
	s.register(t, "Foo", "foo@bar.com", "secret1")

	cases := []struct {
		name    string
		path    string
		body    gin.H
		status  int
		message string
	}{
		{"signup existing", "/api/auth/signup", gin.H{"email": "Foo@Bar.com"}, 400, "User already exists"},
		{"signup missing email", "/api/auth/signup", gin.H{}, 400, "email is required"},
		{"login unknown", "/api/auth/login", gin.H{"email": "x@y.z", "password": "secret1"}, 400, "User not found"},
		{"login wrong password", "/api/auth/login", gin.H{"email": "foo@bar.com", "password": "nope123"}, 400, "Invalid credentials"},
		{"forgot unknown", "/api/auth/forgot-password", gin.H{"email": "x@y.z"}, 404, "User not found"},
		{"reset bad code", "/api/auth/reset-password", gin.H{"email": "foo@bar.com", "otp": "000000", "newPassword": "secret2"}, 400, "Invalid or expired OTP"},
		{"google bad token", "/api/auth/google-login", gin.H{"token": "bad"}, 400, "Google Sign-In failed: Wrong number of segments in token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, tc.path, tc.body, "")
			assert.Equal(t, tc.status, code)
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestMultibytePasswordOverByteLimitIsRejected(t *testing.T) {
	s := newServer(t, false)
	long := strings.Repeat("é", 40)

	code, _ := s.do(t, http.MethodPost, "/api/auth/signup", gin.H{"email": "foo@bar.com"}, "")
	require.Equal(t, http.StatusOK, code)
	code, body := s.do(t, http.MethodPost, "/api/auth/verify-signup",
		gin.H{"name": "Foo", "email": "foo@bar.com", "otp": s.inbox.code, "password": long}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "password must be at least 6 characters and at most 72 bytes long", body["message"])

	s.register(t, "Foo", "foo@bar.com", "secret1")
	code, _ = s.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "foo@bar.com"}, "")
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/api/auth/reset-password",
		gin.H{"email": "foo@bar.com", "otp": s.inbox.code, "newPassword": long}, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSignupCodeRejectedByReset(t *testing.T) {
	s := newServer(t, false)

	code, _ := s.do(t, http.MethodPost, "/api/auth/signup", gin.H{"email": "g@mail.com"}, "")
	require.Equal(t, http.StatusOK, code)
	signupCode := s.inbox.code
	code, _ = s.do(t, http.MethodPost, "/api/auth/google-login", gin.H{"token": "good"}, "")
	require.Equal(t, http.StatusOK, code)

	code, body := s.do(t, http.MethodPost, "/api/auth/reset-password",
		gin.H{"email": "g@mail.com", "otp": signupCode, "newPassword": "hijack1"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid or expired OTP", body["message"])
}

func TestResetThenLogin(t *testing.T) {
	s := newServer(t, false)
	s.register(t, "Foo", "foo@bar.com", "oldpass")

	code, _ := s.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "foo@bar.com"}, "")
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/api/auth/reset-password",
		gin.H{"email": "foo@bar.com", "otp": s.inbox.code, "newPassword": "newpass"}, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "foo@bar.com", "password": "newpass"}, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "foo@bar.com", "password": "oldpass"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGoogleLogin(t *testing.T) {
	s := newServer(t, false)
	code, body := s.do(t, http.MethodPost, "/api/auth/google-login", gin.H{"token": "good"}, "")
	require.Equal(t, http.StatusOK, code)
	claims, err := s.jwt.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, body["user"].(map[string]any)["id"], claims.UserID)
}

func TestServerFaultDetailOnlyWhenExposed(t *testing.T) {
	for _, expose := range []bool{false, true} {
		s := newServer(t, expose)
		s.users.fault = errors.New("connection refused")

		code, body := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@b.c", "password": "secret1"}, "")
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Server Error", body["message"])
		if expose {
			assert.Contains(t, body["error"], "connection refused")
		} else {
			assert.NotContains(t, body, "error")
		}
	}
}

func TestContactSubmit(t *testing.T) {
	s := newServer(t, false)

	code, body := s.do(t, http.MethodPost, "/api/contact", gin.H{"name": "Ann", "email": "ann@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Name, email and message are required", body["message"])
	assert.Empty(t, s.contacts.saved)

	code, body = s.do(t, http.MethodPost, "/api/contact", gin.H{
		"name": "Ann", "email": "ann@x.com", "message": "hi", "services": gin.H{"website": true},
	}, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Message sent successfully", body["message"])
	require.Len(t, s.contacts.saved, 1)
	assert.Equal(t, entity.ServiceFlags{Website: true}, s.contacts.saved[0].Services)
	assert.Equal(t, map[string]any{"website": true, "ux": false, "strategy": false, "other": false},
		body["data"].(map[string]any)["services"])
	assert.Contains(t, s.inbox.to, "inbox@example.com")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newServer(t, false)
	for _, path := range []string{"/api/auth/me", "/api/profile"} {
		code, _ := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
	code, _ := s.do(t, http.MethodPost, "/api/assistant/analyze", gin.H{"tasks": []any{}}, "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestProfileUpdate(t *testing.T) {
	s := newServer(t, false)
	s.register(t, "Foo", "foo@bar.com", "secret1")
	_, body := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "foo@bar.com", "password": "secret1"}, "")
	token := body["token"].(string)

	code, body := s.do(t, http.MethodPut, "/api/profile", gin.H{"name": "Bar"}, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bar", body["user"].(map[string]any)["name"])

	code, _ = s.do(t, http.MethodPut, "/api/profile", gin.H{"avatar_url": "not a url"}, token)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAnalyze(t *testing.T) {
	s := newServer(t, false)
	token, _, err := s.jwt.Issue("u-1")
	require.NoError(t, err)

	code, body := s.do(t, http.MethodPost, "/api/assistant/analyze", gin.H{"tasks": []gin.H{
		{"title": "File taxes", "completed": false, "deadline": "2024-05-01"},
		{"title": "Call mom", "completed": false, "isPinned": true},
	}}, token)
	require.Equal(t, http.StatusOK, code)
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "overdue", msgs[0].(map[string]any)["category"])
	assert.Equal(t, "error", msgs[0].(map[string]any)["type"])
	assert.Equal(t, "pinned", msgs[1].(map[string]any)["category"])

	code, body = s.do(t, http.MethodPost, "/api/assistant/analyze", gin.H{
		"tasks": []gin.H{{"title": "File taxes", "deadline": "2024-05-01"}},
		"today": "2024-04-30",
	}, token)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["messages"])
}
