package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/domain/entity"
	"github.com/raushan165/Taskpilot/pkg/response"
)

type AuthHandler struct {
	Svc *application.AuthService
	faults
}

func NewAuthHandler(svc *application.AuthService, logger logrus.FieldLogger, exposeErrors bool) *AuthHandler {
	return &AuthHandler{Svc: svc, faults: faults{Logger: logger, Expose: exposeErrors}}
}

type signupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

type verifySignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

type googleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toSessionUser(u *entity.User) sessionUser {
	return sessionUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// fail maps account errors onto the HTTP taxonomy. notFound is the status
// for an unknown user, which differs between login and forgot-password.
func (h *AuthHandler) fail(c *gin.Context, err error, notFound int) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "All fields are required", nil)
	case errors.Is(err, application.ErrUserExists):
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, notFound, "User not found", nil)
	case errors.Is(err, application.ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "Invalid or expired OTP", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusBadRequest, "Invalid credentials", nil)
	case errors.Is(err, application.ErrFederatedAuth):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		h.serverError(c, err)
	}
}

// Signup POST /api/auth/signup {email}
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.RequestSignup(withMeta(c).Request.Context(), req.Email); err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, http.StatusOK, "OTP sent to email. Please verify.", nil)
}

// VerifySignup POST /api/auth/verify-signup {name,email,otp,password}
func (h *AuthHandler) VerifySignup(c *gin.Context) {
	var req verifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.VerifySignup(c.Request.Context(), application.VerifySignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Code:     req.OTP,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, http.StatusCreated, "User created successfully", gin.H{"user": u})
}

// Login POST /api/auth/login {email,password}
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       toSessionUser(sess.User),
	})
}

// ForgotPassword POST /api/auth/forgot-password {email}
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.ForgotPassword(withMeta(c).Request.Context(), req.Email); err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	response.Success(c, http.StatusOK, "OTP sent to your email", nil)
}

// ResetPassword POST /api/auth/reset-password {email,otp,newPassword}
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	err := h.Svc.ResetPassword(c.Request.Context(), application.ResetPasswordInput{
		Email:       req.Email,
		Code:        req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	response.Success(c, http.StatusOK, "Password reset successfully", nil)
}

// GoogleLogin POST /api/auth/google-login {token}
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	sess, err := h.Svc.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       toSessionUser(sess.User),
	})
}

// Me GET /api/auth/me (bearer)
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": u})
}
