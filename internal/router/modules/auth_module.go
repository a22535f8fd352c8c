package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/raushan165/Taskpilot/internal/interface/http"
	"github.com/raushan165/Taskpilot/internal/interface/middleware"
	"github.com/raushan165/Taskpilot/pkg/helpers"
)

// AuthModule wires the account flows.
// Public: POST /api/auth/{signup,verify-signup,login,forgot-password,reset-password,google-login}
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signup", m.Handler.Signup)
	auth.POST("/verify-signup", m.Handler.VerifySignup)
	auth.POST("/login", m.Handler.Login)
	auth.POST("/forgot-password", m.Handler.ForgotPassword)
	auth.POST("/reset-password", m.Handler.ResetPassword)
	auth.POST("/google-login", m.Handler.GoogleLogin)

	auth.GET("/me", middleware.Auth(m.JWT), m.Handler.Me)
}
