package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/raushan165/Taskpilot/internal/interface/http"
	"github.com/raushan165/Taskpilot/internal/interface/middleware"
	"github.com/raushan165/Taskpilot/pkg/helpers"
)

// ProfileModule serves the signed-in user's profile. All routes need a bearer token.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("", m.Handler.GetProfile)
		auth.PUT("", m.Handler.UpdateProfile)
		auth.POST("/avatar", m.Handler.UploadAvatar)
	}
}
