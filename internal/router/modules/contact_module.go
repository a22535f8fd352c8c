package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/raushan165/Taskpilot/internal/interface/http"
	"github.com/raushan165/Taskpilot/internal/interface/middleware"
	"github.com/raushan165/Taskpilot/pkg/helpers"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	JWT     *helpers.JWTManager
}

func NewContactModule(h *handlers.ContactHandler, jwt *helpers.JWTManager) *ContactModule {
	return &ContactModule{Handler: h, JWT: jwt}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	// Served with and without the trailing slash; clients post to /api/contact/.
	rg.POST("/contact", m.Handler.Submit)
	rg.POST("/contact/", m.Handler.Submit)
	rg.GET("/contact/search", middleware.Auth(m.JWT), m.Handler.Search)
}
