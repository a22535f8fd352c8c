package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/raushan165/Taskpilot/internal/interface/http"
	"github.com/raushan165/Taskpilot/internal/interface/middleware"
	"github.com/raushan165/Taskpilot/pkg/helpers"
)

type AssistantModule struct {
	Handler *handlers.AssistantHandler
	JWT     *helpers.JWTManager
}

func NewAssistantModule(h *handlers.AssistantHandler, jwt *helpers.JWTManager) *AssistantModule {
	return &AssistantModule{Handler: h, JWT: jwt}
}

func (m *AssistantModule) Register(rg *gin.RouterGroup) {
	rg.POST("/assistant/analyze", middleware.Auth(m.JWT), m.Handler.Analyze)
}
