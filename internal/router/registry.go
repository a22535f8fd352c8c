package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Module is a feature area (auth, contact, profile, assistant) that mounts its
// routes under /api.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules until RegisterAll mounts them.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts /healthz on the engine and every module under /api.
func (r *Registry) RegisterAll() {
	r.Engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
