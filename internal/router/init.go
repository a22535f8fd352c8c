package router

import (
	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/container"
	pginfra "github.com/raushan165/Taskpilot/internal/infrastructure/postgres"
	"github.com/raushan165/Taskpilot/internal/infrastructure/redisstore"
	handlers "github.com/raushan165/Taskpilot/internal/interface/http"
	"github.com/raushan165/Taskpilot/internal/router/modules"
)

// InitModules builds services from the container and registers every
// feature module. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	expose := cfg.IsDevelopment()
	notifier := c.Notifier()

	users := pginfra.NewUserRepository(c.PGPool)
	contacts := pginfra.NewContactRepository(c.PGPool)
	otps := redisstore.NewOTPStore(c.Redis, cfg.OTPTTL)

	authSvc := application.NewAuthService(users, otps, notifier, c.Identity, c.JWT, cfg, c.Logger)
	contactSvc := application.NewContactService(contacts, c.ContactIndex(), notifier, cfg, c.Logger)
	profileSvc := application.NewProfileService(users, c.Avatars(), c.Logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, c.Logger, expose), c.JWT))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(contactSvc, c.Logger, expose), c.JWT))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, c.Logger, expose), c.JWT))
	r.Add(modules.NewAssistantModule(handlers.NewAssistantHandler(), c.JWT))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
