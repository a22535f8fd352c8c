package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/config"
	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/infrastructure/notify"
	"github.com/raushan165/Taskpilot/internal/infrastructure/search"
	"github.com/raushan165/Taskpilot/pkg/helpers"
)

// Container carries the infrastructure built in main so the router can
// wire modules from it. Optional clients are nil when not configured.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	GCS       *storage.Client
	JWT       *helpers.JWTManager
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client
	Identity  application.IdentityVerifier
}

// Notifier returns the queue-backed notifier, or a logging stand-in when
// sending is disabled or no publisher is available.
func (c *Container) Notifier() application.Notifier {
	if c.Config.MailSendEnabled && c.RabbitPub != nil {
		return notify.NewRabbitNotifier(c.RabbitPub)
	}
	return &notify.LogNotifier{Logger: c.Logger, ShowCodes: c.Config.IsDevelopment()}
}

// ContactIndex returns nil when Elasticsearch is not configured.
func (c *Container) ContactIndex() application.ContactIndex {
	if c.ES == nil {
		return nil
	}
	return search.NewContactIndex(c.ES, c.Config.ESContactIndex)
}

// Avatars returns nil when no bucket is configured.
func (c *Container) Avatars() application.ObjectStore {
	if c.GCS == nil || c.Config.GCSBucket == "" {
		return nil
	}
	return &helpers.GCSUploader{Client: c.GCS, Bucket: c.Config.GCSBucket}
}
