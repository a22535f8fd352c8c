package application

import (
	"context"
	"io"
	"time"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
)

// Mail purposes double as template names in the email worker.
const (
	PurposeVerification = string(entity.PurposeVerification)
	PurposeReset        = string(entity.PurposeReset)
	PurposeContact      = "contact"
)

// Notifier delivers a templated email to one recipient.
type Notifier interface {
	Send(ctx context.Context, to, purpose string, data map[string]any) error
}

// Identity holds the profile claims of a verified federated token.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier validates a third-party identity token.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// TokenIssuer mints session tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// ContactIndex is the full-text index over contact submissions.
type ContactIndex interface {
	Index(ctx context.Context, m *entity.ContactMessage) error
	Search(ctx context.Context, query string, size int) ([]entity.ContactMessage, error)
}

// ObjectStore uploads a blob and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// RequestMeta describes the caller of a request; it ends up in outgoing mail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type metaKey struct{}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, m)
}

func requestMeta(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(metaKey{}).(RequestMeta)
	return m
}
