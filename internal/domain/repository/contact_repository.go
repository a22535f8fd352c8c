package repository

import (
	"context"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, m *entity.ContactMessage) error
}
