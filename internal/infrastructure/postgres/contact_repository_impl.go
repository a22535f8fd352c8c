package postgres

import (
	"context"
	"fmt"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
	"github.com/raushan165/Taskpilot/internal/domain/repository"
)

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages
			(name, email, subject, message, service_website, service_ux, service_strategy, service_other)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, m.Name, m.Email, m.Subject, m.Message,
		m.Services.Website, m.Services.UX, m.Services.Strategy, m.Services.Other)

	if err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return fmt.Errorf("insert contact message: %w", translate(err))
	}
	return nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
