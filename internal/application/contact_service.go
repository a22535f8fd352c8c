package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/config"
	"github.com/raushan165/Taskpilot/internal/domain/entity"
	repo "github.com/raushan165/Taskpilot/internal/domain/repository"
	"github.com/raushan165/Taskpilot/pkg/helpers"
	mailtpl "github.com/raushan165/Taskpilot/pkg/mailer/templates"
)

type ContactService struct {
	Repo     repo.ContactRepository
	Index    ContactIndex // optional
	Notifier Notifier     // optional
	Cfg      *config.Config
	Logger   logrus.FieldLogger
}

func NewContactService(r repo.ContactRepository, index ContactIndex, notifier Notifier, cfg *config.Config, logger logrus.FieldLogger) *ContactService {
	return &ContactService{Repo: r, Index: index, Notifier: notifier, Cfg: cfg, Logger: logger}
}

type ContactInput struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Services entity.ServiceFlags
}

// Submit stores a contact message. Indexing and the inbox notification
// happen after the write and never fail the submission.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*entity.ContactMessage, error) {
	m := &entity.ContactMessage{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
		Services: in.Services,
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, ErrValidation
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	contactMessages.Add(1)

	if s.Index != nil {
		if err := s.Index.Index(ctx, m); err != nil {
			helpers.LogError(s.Logger, "index contact message failed", err, logrus.Fields{"contact_id": m.ID})
		}
	}
	s.notifyInbox(ctx, m)
	return m, nil
}

func (s *ContactService) notifyInbox(ctx context.Context, m *entity.ContactMessage) {
	if s.Notifier == nil || s.Cfg == nil || s.Cfg.ContactInbox == "" {
		return
	}
	data := mailtpl.NewContactData(s.Cfg, s.Cfg.ContactInbox,
		mailtpl.WithTime(m.CreatedAt),
		mailtpl.WithContact(m.Name, m.Email, m.Subject, m.Message, m.Services.Selected()),
	)
	if err := s.Notifier.Send(ctx, s.Cfg.ContactInbox, PurposeContact, data); err != nil {
		helpers.LogError(s.Logger, "contact notification failed", err, logrus.Fields{"contact_id": m.ID})
	}
}

// Search runs a full-text query over submissions. Without an index it returns nothing.
func (s *ContactService) Search(ctx context.Context, q string, size int) ([]entity.ContactMessage, error) {
	if s.Index == nil {
		return []entity.ContactMessage{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, strings.TrimSpace(q), size)
}
