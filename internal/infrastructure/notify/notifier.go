package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/pkg/mailer"
)

type publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RabbitNotifier enqueues templated email jobs for the email worker.
type RabbitNotifier struct {
	pub publisher
}

func NewRabbitNotifier(pub publisher) *RabbitNotifier {
	return &RabbitNotifier{pub: pub}
}

func (n *RabbitNotifier) Send(ctx context.Context, to, purpose string, data map[string]any) error {
	job := mailer.EmailJob{To: to, Template: purpose, Data: data}
	if err := n.pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue %s email: %w", purpose, err)
	}
	return nil
}

// LogNotifier stands in when mail sending is disabled. Codes are only
// written out when ShowCodes is set, which main does in development.
type LogNotifier struct {
	Logger    logrus.FieldLogger
	ShowCodes bool
}

func (n *LogNotifier) Send(_ context.Context, to, purpose string, data map[string]any) error {
	fields := logrus.Fields{"to": to, "purpose": purpose}
	if code, ok := data["Code"]; ok && n.ShowCodes {
		fields["code"] = code
	}
	n.Logger.WithFields(fields).Info("email suppressed")
	return nil
}

var (
	_ application.Notifier = (*RabbitNotifier)(nil)
	_ application.Notifier = (*LogNotifier)(nil)
)
