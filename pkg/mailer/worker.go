package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/raushan165/Taskpilot/pkg/mailer/templates"
)

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack     Outcome = iota // sent
	Drop                   // malformed job; nack without requeue
	Requeue                // transient send failure; nack with requeue
)

var ErrEmptyJob = errors.New("email job has neither template nor subject with body")

// Processor turns queued EmailJob payloads into sent mail.
type Processor struct {
	Sender      Sender
	Logger      logrus.FieldLogger
	SendTimeout time.Duration
}

func NewProcessor(sender Sender, logger logrus.FieldLogger) *Processor {
	return &Processor{Sender: sender, Logger: logger, SendTimeout: 15 * time.Second}
}

// Render resolves the subject and bodies of job.
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", ErrEmptyJob
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	if !mailtpl.Known(job.Template) {
		return "", "", "", fmt.Errorf("unknown template %q", job.Template)
	}
	return mailtpl.Render(job.Template, job.Data)
}

// Handle processes one raw queue message.
func (p *Processor) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.Logger.WithError(err).Warn("bad email job payload")
		return Drop
	}
	if job.To == "" {
		p.Logger.Warn("email job without recipient")
		return Drop
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if _, ok := job.Data["RecipientEmail"]; !ok {
		job.Data["RecipientEmail"] = job.To
	}

	subject, text, html, err := Render(job)
	if err != nil {
		p.Logger.WithError(err).WithField("template", job.Template).Warn("render email failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, p.SendTimeout)
	defer cancel()
	if err := p.Sender.Send(c, job.To, subject, text, html); err != nil {
		p.Logger.WithError(err).WithField("template", job.Template).Warn("send email failed")
		return Requeue
	}
	p.Logger.WithField("template", job.Template).Debug("email sent")
	return Ack
}
