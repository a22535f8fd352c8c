package templates

import (
	"strings"
	"time"

	"github.com/raushan165/Taskpilot/config"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		d.Time = t.UTC().Format("02 January 2006, 15:04")
	}
}

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		d.ExpiresAtText = time.Now().Add(dur).UTC().Format("02 January 2006, 15:04")
		d.ExpiresInMinutes = int(dur.Minutes())
	}
}

func WithCode(code string) Option { return func(d *EmailData) { d.Code = code } }

// WithContact copies a contact submission into the template data.
func WithContact(name, email, subject, message string, services []string) Option {
	return func(d *EmailData) {
		d.SenderName = name
		d.SenderEmail = email
		d.Subject = strings.TrimSpace(subject)
		d.Message = message
		d.Services = strings.Join(services, ", ")
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts
func NewBaseEmailData(cfg *config.Config, typ string, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          recipient,
		RecipientEmail: recipient,
		Type:           typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.AppName = cfg.AppName
		d.LogoURL = cfg.LogoURL
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerificationData(cfg *config.Config, email, code string, opts ...Option) map[string]any {
	opts = append([]Option{WithCode(code)}, opts...)
	return ToMap(NewBaseEmailData(cfg, Verification, "", email, opts...))
}

func NewResetData(cfg *config.Config, name, email, code string, opts ...Option) map[string]any {
	opts = append([]Option{WithCode(code)}, opts...)
	return ToMap(NewBaseEmailData(cfg, Reset, name, email, opts...))
}

func NewContactData(cfg *config.Config, inbox string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Contact, "", inbox, opts...))
}
