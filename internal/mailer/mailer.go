package mailer

import (
	"context"
	"fmt"

	"clublink/internal/config"
)

// Message is a single outbound HTML email.
type Message struct {
	Subject  string
	HTMLBody string
}

// Mailer delivers messages through an outbound provider.
type Mailer interface {
	Send(ctx context.Context, to string, msg Message) error
}

// New returns the mailer selected by cfg.Email.Provider.
func New(cfg *config.Config) (Mailer, error) {
	switch cfg.Email.Provider {
	case "sendgrid":
		return NewSendGridMailer(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName), nil
	case "smtp":
		return NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Email.From, cfg.Email.FromName), nil
	case "log", "":
		return NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
