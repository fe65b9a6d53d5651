package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"clublink/internal/domain"
	"clublink/internal/logger"
)

type smtpMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(host string, port int, username, password, from, fromName string) Mailer {
	return &smtpMailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}
}

func (s *smtpMailer) buildMessage(to string, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	return m
}

func (s *smtpMailer) Send(ctx context.Context, to string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.ExternalServiceCall("smtp", "send", "host", s.dialer.Host, "to", to)
	err := s.dialer.DialAndSend(s.buildMessage(to, msg))
	logger.ExternalServiceResult("smtp", "send", err)
	if err != nil {
		return domain.Dependency("smtp", fmt.Errorf("failed to send email via gomail: %w", err))
	}
	return nil
}
