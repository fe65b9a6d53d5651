package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"clublink/internal/mailer"
)

var invitationTemplate = template.Must(template.New("invitation").Parse(`<html>
<body>
<p>Hello {{.Name}},</p>
<p>A place has opened up in <strong>{{.ClubName}}</strong> and your join request can now be accepted.</p>
<p>
  <a href="{{.AcceptURL}}">Accept invitation</a>
  &nbsp;|&nbsp;
  <a href="{{.DeclineURL}}">Decline invitation</a>
</p>
<p>This invitation expires on {{.ExpiresAt}}.</p>
<p>The ClubLink Team</p>
</body>
</html>`))

var decisionTemplate = template.Must(template.New("decision").Parse(`<html>
<body>
<p>Hello {{.Name}},</p>
{{if .Approved}}<p>Your request to join <strong>{{.ClubName}}</strong> has been approved. Welcome aboard!</p>
{{else}}<p>Your request to join <strong>{{.ClubName}}</strong> was not approved this time.</p>
{{end}}<p>The ClubLink Team</p>
</body>
</html>`))

type emailService struct {
	mailer mailer.Mailer
}

func NewEmailService(m mailer.Mailer) EmailService {
	return &emailService{mailer: m}
}

func (s *emailService) SendWaitlistInvitation(ctx context.Context, email, name, clubName, acceptURL, declineURL string, expiresAt time.Time) error {
	body, err := render(invitationTemplate, map[string]any{
		"Name":       name,
		"ClubName":   clubName,
		"AcceptURL":  acceptURL,
		"DeclineURL": declineURL,
		"ExpiresAt":  expiresAt.UTC().Format("Mon 2 Jan 2006 15:04 MST"),
	})
	if err != nil {
		return err
	}
	msg := mailer.Message{
		Subject:  fmt.Sprintf("A place is available in %s", clubName),
		HTMLBody: body,
	}
	if err := s.mailer.Send(ctx, email, msg); err != nil {
		return fmt.Errorf("failed to send waitlist invitation: %w", err)
	}
	return nil
}

func (s *emailService) SendJoinRequestDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	body, err := render(decisionTemplate, map[string]any{
		"Name":     name,
		"ClubName": clubName,
		"Approved": approved,
	})
	if err != nil {
		return err
	}
	msg := mailer.Message{
		Subject:  fmt.Sprintf("Your request to join %s", clubName),
		HTMLBody: body,
	}
	if err := s.mailer.Send(ctx, email, msg); err != nil {
		return fmt.Errorf("failed to send join request decision: %w", err)
	}
	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
