package mailer

import (
	"context"
	"sync"

	"clublink/internal/logger"
)

// LogMailer writes messages to the log instead of delivering them. It keeps the messages it
// has seen so local runs can inspect invitation links.
type LogMailer struct {
	mu   sync.Mutex
	sent []SentMessage
}

type SentMessage struct {
	To string
	Message
}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (l *LogMailer) Send(ctx context.Context, to string, msg Message) error {
	logger.Info("Email (log provider)", "to", to, "subject", msg.Subject, "body", msg.HTMLBody)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, SentMessage{To: to, Message: msg})
	return nil
}

// Sent returns a copy of every message sent so far.
func (l *LogMailer) Sent() []SentMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]SentMessage(nil), l.sent...)
}
