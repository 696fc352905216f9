// Package notify delivers the daily outreach digest by email.
package notify

import (
	"context"
	"errors"

	"github.com/outreach-crm/outreach-api/internal/config"
	"go.uber.org/zap"
)

// ErrNoRecipients is returned when a message has nobody to go to
var ErrNoRecipients = errors.New("message has no recipients")

// Message is one outgoing email
type Message struct {
	To        []string
	Subject   string
	PlainText string
	HTML      string
}

// Notifier sends messages
type Notifier interface {
	Send(ctx context.Context, msg *Message) error
}

// NewNotifier returns a SendGrid notifier when an API key is configured and a
// console notifier otherwise
func NewNotifier(cfg *config.DigestConfig, logger *zap.Logger) Notifier {
	if cfg.SendGridApiKey == "" {
		logger.Warn("digest notifier in console-only mode (set SENDGRID_API_KEY to send email)")
		return NewConsoleNotifier(logger)
	}
	logger.Info("digest notifier initialized with SendGrid", zap.String("from", cfg.FromEmail))
	return NewSendGridNotifier(cfg.SendGridApiKey, cfg.FromEmail, cfg.FromName, logger)
}

// ConsoleNotifier writes messages to the log instead of sending them
type ConsoleNotifier struct {
	logger *zap.Logger
}

func NewConsoleNotifier(logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

func (n *ConsoleNotifier) Send(_ context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	n.logger.Info("email not sent (console mode)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.PlainText),
	)
	return nil
}
