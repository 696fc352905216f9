package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// mailSender is the part of *sendgrid.Client the notifier uses
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier sends messages through the SendGrid v3 API
type SendGridNotifier struct {
	client    mailSender
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string, logger *zap.Logger) *SendGridNotifier {
	return newSendGridNotifierWith(sendgrid.NewSendClient(apiKey), fromEmail, fromName, logger)
}

func newSendGridNotifierWith(client mailSender, fromEmail, fromName string, logger *zap.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

// Send delivers msg as a single email with every recipient in one personalization
func (n *SendGridNotifier) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	email := mail.NewV3Mail()
	email.SetFrom(mail.NewEmail(n.fromName, n.fromEmail))
	email.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, addr := range msg.To {
		p.AddTos(mail.NewEmail("", addr))
	}
	email.AddPersonalizations(p)

	email.AddContent(mail.NewContent("text/plain", msg.PlainText))
	if msg.HTML != "" {
		email.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	resp, err := n.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		n.logger.Error("sendgrid rejected email",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", resp.Body),
		)
		return fmt.Errorf("sendgrid returned error status: %d", resp.StatusCode)
	}

	n.logger.Info("email sent",
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.To)),
		zap.Int("status_code", resp.StatusCode),
	)
	return nil
}
