package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/outreach-crm/outreach-api/internal/config"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSender struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeSender) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: "{}"}, nil
}

func TestSendGridNotifier_Send(t *testing.T) {
	sender := &fakeSender{status: 202}
	n := newSendGridNotifierWith(sender, "crm@example.com", "Outreach CRM", zap.NewNop())

	err := n.Send(context.Background(), &Message{
		To:        []string{"rep@example.com", "lead@example.com"},
		Subject:   "Outreach due 2024-01-17",
		PlainText: "3 contacts due",
		HTML:      "<p>3 contacts due</p>",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	email := sender.sent[0]
	assert.Equal(t, "Outreach due 2024-01-17", email.Subject)
	assert.Equal(t, "crm@example.com", email.From.Address)
	require.Len(t, email.Personalizations, 1)
	assert.Len(t, email.Personalizations[0].To, 2)
	require.Len(t, email.Content, 2)
	assert.Equal(t, "text/plain", email.Content[0].Type)
	assert.Equal(t, "text/html", email.Content[1].Type)
}

func TestSendGridNotifier_Errors(t *testing.T) {
	ctx := context.Background()
	msg := &Message{To: []string{"rep@example.com"}, Subject: "s", PlainText: "b"}

	rejected := newSendGridNotifierWith(&fakeSender{status: 401}, "crm@example.com", "", zap.NewNop())
	assert.ErrorContains(t, rejected.Send(ctx, msg), "401")

	failing := newSendGridNotifierWith(&fakeSender{err: errors.New("dial tcp: timeout")}, "crm@example.com", "", zap.NewNop())
	assert.ErrorContains(t, failing.Send(ctx, msg), "failed to send email")

	sender := &fakeSender{status: 202}
	n := newSendGridNotifierWith(sender, "crm@example.com", "", zap.NewNop())
	assert.ErrorIs(t, n.Send(ctx, &Message{Subject: "s"}), ErrNoRecipients)
	assert.Empty(t, sender.sent)
}

func TestConsoleNotifier_LogsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewConsoleNotifier(zap.New(core))

	require.NoError(t, n.Send(context.Background(), &Message{
		To:        []string{"rep@example.com"},
		Subject:   "Outreach due",
		PlainText: "nothing due",
	}))

	entries := logs.FilterMessage("email not sent (console mode)").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Outreach due", entries[0].ContextMap()["subject"])
}

func TestNewNotifier_PicksImplementation(t *testing.T) {
	_, console := NewNotifier(&config.DigestConfig{}, zap.NewNop()).(*ConsoleNotifier)
	assert.True(t, console)

	_, sg := NewNotifier(&config.DigestConfig{SendGridApiKey: "SG.key", FromEmail: "crm@example.com"}, zap.NewNop()).(*SendGridNotifier)
	assert.True(t, sg)
}
