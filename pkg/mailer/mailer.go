// Package mailer delivers transactional email. The core only depends on the
// Mailer interface; delivery itself is an external concern.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Mailer sends a plain-text email to a single recipient
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ResendMailer implements Mailer using the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a new ResendMailer
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a plain-text email through Resend
func (m *ResendMailer) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
