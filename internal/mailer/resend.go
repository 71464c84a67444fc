package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/vallamsettyashok/portfolio/internal/config"
)

// ResendSender sends through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(cfg config.ResendConfig) *ResendSender {
	from := cfg.SenderEmail
	if cfg.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.SenderEmail)
	}
	return &ResendSender{client: resend.NewClient(cfg.APIKey), from: from}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
		Html:    email.HTML,
		ReplyTo: email.ReplyTo,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}
