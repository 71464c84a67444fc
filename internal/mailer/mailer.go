// Package mailer delivers contact messages to the site owner's inbox.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vallamsettyashok/portfolio/internal/config"
)

var (
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")
	ErrNoSubject   = errors.New("mailer: email must have a subject")
	ErrNoContent   = errors.New("mailer: email must have a body")
)

// Sender delivers a fully prepared email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Email is a message ready for sending. Text is required; HTML is an
// optional alternative part for providers that support one.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the fields every provider needs.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.Text == "":
		return ErrNoContent
	}
	return nil
}

// New picks a Sender for cfg. With no provider named, SMTP is used when SMTP
// credentials are present, then Resend when an API key is present, and
// otherwise messages are only logged.
func New(cfg config.MailConfig, log logrus.FieldLogger) (Sender, error) {
	provider := cfg.Provider
	if provider == "" {
		switch {
		case cfg.SMTP.User != "" && cfg.SMTP.Password != "":
			provider = "smtp"
		case cfg.Resend.APIKey != "":
			provider = "resend"
		default:
			provider = "log"
		}
	}

	switch provider {
	case "smtp":
		if cfg.SMTP.User == "" || cfg.SMTP.Password == "" {
			return nil, errors.New("mailer: SMTP credentials not configured")
		}
		return NewSMTPSender(cfg.SMTP), nil
	case "resend":
		if cfg.Resend.APIKey == "" || cfg.Resend.SenderEmail == "" {
			return nil, errors.New("mailer: resend api key and sender email are required")
		}
		return NewResendSender(cfg.Resend), nil
	case "log":
		log.Warn("no mail provider configured, contact messages will only be logged")
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("mailer: unknown provider %q", provider)
	}
}
