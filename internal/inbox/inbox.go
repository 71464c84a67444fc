// Package inbox accepts contact submissions on the server side and forwards
// them to the owner's mailbox. Nothing is stored.
package inbox

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/vallamsettyashok/portfolio/internal/contact"
	"github.com/vallamsettyashok/portfolio/internal/mailer"
)

var (
	mailPolicy *bluemonday.Policy
	policyOnce sync.Once
)

// cleanText drops control characters other than newline and tab. Everything
// else, angle brackets included, is kept as the visitor wrote it.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// htmlBody renders plain text as a paragraph with line breaks, safe to embed
// in an HTML mail part.
func htmlBody(text string) string {
	policyOnce.Do(func() {
		mailPolicy = bluemonday.NewPolicy()
		mailPolicy.AllowElements("p", "br")
	})
	escaped := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	return mailPolicy.Sanitize("<p>" + escaped + "</p>")
}

// DeliveryError wraps a failure of the configured mail provider.
type DeliveryError struct {
	ID  string
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("inbox: delivery of %s failed: %v", e.ID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Service forwards submissions to Owner through a mailer.Sender.
type Service struct {
	owner  string
	sender mailer.Sender
	log    logrus.FieldLogger
	newID  func() string
}

func NewService(owner string, sender mailer.Sender, log logrus.FieldLogger) *Service {
	return &Service{
		owner:  owner,
		sender: sender,
		log:    log.WithField("component", "inbox"),
		newID:  func() string { return uuid.NewString() },
	}
}

// Owner returns the address messages are forwarded to.
func (s *Service) Owner() string { return s.owner }

// Deliver validates f, forwards it and returns its reference id.
// A *contact.ValidationError means nothing was sent; a form whose email or
// message is empty once control characters are dropped is rejected the same
// way.
func (s *Service) Deliver(ctx context.Context, f contact.Form) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	clean := contact.Form{
		Name:    strings.TrimSpace(cleanText(f.Name)),
		Email:   strings.TrimSpace(cleanText(f.Email)),
		Message: cleanText(f.Message),
	}
	if err := clean.Validate(); err != nil {
		return "", err
	}

	id := s.newID()

	if err := s.sender.Send(ctx, s.compose(clean)); err != nil {
		s.log.WithError(err).WithField("reference_id", id).Error("contact message delivery failed")
		return "", &DeliveryError{ID: id, Err: err}
	}

	s.log.WithField("reference_id", id).Info("contact message delivered to inbox")
	return id, nil
}

func (s *Service) compose(f contact.Form) *mailer.Email {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, f.Email, f.Message)

	return &mailer.Email{
		To:      []string{s.owner},
		ReplyTo: f.Email,
		Subject: "Portfolio Contact: " + name,
		Text:    body,
		HTML:    htmlBody(body),
	}
}
