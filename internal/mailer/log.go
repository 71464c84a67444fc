package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender only records that a message arrived. Used in development when no
// provider is configured.
type LogSender struct {
	log logrus.FieldLogger
}

func NewLogSender(log logrus.FieldLogger) *LogSender {
	return &LogSender{log: log.WithField("component", "mailer")}
}

func (s *LogSender) Send(_ context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"to":       email.To,
		"reply_to": email.ReplyTo,
		"subject":  email.Subject,
	}).Info("contact message delivered to log")
	return nil
}
