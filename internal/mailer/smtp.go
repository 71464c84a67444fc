package mailer

import (
	"context"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/vallamsettyashok/portfolio/internal/config"
)

// SMTPSender sends through an SMTP relay with PLAIN auth.
type SMTPSender struct {
	addr     string
	host     string
	user     string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		sendMail: smtp.SendMail,
	}
}

// Send implements Sender. net/smtp has no context support, so ctx is only
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	return s.sendMail(s.addr, auth, s.user, email.To, s.compose(email))
}

func (s *SMTPSender) compose(email *Email) []byte {
	var b strings.Builder
	b.WriteString("To: " + strings.Join(email.To, ", ") + "\r\n")
	b.WriteString("Subject: " + headerSafe(email.Subject) + "\r\n")
	b.WriteString("From: " + s.user + "\r\n")
	if email.ReplyTo != "" {
		b.WriteString("Reply-To: " + headerSafe(email.ReplyTo) + "\r\n")
	}
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(email.Text)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// headerSafe keeps visitor input from starting a new header line.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
