package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Email is a single outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers transactional mail. Sends are best-effort side effects
// of booking transitions and must never fail the primary operation.
type Sender interface {
	Send(email *Email) error
}

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type SMTPSender struct {
	config Config
	auth   smtp.Auth
}

func NewSMTPSender(config Config) *SMTPSender {
	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &SMTPSender{config: config, auth: auth}
}

func (s *SMTPSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	return smtp.SendMail(addr, s.auth, s.config.FromEmail, email.To, s.buildMessage(email))
}

func (s *SMTPSender) buildMessage(email *Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(email.Body)
	return []byte(b.String())
}

// NoopSender is used when email is disabled in config and in tests.
type NoopSender struct{}

func (NoopSender) Send(*Email) error { return nil }
