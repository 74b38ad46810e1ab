package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/autopartshop/autoparts-backend/pkg/logger"
)

// Mailer sends transactional email. Implementations must be safe for
// concurrent use; callers treat every send as best-effort.
type Mailer interface {
	Send(to, subject, body string) error
}

// Config holds SMTP relay settings
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg Config
}

// NewSMTPMailer creates a Mailer backed by a plain SMTP relay
func NewSMTPMailer(cfg Config) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	logger.Debug("Sending email", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.cfg.From, to, subject, body))
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return err
	}

	logger.Debug("Email sent", map[string]interface{}{
		"to": to,
	})
	return nil
}

// NopMailer discards all mail. Used when SMTP is not configured and in tests.
type NopMailer struct{}

func (NopMailer) Send(to, subject, body string) error {
	logger.Debug("Mail sending disabled, dropping message", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
