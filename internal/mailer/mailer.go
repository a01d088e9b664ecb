// Package mailer delivers outbound email over SMTP. Delivery is strictly
// best-effort: failures are logged and swallowed, never surfaced or retried.
package mailer

import (
	"strconv"

	mail "github.com/go-mail/mail/v2"

	"wealthwise/internal/config"
	"wealthwise/internal/logger"
)

// Mailer sends plain-text email through a configured SMTP server. When
// disabled (the default in development), Send drops messages silently.
type Mailer struct {
	dialer  *mail.Dialer
	from    string
	enabled bool
}

// New builds a Mailer from SMTP configuration.
func New(cfg *config.Config) *Mailer {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		logger.Get().Warnf("Invalid SMTP_PORT %q, falling back to 587", cfg.SMTPPort)
		port = 587
	}

	return &Mailer{
		dialer:  mail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPassword),
		from:    cfg.SMTPFrom,
		enabled: cfg.SMTPEnabled,
	}
}

// Send delivers one message. The returned bool reports whether the message
// was actually handed to the SMTP server; callers use it only to record an
// email_sent flag, never to fail a request.
func (m *Mailer) Send(to, subject, body string) bool {
	if !m.enabled {
		logger.Get().Debugw("email sending disabled, dropping message", "to", to, "subject", subject)
		return false
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Get().Warnw("email delivery failed", "to", to, "subject", subject, "error", err)
		return false
	}
	return true
}
