package notification

import (
	"fmt"
	"net/smtp"
	"sync"

	"go.uber.org/zap"

	"labdesk/internal/pkg/logger"
)

// Mailer sends plain-text mail. Failures never reach the HTTP caller; callers
// log and drop.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// smtpMailer holds process-wide SMTP auth, built once on first send and reused
// for the process lifetime.
type smtpMailer struct {
	cfg  SMTPConfig
	once sync.Once
	auth smtp.Auth
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" {
		logger.L().Debug("mailer disabled, dropping email", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	m.once.Do(func() {
		if m.cfg.User != "" {
			m.auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
		}
	})

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	return smtp.SendMail(addr, m.auth, m.cfg.From, []string{to}, []byte(msg))
}
