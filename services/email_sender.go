package services

import (
	"fmt"
	"strconv"

	"registration-module/config"
	"registration-module/logger"

	"gopkg.in/gomail.v2"
)

// Mailer sends email directly via SMTP. It is disabled when SMTP credentials
// are not configured.
type Mailer struct {
	cfg config.Config
}

// NewMailer builds a Mailer from config.
func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPUser != "" && m.cfg.SMTPPass != ""
}

// Send delivers an HTML email, optionally attaching files.
func (m *Mailer) Send(to, subject, body string, attachment ...string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	from := m.cfg.EmailFrom
	if from == "" {
		from = m.cfg.SMTPUser
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if len(attachment) > 0 {
		msg.Attach(attachment[0])
	}

	port := 587
	if v, err := strconv.Atoi(m.cfg.SMTPPort); err == nil {
		port = v
	}

	d := gomail.NewDialer(m.cfg.SMTPHost, port, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		logger.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent to: %s", to)
	return nil
}
