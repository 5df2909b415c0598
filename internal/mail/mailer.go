package mail

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
	gomail "gopkg.in/gomail.v2"

	"diary/internal/config"
)

// ErrNotConfigured reports that no SMTP transport is available. Callers treat
// it like any delivery failure: warn the user, do not abort the request.
var ErrNotConfigured = errors.New("mail transport not configured")

type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

const resetSubject = "Personal Diary - Password Reset Request"

const resetBody = `To reset your password, visit the following link:
%s

If you did not make this request then simply ignore this email and no changes will be made.
The link will expire in 30 minutes.
`

type SMTPMailer struct {
	cfg config.Mail
	log *slog.Logger

	// send is swappable in tests; defaults to a real SMTP dial.
	send func(m *gomail.Message) error
}

func New(cfg config.Mail, log *slog.Logger) *SMTPMailer {
	m := &SMTPMailer{
		cfg: cfg,
		log: log.With("component", "mailer"),
	}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// SendPasswordReset delivers the reset link synchronously. Failures are
// reported to the caller but never logged with the URL itself; the link is a
// credential.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	if !m.cfg.Configured() {
		m.log.Warn("reset email skipped, mail transport not configured", "to", to)
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", fmt.Sprintf(resetBody, resetURL))

	if err := m.send(msg); err != nil {
		m.log.Error("failed to send reset email", "to", to, "error", err)
		return fmt.Errorf("send reset email: %w", err)
	}

	m.log.Info("reset email sent", "to", to)
	return nil
}
