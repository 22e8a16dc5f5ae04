package mailer

import (
	"context"
	"errors"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

// Sender is the outbound mail surface consumed by the notification worker.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer delivers email through the configured SMTP relay.
type Mailer struct {
	dialer dialer
	from   string
	logg   *logger.Logger
}

// New builds an SMTP-backed mailer from config.
func New(cfg config.SMTPConfig, logg *logger.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		dialer: d,
		from:   cfg.From,
		logg:   logg,
	}, nil
}

// Send delivers a single HTML email. Delivery errors are returned to the
// caller, which decides whether the failure blocks the surrounding operation.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("recipient is required")
	}
	if msg.Subject == "" {
		return errors.New("subject is required")
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTMLBody)

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}

	if m.logg != nil {
		fields := map[string]any{"to": msg.To, "subject": msg.Subject}
		m.logg.Info(m.logg.WithFields(ctx, fields), "email sent")
	}
	return nil
}
