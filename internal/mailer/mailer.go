package mailer

import (
	"context"

	"github.com/diewo77/techfix/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message is a plain text email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers transactional mail.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when a host is configured and a logging
// mailer otherwise.
func New(cfg config.SMTPConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		return &Log{log: log}
	}
	return NewSMTP(cfg)
}

// SMTP sends mail through a relay.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := compose(m.from, msg)
	if err := m.dialer.DialAndSend(gm); err != nil {
		return errors.Wrapf(err, "send mail to %s", msg.To)
	}
	return nil
}

func compose(from string, msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	return gm
}

// Log writes mails to the logger. Used in development.
type Log struct {
	log *zap.Logger
}

func (m *Log) Send(_ context.Context, msg Message) error {
	m.log.Info("mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}
