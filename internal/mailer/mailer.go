// Package mailer delivers verification emails.
package mailer

import (
	"context"

	"AuthKit/internal/config"

	"go.uber.org/zap"
)

// Mailer отправляет HTML-письмо одному получателю.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// New returns an SMTP mailer when a host is configured, otherwise a mailer
// that only writes the message to the log.
func New(cfg *config.Config, logger *zap.SugaredLogger) Mailer {
	if cfg.SMTPHost == "" {
		return &LogMailer{Logger: logger}
	}
	return &SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Pass:     cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		Security: cfg.SMTPSecurity,
	}
}

// LogMailer — dev-режим: письмо только логируется.
type LogMailer struct {
	Logger *zap.SugaredLogger
}

func (m *LogMailer) Send(_ context.Context, to, subject, html string) error {
	m.Logger.Infow("dev email", "to", to, "subject", subject, "body", html)
	return nil
}
