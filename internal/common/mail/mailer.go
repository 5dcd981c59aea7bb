// Package mail sends transactional HTML email through one of the
// configured backends (SMTP or SES).
package mail

import (
	"context"

	"candidate-gateway/internal/common/config"
)

// Message is one outbound HTML email. The sender address belongs to the
// backend; FromName only sets the display name.
type Message struct {
	FromName string
	To       string
	Subject  string
	HTML     string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewFromConfig selects the email backend: SMTP when the full quintuple
// is present, otherwise SES when enabled. Returns (nil, nil) when
// neither is configured so callers can surface a configuration error at
// request time instead of crashing at startup.
func NewFromConfig(ctx context.Context, cfg config.NotificationConfig) (Mailer, error) {
	if cfg.SMTPConfigured() {
		return NewSMTPMailer(cfg), nil
	}
	if cfg.SESConfigured() {
		return NewSESMailer(ctx, cfg)
	}
	return nil, nil
}
