package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-gateway/internal/common/config"
)

func TestNewFromConfig_PrefersSMTP(t *testing.T) {
	var cfg config.NotificationConfig
	cfg.NotificationEmail = "admin@example.com"
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.Username = "sender@example.com"
	cfg.SMTP.Password = "secret"
	cfg.SES.Enabled = true
	cfg.SES.Region = "eu-west-1"
	cfg.SES.FromEmail = "noreply@example.com"

	m, err := NewFromConfig(context.Background(), cfg)

	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)
}

func TestNewFromConfig_NothingConfigured(t *testing.T) {
	m, err := NewFromConfig(context.Background(), config.NotificationConfig{})

	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestNewFromConfig_IncompleteSMTPIsNotUsed(t *testing.T) {
	var cfg config.NotificationConfig
	cfg.NotificationEmail = "admin@example.com"
	cfg.SMTP.Host = "smtp.example.com"
	// no port, username or password

	m, err := NewFromConfig(context.Background(), cfg)

	require.NoError(t, err)
	assert.Nil(t, m)
}
