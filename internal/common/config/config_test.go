package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCandidatesTable_LegacyAlias(t *testing.T) {
	a := AirtableConfig{CandidatesTableID: "tblNew", LegacyTableID: "tblOld"}
	assert.Equal(t, "tblNew", a.ResolveCandidatesTable())

	a = AirtableConfig{LegacyTableID: "tblOld"}
	assert.Equal(t, "tblOld", a.ResolveCandidatesTable())

	assert.Equal(t, "", AirtableConfig{}.ResolveCandidatesTable())
}

func TestStoreConfigured(t *testing.T) {
	full := AirtableConfig{
		APIKey:           "key",
		BaseID:           "appBase",
		LegacyTableID:    "tblCandidates",
		CampaignsTableID: "tblCampaigns",
	}
	assert.True(t, full.StoreConfigured())

	missingKey := full
	missingKey.APIKey = ""
	assert.False(t, missingKey.StoreConfigured())

	missingCampaigns := full
	missingCampaigns.CampaignsTableID = ""
	assert.False(t, missingCampaigns.StoreConfigured())
}

func TestSMTPConfigured_RequiresFullQuintuple(t *testing.T) {
	var cfg NotificationConfig
	cfg.NotificationEmail = "admin@example.com"
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.Username = "sender"
	cfg.SMTP.Password = "secret"
	assert.True(t, cfg.SMTPConfigured())
	assert.True(t, cfg.MailConfigured())

	cfg.SMTP.Password = ""
	assert.False(t, cfg.SMTPConfigured())
	assert.False(t, cfg.MailConfigured())
}

func TestSESConfigured(t *testing.T) {
	var cfg NotificationConfig
	cfg.NotificationEmail = "admin@example.com"
	cfg.SES.Enabled = true
	cfg.SES.Region = "eu-west-1"
	cfg.SES.FromEmail = "noreply@example.com"
	assert.True(t, cfg.SESConfigured())

	cfg.SES.Enabled = false
	assert.False(t, cfg.SESConfigured())
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: 8080}.Addr())
}
