package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Airtable      AirtableConfig     `mapstructure:"airtable"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// AirtableConfig identifies the external record store. CandidatesTableID
// falls back to LegacyTableID, matching the original deployment's env
// var alias.
type AirtableConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseID            string `mapstructure:"base_id"`
	CandidatesTableID string `mapstructure:"candidates_table_id"`
	LegacyTableID     string `mapstructure:"table_id"`
	CampaignsTableID  string `mapstructure:"campaigns_table_id"`
	InterestTable     string `mapstructure:"interest_table"`
	Timeout           int    `mapstructure:"timeout"` // milliseconds
}

// ResolveCandidatesTable returns the candidates table id, honoring the
// legacy alias.
func (a AirtableConfig) ResolveCandidatesTable() string {
	if a.CandidatesTableID != "" {
		return a.CandidatesTableID
	}
	return a.LegacyTableID
}

// StoreConfigured reports whether the required store identifiers are set.
func (a AirtableConfig) StoreConfigured() bool {
	return a.APIKey != "" && a.BaseID != "" && a.ResolveCandidatesTable() != "" && a.CampaignsTableID != ""
}

// NotificationConfig holds settings for interest-submission delivery.
// Exactly one email backend is used: SMTP when the quintuple is present,
// otherwise SES when enabled.
type NotificationConfig struct {
	NotificationEmail string `mapstructure:"notification_email"`

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"smtp"`

	SES struct {
		Enabled   bool   `mapstructure:"enabled"`
		Region    string `mapstructure:"region"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"ses"`

	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

// SMTPConfigured reports whether the full SMTP quintuple is present.
func (n NotificationConfig) SMTPConfigured() bool {
	return n.SMTP.Host != "" && n.SMTP.Port != 0 && n.SMTP.Username != "" &&
		n.SMTP.Password != "" && n.NotificationEmail != ""
}

// SESConfigured reports whether the SES backend is usable.
func (n NotificationConfig) SESConfigured() bool {
	return n.SES.Enabled && n.SES.Region != "" && n.SES.FromEmail != "" &&
		n.NotificationEmail != ""
}

// MailConfigured reports whether any email backend is usable.
func (n NotificationConfig) MailConfigured() bool {
	return n.SMTPConfigured() || n.SESConfigured()
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
