package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like AIRTABLE_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Plain env names fill gaps first so defaults and the SES/SNS
	// enablement inference see the final values.
	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills any values still empty after expansion from
// the plain environment variable names the original deployment used.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty := func(dst *string, envKey string) {
		if *dst == "" {
			if val := os.Getenv(envKey); val != "" {
				*dst = val
			}
		}
	}

	setIfEmpty(&cfg.Airtable.APIKey, "AIRTABLE_API_KEY")
	setIfEmpty(&cfg.Airtable.BaseID, "AIRTABLE_BASE_ID")
	setIfEmpty(&cfg.Airtable.CandidatesTableID, "AIRTABLE_CANDIDATES_TABLE_ID")
	setIfEmpty(&cfg.Airtable.LegacyTableID, "AIRTABLE_TABLE_ID")
	setIfEmpty(&cfg.Airtable.CampaignsTableID, "AIRTABLE_CAMPAIGNS_TABLE_ID")
	setIfEmpty(&cfg.Airtable.InterestTable, "AIRTABLE_INTEREST_TABLE")

	setIfEmpty(&cfg.Notifications.SMTP.Host, "SMTP_HOST")
	setIfEmpty(&cfg.Notifications.SMTP.Username, "SMTP_USER")
	setIfEmpty(&cfg.Notifications.SMTP.Password, "SMTP_PASS")
	setIfEmpty(&cfg.Notifications.NotificationEmail, "NOTIFICATION_EMAIL")

	if cfg.Notifications.SMTP.Port == 0 {
		if val := os.Getenv("SMTP_PORT"); val != "" {
			var port int
			if _, err := fmt.Sscanf(val, "%d", &port); err == nil {
				cfg.Notifications.SMTP.Port = port
			}
		}
	}

	setIfEmpty(&cfg.Notifications.SES.Region, "AWS_REGION")
	setIfEmpty(&cfg.Notifications.SES.FromEmail, "SES_FROM_EMAIL")
	setIfEmpty(&cfg.Notifications.SNS.TopicARN, "SNS_TOPIC_ARN")

	setIfEmpty(&cfg.Redis.Address, "REDIS_ADDRESS")
	setIfEmpty(&cfg.Redis.Password, "REDIS_PASSWORD")
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "candidate-gateway"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Airtable.InterestTable == "" {
		cfg.Airtable.InterestTable = "Interest Expressions"
	}
	if cfg.Airtable.Timeout == 0 {
		cfg.Airtable.Timeout = 30000
	}

	if cfg.Notifications.SES.Region != "" && cfg.Notifications.SES.FromEmail != "" {
		cfg.Notifications.SES.Enabled = true
	}
	if cfg.Notifications.SNS.TopicARN != "" {
		cfg.Notifications.SNS.Enabled = true
		if cfg.Notifications.SNS.Region == "" {
			cfg.Notifications.SNS.Region = cfg.Notifications.SES.Region
		}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
