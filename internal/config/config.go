package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Dev-only token secrets: functional but a deployment risk if left in place.
const (
	devAccessSecret  = "dev-secret-change-in-production"
	devRefreshSecret = "dev-refresh-secret-change-in-production"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env              string
	Port             string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	JWTRefreshSecret string
	SendinblueAPIKey string // transactional mail API key; empty disables delivery
	MailFrom         string
	InviteBaseURL    string // base URL for invite links sent by email
	BusinessTimezone string // IANA name for the tenant's local calendar day
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	cfg := &Config{
		Env:              env,
		Port:             port,
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		RedisURL:         viper.GetString("REDIS_URL"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		JWTRefreshSecret: viper.GetString("JWT_REFRESH_SECRET"),
		SendinblueAPIKey: viper.GetString("SENDINBLUE_API_KEY"),
		MailFrom:         viper.GetString("MAIL_FROM"),
		InviteBaseURL:    strings.TrimSpace(viper.GetString("INVITE_BASE_URL")),
		BusinessTimezone: viper.GetString("BUSINESS_TIMEZONE"),
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devAccessSecret
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = devRefreshSecret
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = "noreply@espacobraite.com"
	}
	if cfg.InviteBaseURL == "" {
		cfg.InviteBaseURL = "http://localhost:3000"
	}
	if cfg.BusinessTimezone == "" {
		cfg.BusinessTimezone = "America/Sao_Paulo"
	}
	return cfg, nil
}

// Location resolves the business timezone, falling back to UTC if the name
// is unknown on the host.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
