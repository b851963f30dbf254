// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// WebhookConfig provides settings for the inbound webhook handshake.
type WebhookConfig interface {
	GetVerifyToken() string
}

// MessengerConfig provides settings for the Messenger send client.
type MessengerConfig interface {
	GetPageAccessToken() string
	GetGraphAPIBaseURL() string
}

// DialogueConfig provides settings for the dialogue engine and session store.
type DialogueConfig interface {
	GetBookingURL() string
	GetBookingLabel() string
	GetServiceAreaFile() string
	GetSessionIdleTTL() time.Duration
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// RedisConfig provides settings for Redis-backed components.
type RedisConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	IsRedisEnabled() bool
}

// CRMConfig provides settings for forwarding booked leads to an external CRM.
type CRMConfig interface {
	GetCRMForwardURL() string
	IsCRMForwardEnabled() bool
}

// EmailConfig provides settings for handoff alert emails.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetHandoffAlertAddress() string
	IsEmailEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	VerifyToken         string
	PageAccessToken     string
	GraphAPIBaseURL     string
	BookingURL          string
	BookingLabel        string
	ServiceAreaFile     string
	SessionIdleTTL      time.Duration
	DatabaseURL         string
	RedisURL            string
	AsynqQueue          string
	AsynqConcurrency    int
	CRMForwardURL       string
	EmailEnabled        bool
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	HandoffAlertAddress string
}

// Load reads configuration from the environment (and .env when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":3000"),
		CORSAllowAll:        strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "")),
		VerifyToken:         getEnv("VERIFY_TOKEN", ""),
		PageAccessToken:     getEnv("PAGE_ACCESS_TOKEN", ""),
		GraphAPIBaseURL:     getEnv("GRAPH_API_BASE_URL", "https://graph.facebook.com/v18.0"),
		BookingURL:          getEnv("BOOKING_URL", ""),
		BookingLabel:        getEnv("BOOKING_LABEL", "Book your free estimate"),
		ServiceAreaFile:     getEnv("SERVICE_AREA_FILE", ""),
		SessionIdleTTL:      mustDuration(getEnv("SESSION_IDLE_TTL", "30m")),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		AsynqQueue:          getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:    mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		CRMForwardURL:       getEnv("CRM_FORWARD_URL", ""),
		EmailEnabled:        emailEnabled,
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Exterior Chat"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		HandoffAlertAddress: getEnv("HANDOFF_ALERT_ADDRESS", ""),
	}

	if cfg.VerifyToken == "" {
		return nil, fmt.Errorf("VERIFY_TOKEN is required")
	}
	if cfg.BookingURL == "" {
		return nil, fmt.Errorf("BOOKING_URL is required")
	}
	if cfg.SessionIdleTTL <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TTL must be a positive duration")
	}
	if cfg.EmailEnabled && (cfg.SMTPHost == "" || cfg.EmailFromAddress == "" || cfg.HandoffAlertAddress == "") {
		return nil, fmt.Errorf("SMTP_HOST, EMAIL_FROM_ADDRESS and HANDOFF_ALERT_ADDRESS are required when EMAIL_ENABLED is true")
	}

	return cfg, nil
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// WebhookConfig implementation
func (c *Config) GetVerifyToken() string { return c.VerifyToken }

// MessengerConfig implementation
func (c *Config) GetPageAccessToken() string { return c.PageAccessToken }
func (c *Config) GetGraphAPIBaseURL() string { return c.GraphAPIBaseURL }

// DialogueConfig implementation
func (c *Config) GetBookingURL() string            { return c.BookingURL }
func (c *Config) GetBookingLabel() string          { return c.BookingLabel }
func (c *Config) GetServiceAreaFile() string       { return c.ServiceAreaFile }
func (c *Config) GetSessionIdleTTL() time.Duration { return c.SessionIdleTTL }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueue }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) IsRedisEnabled() bool      { return c.RedisURL != "" }

// CRMConfig implementation
func (c *Config) GetCRMForwardURL() string  { return c.CRMForwardURL }
func (c *Config) IsCRMForwardEnabled() bool { return c.CRMForwardURL != "" }

// EmailConfig implementation
func (c *Config) GetSMTPHost() string            { return c.SMTPHost }
func (c *Config) GetSMTPPort() int               { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string        { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string        { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string       { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string    { return c.EmailFromAddress }
func (c *Config) GetHandoffAlertAddress() string { return c.HandoffAlertAddress }
func (c *Config) IsEmailEnabled() bool           { return c.EmailEnabled }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
