package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/osa911/folio/internal/logging"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// EmailJS relay. The three credentials have no defaults: a missing one
	// turns every submission into a configuration error.
	EmailJSServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	EmailJSAPIURL     string `env:"EMAILJS_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`

	// Contact form behaviour
	RecipientName string        `env:"CONTACT_RECIPIENT_NAME" envDefault:"Subhan Khan"`
	ResetAfter    time.Duration `env:"CONTACT_RESET_AFTER" envDefault:"5s"`
	FormIdleTTL   time.Duration `env:"FORM_IDLE_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"FORM_SWEEP_INTERVAL" envDefault:"5m"`

	// HTTP surface
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// Proxies whose X-Forwarded-For / X-Real-IP headers are believed. Empty
	// means the TCP peer is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	RateLimitRPS   int      `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"folio"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.ResetAfter <= 0 {
		return nil, fmt.Errorf("CONTACT_RESET_AFTER must be positive, got %s", cfg.ResetAfter)
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MissingCredentials lists the names of unset EmailJS credentials
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.EmailJSServiceID == "" {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if c.EmailJSTemplateID == "" {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if c.EmailJSPublicKey == "" {
		missing = append(missing, "EMAILJS_PUBLIC_KEY")
	}
	return missing
}

// Logging returns the logger configuration. Rotation limits apply only when
// LOG_FILE is set.
func (c *Config) Logging() *logging.LogConfig {
	return &logging.LogConfig{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Requests:   c.LogRequests,
	}
}
