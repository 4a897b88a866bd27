// Package config handles application configuration management.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// It is built once at process start and handed to each component.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	Payment   PaymentConfig
	Telemetry TelemetryConfig

	// Directory for the log file (empty = console only)
	LogDir string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
	// PublicURL is the externally reachable base URL, used for payment
	// back URLs and the webhook notification URL.
	PublicURL   string
	AllowOrigin string
}

// DatabaseConfig holds record store settings.
type DatabaseConfig struct {
	Driver      string // "postgres" or "sqlite"
	URL         string // DSN for postgres, file path for sqlite
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// LLMConfig holds LLM provider configuration for the chat proxy.
type LLMConfig struct {
	// API keys for different providers
	AnthropicAPIKey  string
	AnthropicBaseURL string
	OpenAIAPIKey     string
	OpenRouterAPIKey string

	// Default provider: "anthropic", "openai", "openrouter" (auto-detected if empty)
	DefaultProvider string
	// Default model (provider-specific, uses the provider default if empty)
	DefaultModel string
	// Output token cap for chat requests
	MaxTokens int
}

// PaymentConfig holds Mercado Pago settings.
type PaymentConfig struct {
	AccessToken string
	BaseURL     string
	RateLimit   int // requests per second
}

// TelemetryConfig holds PostHog settings.
type TelemetryConfig struct {
	APIKey   string
	Endpoint string
	Enabled  bool
}

// ErrMissingDatabaseURL is returned by RequireDatabase when no DSN is configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL not set")

// Load reads configuration from a local .env file (if any) and environment variables.
func Load() (*Config, error) {
	// A missing .env is the normal case in deployed environments.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	cfg.Server.Port = getenv("PORT", cfg.Server.Port)
	cfg.Server.PublicURL = strings.TrimRight(getenv("PUBLIC_URL", getenv("NEXT_PUBLIC_URL", cfg.Server.PublicURL)), "/")
	cfg.Server.AllowOrigin = getenv("CORS_ALLOW_ORIGIN", cfg.Server.AllowOrigin)

	cfg.Database.Driver = strings.ToLower(getenv("DATABASE_DRIVER", cfg.Database.Driver))
	cfg.Database.URL = getenv("DATABASE_URL", "")
	cfg.Database.Debug = getenvBool("DATABASE_DEBUG", false)

	// CLAUDE_API_KEY is the name the first backend used
	cfg.LLM.AnthropicAPIKey = getenv("ANTHROPIC_API_KEY", getenv("CLAUDE_API_KEY", ""))
	cfg.LLM.AnthropicBaseURL = getenv("ANTHROPIC_BASE_URL", "")
	cfg.LLM.OpenAIAPIKey = getenv("OPENAI_API_KEY", "")
	cfg.LLM.OpenRouterAPIKey = getenv("OPENROUTER_API_KEY", "")
	cfg.LLM.DefaultProvider = getenv("LLM_PROVIDER", "")
	cfg.LLM.DefaultModel = getenv("LLM_MODEL", "")
	cfg.LLM.MaxTokens = getenvInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)

	cfg.Payment.AccessToken = getenv("MERCADOPAGO_ACCESS_TOKEN", "")
	cfg.Payment.BaseURL = strings.TrimRight(getenv("MERCADOPAGO_BASE_URL", cfg.Payment.BaseURL), "/")
	cfg.Payment.RateLimit = getenvInt("MERCADOPAGO_RATE_LIMIT", cfg.Payment.RateLimit)

	cfg.Telemetry.APIKey = getenv("POSTHOG_API_KEY", "")
	cfg.Telemetry.Endpoint = getenv("POSTHOG_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Enabled = cfg.Telemetry.APIKey != "" && getenvBool("FITLIFE_TELEMETRY_ENABLED", true)

	cfg.LogDir = getenv("LOG_DIR", "")

	return cfg, nil
}

// RequireDatabase reports whether the record store is configured.
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
