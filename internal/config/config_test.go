package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "PUBLIC_URL", "NEXT_PUBLIC_URL", "CORS_ALLOW_ORIGIN",
		"DATABASE_DRIVER", "DATABASE_URL", "DATABASE_DEBUG",
		"ANTHROPIC_API_KEY", "CLAUDE_API_KEY", "ANTHROPIC_BASE_URL",
		"OPENAI_API_KEY", "OPENROUTER_API_KEY", "LLM_PROVIDER", "LLM_MODEL", "LLM_MAX_TOKENS",
		"MERCADOPAGO_ACCESS_TOKEN", "MERCADOPAGO_BASE_URL", "MERCADOPAGO_RATE_LIMIT",
		"POSTHOG_API_KEY", "POSTHOG_ENDPOINT", "FITLIFE_TELEMETRY_ENABLED", "LOG_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLLMConfigDefaults(t *testing.T) {
	cfg := DefaultLLMConfig()

	assert.Empty(t, cfg.AnthropicAPIKey)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.OpenRouterAPIKey)
	assert.Empty(t, cfg.DefaultProvider) // Auto-detect
	assert.Empty(t, cfg.DefaultModel)    // Provider-specific defaults
	assert.Equal(t, 1024, cfg.MaxTokens)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.PublicURL)
	assert.Equal(t, "*", cfg.Server.AllowOrigin)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "https://api.mercadopago.com", cfg.Payment.BaseURL)
	assert.Equal(t, 10, cfg.Payment.RateLimit)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.ErrorIs(t, cfg.RequireDatabase(), ErrMissingDatabaseURL)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("PUBLIC_URL", "https://fitlife.example.com/")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "/tmp/fitlife.db")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "sk-openai-test")
	t.Setenv("LLM_MAX_TOKENS", "512")
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "TEST-123")
	t.Setenv("MERCADOPAGO_RATE_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://fitlife.example.com", cfg.Server.PublicURL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.NoError(t, cfg.RequireDatabase())
	assert.Equal(t, "sk-ant-test", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, "sk-openai-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.Equal(t, "TEST-123", cfg.Payment.AccessToken)
	assert.Equal(t, 10, cfg.Payment.RateLimit) // unparseable falls back
}

func TestLoad_LegacyVariableNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLAUDE_API_KEY", "sk-ant-legacy")
	t.Setenv("NEXT_PUBLIC_URL", "https://legacy.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-legacy", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, "https://legacy.example.com", cfg.Server.PublicURL)
}

func TestLoad_Telemetry(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTHOG_API_KEY", "phc_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Telemetry.Enabled)

	t.Setenv("FITLIFE_TELEMETRY_ENABLED", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.Telemetry.Enabled)
}
