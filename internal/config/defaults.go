package config

// Defaults that have no environment override of their own.
const (
	DefaultPort             = "3000"
	DefaultPublicURL        = "http://localhost:3000"
	DefaultMercadoPagoURL   = "https://api.mercadopago.com"
	DefaultPostHogEndpoint  = "https://us.i.posthog.com"
	DefaultChatMaxTokens    = 1024
	DefaultPaymentRateLimit = 10
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        DefaultPort,
			PublicURL:   DefaultPublicURL,
			AllowOrigin: "*",
		},

		Database: DatabaseConfig{
			Driver:      "postgres",
			MaxIdleConn: 5,
			MaxOpenConn: 20,
		},

		LLM: DefaultLLMConfig(),

		Payment: PaymentConfig{
			BaseURL:   DefaultMercadoPagoURL,
			RateLimit: DefaultPaymentRateLimit,
		},

		Telemetry: TelemetryConfig{
			Endpoint: DefaultPostHogEndpoint,
		},
	}
}

// DefaultLLMConfig returns sensible defaults for LLM configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		// API keys read from env vars in Load()
		DefaultProvider: "", // Auto-detect based on available keys
		DefaultModel:    "", // Provider-specific defaults
		MaxTokens:       DefaultChatMaxTokens,
	}
}
