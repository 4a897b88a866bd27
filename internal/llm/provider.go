// Package llm relays coaching chats to an LLM vendor.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fitlife-pro/fitlife/internal/config"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// ChatSync sends messages and waits for the complete response.
	ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error)

	// Name returns the provider name (e.g., "anthropic", "openai").
	Name() string

	// Models returns available model IDs for this provider.
	Models() []string

	// DefaultModel returns the default model for this provider.
	DefaultModel() string
}

// Message roles accepted from clients.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ChatOptions configures a chat request.
type ChatOptions struct {
	Model       string  // Model to use (empty = provider default)
	MaxTokens   int     // Maximum tokens in response
	Temperature float64 // Sampling temperature (0 = vendor default)
}

// Response represents a complete chat response.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
	// Raw is the vendor's response body, relayed to clients verbatim.
	Raw json.RawMessage
}

// Usage tracks token usage for a request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ProviderType represents supported LLM providers.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// NewProvider creates a provider based on configuration.
// It auto-detects the provider if not explicitly set.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	return NewProviderWithOverrides(cfg, "", "")
}

// NewProviderWithOverrides creates a provider with optional overrides.
func NewProviderWithOverrides(cfg config.LLMConfig, providerOverride, modelOverride string) (Provider, error) {
	providerName := providerOverride
	if providerName == "" {
		providerName = cfg.DefaultProvider
	}

	if providerName == "" {
		providerName = detectProvider(cfg)
	}

	if providerName == "" {
		return nil, ErrNotConfigured
	}

	model := modelOverride
	if model == "" {
		model = cfg.DefaultModel
	}

	switch ProviderType(providerName) {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return newAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, model)

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return newOpenAIProvider(cfg.OpenAIAPIKey, model)

	case ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
		}
		return newOpenRouterProvider(cfg.OpenRouterAPIKey, model)

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: anthropic, openai, openrouter)", providerName)
	}
}

// detectProvider determines which provider to use based on available API keys.
// Priority: Anthropic > OpenAI > OpenRouter
func detectProvider(cfg config.LLMConfig) string {
	if cfg.AnthropicAPIKey != "" {
		return string(ProviderAnthropic)
	}
	if cfg.OpenAIAPIKey != "" {
		return string(ProviderOpenAI)
	}
	if cfg.OpenRouterAPIKey != "" {
		return string(ProviderOpenRouter)
	}
	return ""
}

// IsConfigured returns true if any LLM provider is configured.
func IsConfigured(cfg config.LLMConfig) bool {
	return cfg.AnthropicAPIKey != "" || cfg.OpenAIAPIKey != "" || cfg.OpenRouterAPIKey != ""
}

// SplitSystem validates a client conversation and separates the system
// prompt from it. The first system message wins; every system message is
// removed from the returned list.
func SplitSystem(messages []Message) (string, []Message, error) {
	if len(messages) == 0 {
		return "", nil, fmt.Errorf("%w: messages must be a non-empty array", ErrInvalidMessage)
	}

	var system string
	var seenSystem bool
	rest := make([]Message, 0, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			if !seenSystem {
				system = msg.Content
				seenSystem = true
			}
		case RoleUser, RoleAssistant:
			rest = append(rest, msg)
		default:
			return "", nil, fmt.Errorf("%w: message %d has unknown role %q", ErrInvalidMessage, i, msg.Role)
		}
	}

	if len(rest) == 0 {
		return "", nil, fmt.Errorf("%w: at least one user or assistant message is required", ErrInvalidMessage)
	}

	return system, rest, nil
}

// HasSystem reports whether the conversation carries a system message.
func HasSystem(messages []Message) bool {
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			return true
		}
	}
	return false
}
