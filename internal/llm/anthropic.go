package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicModels lists available Anthropic models.
var AnthropicModels = []string{
	"claude-sonnet-4-20250514",  // Coach default
	"claude-opus-4-20250514",    // Highest quality, most expensive
	"claude-3-7-sonnet-20250219",
	"claude-3-5-haiku-20241022", // Fast and cheap
}

// DefaultAnthropicModel is the model the coaching chat is answered with.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// DefaultMaxTokens caps chat responses when the caller sets no limit.
const DefaultMaxTokens = 1024

// AnthropicClientInterface defines the interface for Anthropic API client.
// This allows for mocking in tests.
type AnthropicClientInterface interface {
	CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// anthropicClientWrapper wraps the real Anthropic client to implement AnthropicClientInterface.
type anthropicClientWrapper struct {
	client anthropic.Client
}

func (w *anthropicClientWrapper) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return w.client.Messages.New(ctx, params)
}

// AnthropicProvider implements Provider using Anthropic's API.
type AnthropicProvider struct {
	client AnthropicClientInterface
	model  string
}

// newAnthropicProvider creates an Anthropic provider. The SDK's automatic
// retries are disabled; failures are surfaced to the caller immediately.
func newAnthropicProvider(apiKey, baseURL, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	if model == "" {
		model = DefaultAnthropicModel
	}

	if !isValidAnthropicModel(model) {
		return nil, fmt.Errorf("invalid Anthropic model: %s", model)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicProvider{
		client: &anthropicClientWrapper{client: anthropic.NewClient(opts...)},
		model:  model,
	}, nil
}

// NewAnthropicProviderWithClient creates an Anthropic provider with a custom client.
// This is useful for testing.
func NewAnthropicProviderWithClient(client AnthropicClientInterface, model string) *AnthropicProvider {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicProvider{
		client: client,
		model:  model,
	}
}

// isValidAnthropicModel checks if the given model is a valid Anthropic model.
func isValidAnthropicModel(model string) bool {
	for _, m := range AnthropicModels {
		if m == model {
			return true
		}
	}
	return false
}

// ChatSync sends messages and waits for complete response.
func (p *AnthropicProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
	systemPrompt, conversation, err := SplitSystem(messages)
	if err != nil {
		return nil, err
	}

	model := opts.Model
	if model == "" {
		model = p.model
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  convertToAnthropicMessages(conversation),
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	msg, err := p.client.CreateMessage(ctx, params)
	if err != nil {
		return nil, p.wrapError(err)
	}

	// Check the Type field directly so mock responses without raw JSON work too
	var content string
	for _, block := range msg.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &Response{
		Content:      content,
		Model:        string(msg.Model),
		FinishReason: string(msg.StopReason),
		Usage: Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
		Raw: anthropicRaw(msg),
	}, nil
}

// anthropicRaw returns the body the SDK decoded, or a re-encoding of the
// message when none was kept.
func anthropicRaw(msg *anthropic.Message) json.RawMessage {
	if raw := msg.RawJSON(); raw != "" {
		return json.RawMessage(raw)
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return b
}

// wrapError converts SDK API errors into *UpstreamError.
func (p *AnthropicProvider) wrapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Provider:   p.Name(),
			StatusCode: apiErr.StatusCode,
			Body:       rawOrString(apiErr.RawJSON()),
			Err:        err,
		}
	}
	return fmt.Errorf("anthropic chat: %w", err)
}

// convertToAnthropicMessages converts user and assistant messages to the
// SDK format. System messages must already be removed.
func convertToAnthropicMessages(messages []Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleUser:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return result
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return string(ProviderAnthropic)
}

// Models returns available models.
func (p *AnthropicProvider) Models() []string {
	return AnthropicModels
}

// DefaultModel returns the default model.
func (p *AnthropicProvider) DefaultModel() string {
	return DefaultAnthropicModel
}
