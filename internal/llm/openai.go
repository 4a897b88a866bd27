package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fitlife-pro/fitlife/pkg/version"
)

// OpenAI model constants.
const (
	OpenAIModelGPT4oMini = "gpt-4o-mini"
	OpenAIModelGPT4o     = "gpt-4o"
	OpenAIModelGPT4Turbo = "gpt-4-turbo"
	OpenAIDefaultModel   = OpenAIModelGPT4oMini
)

// openAIModels lists available OpenAI models.
var openAIModels = []string{
	OpenAIModelGPT4oMini,
	OpenAIModelGPT4o,
	OpenAIModelGPT4Turbo,
}

const (
	// OpenRouterBaseURL is the base URL for OpenRouter's OpenAI-compatible API.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouterDefaultModel is the default model for OpenRouter.
	OpenRouterDefaultModel = "anthropic/claude-sonnet-4"
)

// OpenRouterModels lists the models offered through OpenRouter.
var OpenRouterModels = []string{
	"anthropic/claude-sonnet-4",
	"openai/gpt-4o-mini",
	"meta-llama/llama-3-70b-instruct",
	"mistralai/mistral-large",
}

// OpenAIClientInterface abstracts the OpenAI client for testing.
type OpenAIClientInterface interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider implements Provider for OpenAI and OpenAI-compatible
// vendors such as OpenRouter.
type OpenAIProvider struct {
	client       OpenAIClientInterface
	name         ProviderType
	model        string
	defaultModel string
	models       []string
}

// NewOpenAIProviderWithClient creates a provider with a custom client interface (for testing).
func NewOpenAIProviderWithClient(client OpenAIClientInterface, model string) *OpenAIProvider {
	if model == "" {
		model = OpenAIDefaultModel
	}
	return &OpenAIProvider{
		client:       client,
		name:         ProviderOpenAI,
		model:        model,
		defaultModel: OpenAIDefaultModel,
		models:       openAIModels,
	}
}

// newOpenAIProvider creates a new OpenAI provider with the given API key and model.
func newOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	if model == "" {
		model = OpenAIDefaultModel
	}

	if !isValidOpenAIModel(model) {
		return nil, fmt.Errorf("invalid OpenAI model: %s (available: %v)", model, openAIModels)
	}

	p := NewOpenAIProviderWithClient(openai.NewClientWithConfig(openai.DefaultConfig(apiKey)), model)
	return p, nil
}

// openRouterTransport adds the attribution headers OpenRouter asks for.
type openRouterTransport struct {
	base http.RoundTripper
}

func (t *openRouterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", "https://github.com/fitlife-pro/fitlife")
	req.Header.Set("X-Title", "FitLife Pro Coach")
	req.Header.Set("User-Agent", version.UserAgent())
	return t.base.RoundTrip(req)
}

// newOpenRouterProvider creates an OpenRouter provider. Any model id is
// accepted since OpenRouter's catalogue changes often.
func newOpenRouterProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenRouter API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = OpenRouterBaseURL
	config.HTTPClient = &http.Client{
		Transport: &openRouterTransport{base: http.DefaultTransport},
	}

	if model == "" {
		model = OpenRouterDefaultModel
	}

	return &OpenAIProvider{
		client:       openai.NewClientWithConfig(config),
		name:         ProviderOpenRouter,
		model:        model,
		defaultModel: OpenRouterDefaultModel,
		models:       OpenRouterModels,
	}, nil
}

// isValidOpenAIModel checks if the model is a valid OpenAI model.
func isValidOpenAIModel(model string) bool {
	for _, m := range openAIModels {
		if m == model {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return string(p.name)
}

// Models returns available model IDs.
func (p *OpenAIProvider) Models() []string {
	return p.models
}

// DefaultModel returns the default model.
func (p *OpenAIProvider) DefaultModel() string {
	return p.defaultModel
}

// ChatSync sends messages and waits for complete response.
func (p *OpenAIProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
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

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    convertToOpenAIMessages(systemPrompt, conversation),
		MaxTokens:   maxTokens,
		Temperature: float32(opts.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode completion: %w", err)
	}

	choice := resp.Choices[0]
	return &Response{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Raw: raw,
	}, nil
}

// wrapError converts go-openai API and transport errors into *UpstreamError.
func (p *OpenAIProvider) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		body, _ := json.Marshal(map[string]*openai.APIError{"error": apiErr})
		return &UpstreamError{
			Provider:   p.Name(),
			StatusCode: apiErr.HTTPStatusCode,
			Body:       body,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &UpstreamError{
			Provider:   p.Name(),
			StatusCode: reqErr.HTTPStatusCode,
			Body:       rawOrString(reqErr.Error()),
			Err:        err,
		}
	}

	return fmt.Errorf("create completion: %w", err)
}

// convertToOpenAIMessages puts the system prompt first, the way
// OpenAI-compatible APIs expect it.
func convertToOpenAIMessages(systemPrompt string, messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return result
}
