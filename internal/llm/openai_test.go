package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOpenAIClient implements OpenAIClientInterface for testing.
type mockOpenAIClient struct {
	completionResponse openai.ChatCompletionResponse
	completionErr      error
	capturedRequest    openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.capturedRequest = req
	if m.completionErr != nil {
		return openai.ChatCompletionResponse{}, m.completionErr
	}
	return m.completionResponse, nil
}

func TestNewOpenAIProvider_ValidAPIKey(t *testing.T) {
	provider, err := newOpenAIProvider("test-api-key", "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if provider.model != OpenAIDefaultModel {
		t.Errorf("expected default model %q, got %q", OpenAIDefaultModel, provider.model)
	}
	if provider.Name() != "openai" {
		t.Errorf("unexpected name %q", provider.Name())
	}
}

func TestNewOpenAIProvider_EmptyAPIKey(t *testing.T) {
	_, err := newOpenAIProvider("", "")
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
	if err.Error() != "OpenAI API key is required" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestNewOpenAIProvider_InvalidModel(t *testing.T) {
	_, err := newOpenAIProvider("test-api-key", "gpt-99")
	if err == nil {
		t.Fatal("expected error for invalid model")
	}
}

func TestNewOpenRouterProvider_AnyModel(t *testing.T) {
	provider, err := newOpenRouterProvider("sk-or-test", "some/new-model")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", provider.Name())
	assert.Equal(t, "some/new-model", provider.model)
	assert.Equal(t, OpenRouterDefaultModel, provider.DefaultModel())
	assert.Equal(t, OpenRouterModels, provider.Models())

	_, err = newOpenRouterProvider("", "")
	assert.Error(t, err)
}

func TestOpenAIProvider_ChatSync_SystemFirst(t *testing.T) {
	mock := &mockOpenAIClient{
		completionResponse: openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: OpenAIDefaultModel,
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "Drink water"}, FinishReason: openai.FinishReasonStop},
			},
			Usage: openai.Usage{PromptTokens: 5, CompletionTokens: 3, TotalTokens: 8},
		},
	}
	provider := NewOpenAIProviderWithClient(mock, "")

	resp, err := provider.ChatSync(context.Background(), []Message{
		NewUserMessage("Tip?"),
		NewSystemMessage("Be brief."),
		NewSystemMessage("Second system is dropped."),
	}, ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Drink water", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 8, resp.Usage.TotalTokens)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Raw, &raw))
	assert.Equal(t, "chatcmpl-1", raw["id"])

	require.Len(t, mock.capturedRequest.Messages, 2)
	assert.Equal(t, "system", mock.capturedRequest.Messages[0].Role)
	assert.Equal(t, "Be brief.", mock.capturedRequest.Messages[0].Content)
	assert.Equal(t, DefaultMaxTokens, mock.capturedRequest.MaxTokens)
}

func TestOpenAIProvider_ChatSync_NoChoices(t *testing.T) {
	provider := NewOpenAIProviderWithClient(&mockOpenAIClient{}, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIProvider_ChatSync_APIError(t *testing.T) {
	mock := &mockOpenAIClient{
		completionErr: &openai.APIError{
			HTTPStatusCode: http.StatusUnauthorized,
			Message:        "Incorrect API key provided",
			Type:           "invalid_request_error",
		},
	}
	provider := NewOpenAIProviderWithClient(mock, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{})
	ue, ok := AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Contains(t, string(ue.Body), "Incorrect API key provided")
}

func TestOpenAIProvider_ChatSync_TransportError(t *testing.T) {
	mock := &mockOpenAIClient{completionErr: errors.New("dial tcp: refused")}
	provider := NewOpenAIProviderWithClient(mock, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create completion")
}
