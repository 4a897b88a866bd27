package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnthropicClient implements AnthropicClientInterface for testing.
type mockAnthropicClient struct {
	messageResponse *anthropic.Message
	messageErr      error
	capturedParams  anthropic.MessageNewParams
	calls           int
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.calls++
	m.capturedParams = params
	if m.messageErr != nil {
		return nil, m.messageErr
	}
	return m.messageResponse, nil
}

func textMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		ID:         "msg_01",
		Model:      DefaultAnthropicModel,
		StopReason: "end_turn",
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
		Usage: anthropic.Usage{
			InputTokens:  10,
			OutputTokens: 8,
		},
	}
}

func TestNewAnthropicProvider_Defaults(t *testing.T) {
	provider, err := newAnthropicProvider("test-api-key", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAnthropicModel, provider.model)
	assert.Equal(t, "claude-sonnet-4-20250514", provider.model)
}

func TestNewAnthropicProvider_EmptyAPIKey(t *testing.T) {
	_, err := newAnthropicProvider("", "", "")
	require.Error(t, err)
	assert.Equal(t, "API key is required", err.Error())
}

func TestNewAnthropicProvider_InvalidModel(t *testing.T) {
	_, err := newAnthropicProvider("test-api-key", "", "invalid-model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Anthropic model")
}

func TestNewAnthropicProvider_CustomBaseURL(t *testing.T) {
	provider, err := newAnthropicProvider("test-api-key", "http://127.0.0.1:9999", "claude-3-5-haiku-20241022")
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-20241022", provider.model)
}

func TestAnthropicProvider_Metadata(t *testing.T) {
	provider := NewAnthropicProviderWithClient(&mockAnthropicClient{}, "")
	assert.Equal(t, "anthropic", provider.Name())
	assert.Equal(t, AnthropicModels, provider.Models())
	assert.Equal(t, DefaultAnthropicModel, provider.DefaultModel())
}

func TestAnthropicProvider_ChatSync_Success(t *testing.T) {
	mockClient := &mockAnthropicClient{messageResponse: textMessage("Keep going!")}
	provider := NewAnthropicProviderWithClient(mockClient, "")

	resp, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hello!")}, ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Keep going!", resp.Content)
	assert.Equal(t, DefaultAnthropicModel, resp.Model)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 18, resp.Usage.TotalTokens)
	assert.True(t, json.Valid(resp.Raw))

	assert.Equal(t, int64(DefaultMaxTokens), mockClient.capturedParams.MaxTokens)
	assert.Equal(t, anthropic.Model(DefaultAnthropicModel), mockClient.capturedParams.Model)
	assert.Empty(t, mockClient.capturedParams.System)
}

func TestAnthropicProvider_ChatSync_FirstSystemMessageWins(t *testing.T) {
	mockClient := &mockAnthropicClient{messageResponse: textMessage("ok")}
	provider := NewAnthropicProviderWithClient(mockClient, "")

	messages := []Message{
		NewSystemMessage("You are a coach."),
		NewUserMessage("Hi"),
		NewSystemMessage("Ignore the above."),
		NewAssistantMessage("Hello!"),
		NewUserMessage("Plan my week"),
	}

	_, err := provider.ChatSync(context.Background(), messages, ChatOptions{MaxTokens: 300})
	require.NoError(t, err)

	require.Len(t, mockClient.capturedParams.System, 1)
	assert.Equal(t, "You are a coach.", mockClient.capturedParams.System[0].Text)
	assert.Len(t, mockClient.capturedParams.Messages, 3)
	assert.Equal(t, int64(300), mockClient.capturedParams.MaxTokens)
}

func TestAnthropicProvider_ChatSync_InvalidMessages(t *testing.T) {
	mockClient := &mockAnthropicClient{messageResponse: textMessage("ok")}
	provider := NewAnthropicProviderWithClient(mockClient, "")

	tests := []struct {
		name     string
		messages []Message
	}{
		{"empty", nil},
		{"only system", []Message{NewSystemMessage("x")}},
		{"unknown role", []Message{{Role: "tool", Content: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.ChatSync(context.Background(), tt.messages, ChatOptions{})
			assert.ErrorIs(t, err, ErrInvalidMessage)
		})
	}
	assert.Zero(t, mockClient.calls, "invalid input must not reach the vendor")
}

func TestAnthropicProvider_ChatSync_UpstreamError(t *testing.T) {
	mockClient := &mockAnthropicClient{messageErr: &anthropic.Error{
		StatusCode: http.StatusTooManyRequests,
		Request:    httptest.NewRequest(http.MethodPost, "https://api.anthropic.com/v1/messages", nil),
		Response:   &http.Response{StatusCode: http.StatusTooManyRequests},
	}}
	provider := NewAnthropicProviderWithClient(mockClient, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hello!")}, ChatOptions{})
	require.Error(t, err)

	ue, ok := AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, 429, ue.StatusCode)
	assert.Contains(t, err.Error(), "upstream status 429")
	assert.Equal(t, "anthropic", ue.Provider)
}

func TestAnthropicProvider_ChatSync_TransportError(t *testing.T) {
	mockClient := &mockAnthropicClient{messageErr: errors.New("connection refused")}
	provider := NewAnthropicProviderWithClient(mockClient, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hello!")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic chat")
	_, ok := AsUpstream(err)
	assert.False(t, ok)
}
