package llm

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-pro/fitlife/internal/config"
	"github.com/fitlife-pro/fitlife/internal/testutil"
)

func TestProbe_LiveProvider(t *testing.T) {
	testutil.SkipAITests(t)

	cfg := config.DefaultLLMConfig()
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")

	provider, err := NewProvider(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := Probe(ctx, provider)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Content)
	assert.NotEmpty(t, resp.Raw)
}
