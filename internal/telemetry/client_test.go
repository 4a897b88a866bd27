package telemetry

import (
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-pro/fitlife/internal/config"
)

// fakePosthog records enqueued messages.
type fakePosthog struct {
	mu       sync.Mutex
	captured []posthog.Capture
	closed   bool
}

func (f *fakePosthog) Enqueue(msg posthog.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := msg.(posthog.Capture); ok {
		f.captured = append(f.captured, c)
	}
	return nil
}

func (f *fakePosthog) Close() error {
	f.closed = true
	return nil
}

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	client := New(config.TelemetryConfig{Enabled: true})
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient without API key")
}

func TestNew_DisabledByConfig(t *testing.T) {
	client := New(config.TelemetryConfig{APIKey: "phc_test", Enabled: false})
	_, ok := client.(*noopClient)
	assert.True(t, ok, "Should return noopClient when disabled")
}

func TestNoopClient_DoesNotPanic(t *testing.T) {
	client := &noopClient{}

	client.Track("user-1", "test_event", map[string]interface{}{"key": "value"})
	client.TrackServerStarted("anthropic", true)
	client.TrackChatCompleted("anthropic", "claude-sonnet-4-20250514", 10, 20, 300)
	client.TrackChatFailed("anthropic", 429)
	client.TrackCheckoutCreated("user-1", "premium")
	client.TrackSubscriptionActivated("user-1", "annual")
	client.TrackCompletionToggled("user-1", "meal", "added")
	client.TrackWeightLogged("user-1")
	client.TrackPlanSaved("user-1", "workout")
	client.TrackCLIError("serve", "config_error")
	client.Close()

	assert.Empty(t, client.InstanceID())
}

func TestPosthogClient_AttributesEvents(t *testing.T) {
	fake := &fakePosthog{}
	client := newPosthogClient(fake)

	client.TrackCompletionToggled("user-1", "meal", "added")
	client.TrackChatFailed("anthropic", 401)
	client.Close()

	require.Len(t, fake.captured, 2)
	assert.Equal(t, "user-1", fake.captured[0].DistinctId)
	assert.Equal(t, EventCompletionToggled, fake.captured[0].Event)
	assert.Equal(t, "added", fake.captured[0].Properties["action"])

	// No user: attributed to the server instance
	assert.Equal(t, client.InstanceID(), fake.captured[1].DistinctId)
	assert.Equal(t, 401, fake.captured[1].Properties["status"])
	assert.True(t, fake.closed)
}
