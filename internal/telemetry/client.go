// Package telemetry provides server-side product analytics via PostHog.
package telemetry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"

	"github.com/fitlife-pro/fitlife/internal/config"
)

// Client interface for telemetry operations.
type Client interface {
	Track(distinctID, event string, properties map[string]interface{})
	Close()
	// InstanceID identifies this server process; used when no user is known.
	InstanceID() string

	TrackServerStarted(provider string, paymentsEnabled bool)
	TrackChatCompleted(provider, model string, inputTokens, outputTokens int, durationMs int64)
	TrackChatFailed(provider string, status int)
	TrackCheckoutCreated(userID, plan string)
	TrackSubscriptionActivated(userID, plan string)
	TrackCompletionToggled(userID, kind, action string)
	TrackWeightLogged(userID string)
	TrackPlanSaved(userID, kind string)
	TrackCLIError(command, errorType string)
}

// enqueuer is the part of posthog.Client this package uses.
type enqueuer interface {
	Enqueue(posthog.Message) error
	Close() error
}

// posthogClient wraps the PostHog SDK.
type posthogClient struct {
	client     enqueuer
	instanceID string
	mu         sync.Mutex
}

// noopClient does nothing (for disabled telemetry).
type noopClient struct{}

// New creates a telemetry client. Without an API key, or when disabled,
// a no-op client is returned.
func New(cfg config.TelemetryConfig) Client {
	if !cfg.Enabled || cfg.APIKey == "" {
		return &noopClient{}
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{
		Endpoint:  cfg.Endpoint,
		BatchSize: 250,
		Interval:  5 * time.Second,
	})
	if err != nil {
		return &noopClient{}
	}

	return newPosthogClient(client)
}

// Noop returns a client that discards every event.
func Noop() Client {
	return &noopClient{}
}

func newPosthogClient(client enqueuer) *posthogClient {
	return &posthogClient{
		client:     client,
		instanceID: uuid.New().String(),
	}
}

// Track sends an event to PostHog. An empty distinctID is attributed to the
// server instance.
func (c *posthogClient) Track(distinctID, event string, properties map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if distinctID == "" {
		distinctID = c.instanceID
	}

	props := posthog.NewProperties()
	props.Set("$geoip_disable", true)
	for k, v := range properties {
		props.Set(k, v)
	}

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes remaining events and closes the client.
func (c *posthogClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.client.Close()
}

// InstanceID returns the id of this server process.
func (c *posthogClient) InstanceID() string {
	return c.instanceID
}

// Track is a no-op for disabled telemetry.
func (c *noopClient) Track(distinctID, event string, properties map[string]interface{}) {}

// Close is a no-op for disabled telemetry.
func (c *noopClient) Close() {}

// InstanceID returns empty string for disabled telemetry.
func (c *noopClient) InstanceID() string {
	return ""
}
