package telemetry

import (
	"runtime"

	"github.com/fitlife-pro/fitlife/pkg/version"
)

// Event names
const (
	EventServerStarted         = "server_started"
	EventChatCompleted         = "chat_completed"
	EventChatFailed            = "chat_failed"
	EventCheckoutCreated       = "checkout_created"
	EventSubscriptionActivated = "subscription_activated"
	EventCompletionToggled     = "completion_toggled"
	EventWeightLogged          = "weight_logged"
	EventPlanSaved             = "plan_saved"
	EventCLIError              = "cli_error"
)

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
		"version": version.Short(),
		"channel": version.Channel(),
	}
}

// TrackServerStarted tracks process start-up.
func (c *posthogClient) TrackServerStarted(provider string, paymentsEnabled bool) {
	props := baseProperties()
	props["llm_provider"] = provider
	props["payments_enabled"] = paymentsEnabled
	c.Track("", EventServerStarted, props)
}

// TrackChatCompleted tracks a successful chat relay.
func (c *posthogClient) TrackChatCompleted(provider, model string, inputTokens, outputTokens int, durationMs int64) {
	props := baseProperties()
	props["llm_provider"] = provider
	props["model"] = model
	props["input_tokens"] = inputTokens
	props["output_tokens"] = outputTokens
	props["duration_ms"] = durationMs
	c.Track("", EventChatCompleted, props)
}

// TrackChatFailed tracks a chat relay the vendor rejected.
func (c *posthogClient) TrackChatFailed(provider string, status int) {
	props := baseProperties()
	props["llm_provider"] = provider
	props["status"] = status
	c.Track("", EventChatFailed, props)
}

// TrackCheckoutCreated tracks a checkout preference being created.
func (c *posthogClient) TrackCheckoutCreated(userID, plan string) {
	props := baseProperties()
	props["plan"] = plan
	c.Track(userID, EventCheckoutCreated, props)
}

// TrackSubscriptionActivated tracks an approved payment.
func (c *posthogClient) TrackSubscriptionActivated(userID, plan string) {
	props := baseProperties()
	props["plan"] = plan
	c.Track(userID, EventSubscriptionActivated, props)
}

// TrackCompletionToggled tracks a meal or workout toggle.
func (c *posthogClient) TrackCompletionToggled(userID, kind, action string) {
	props := baseProperties()
	props["kind"] = kind
	props["action"] = action
	c.Track(userID, EventCompletionToggled, props)
}

// TrackWeightLogged tracks a weight entry.
func (c *posthogClient) TrackWeightLogged(userID string) {
	c.Track(userID, EventWeightLogged, baseProperties())
}

// TrackPlanSaved tracks a custom plan save.
func (c *posthogClient) TrackPlanSaved(userID, kind string) {
	props := baseProperties()
	props["kind"] = kind
	c.Track(userID, EventPlanSaved, props)
}

// TrackCLIError tracks a failed CLI command.
func (c *posthogClient) TrackCLIError(command, errorType string) {
	props := baseProperties()
	props["command"] = command
	props["error_type"] = errorType
	c.Track("", EventCLIError, props)
}

// --- noop implementations ---

func (c *noopClient) TrackServerStarted(provider string, paymentsEnabled bool) {}
func (c *noopClient) TrackChatCompleted(provider, model string, inputTokens, outputTokens int, durationMs int64) {
}
func (c *noopClient) TrackChatFailed(provider string, status int)        {}
func (c *noopClient) TrackCheckoutCreated(userID, plan string)           {}
func (c *noopClient) TrackSubscriptionActivated(userID, plan string)     {}
func (c *noopClient) TrackCompletionToggled(userID, kind, action string) {}
func (c *noopClient) TrackWeightLogged(userID string)                    {}
func (c *noopClient) TrackPlanSaved(userID, kind string)                 {}
func (c *noopClient) TrackCLIError(command, errorType string)            {}
