// Package cli provides the command-line interface for FitLife.
package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/fitlife-pro/fitlife/internal/config"
	"github.com/fitlife-pro/fitlife/internal/telemetry"
	"github.com/fitlife-pro/fitlife/pkg/version"
)

var (
	telemetryClient telemetry.Client
	appConfig       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fitlife",
	Short: "FitLife Pro backend",
	Long: `FitLife Pro backend

Serves the coaching chat proxy, Mercado Pago subscriptions and the
per-user tracking API (weights, photos, meal and workout completions,
custom plans, notifications).

Run without arguments to start the HTTP server.

Configuration is read from the environment and an optional .env file:
  DATABASE_URL, DATABASE_DRIVER (postgres|sqlite), PORT, PUBLIC_URL,
  ANTHROPIC_API_KEY, OPENAI_API_KEY, OPENROUTER_API_KEY,
  MERCADOPAGO_ACCESS_TOKEN, POSTHOG_API_KEY, LOG_DIR

Telemetry:
  Product events are sent to PostHog only when POSTHOG_API_KEY is set.
  Opt-out with:
  	FITLIFE_TELEMETRY_ENABLED=false`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(checkCmd)
	addServeFlags(rootCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, cfg *config.Config, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.Noop()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	telemetryClient = tc
	appConfig = cfg

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	telemetryClient.TrackCLIError(cmdName, classifyError(err))
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration", "not set"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "network", "timeout", "connection", "listen"):
		return "network_error"
	case containsAny(errStr, "permission", "access denied", "api key", "unauthorized"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
