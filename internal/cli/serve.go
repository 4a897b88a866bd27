package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/fitlife-pro/fitlife/internal/llm"
	"github.com/fitlife-pro/fitlife/internal/log"
	"github.com/fitlife-pro/fitlife/internal/payment"
	"github.com/fitlife-pro/fitlife/internal/server"
	"github.com/fitlife-pro/fitlife/internal/tracking"
)

var (
	servePort       string
	serveNoKeyCheck bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default command)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")
	cmd.Flags().BoolVar(&serveNoKeyCheck, "no-key-check", false, "Skip the LLM key probe at start-up")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	if err := log.Init(cfg.LogDir); err != nil {
		return trackCLIError("serve", fmt.Errorf("init log: %w", err))
	}
	defer func() { _ = log.Close() }()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return trackCLIError("serve", err)
	}
	defer func() { _ = database.Close() }()

	provider, err := llm.NewProvider(cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Warnf("no LLM key configured, /api/chat will answer 503")
	case err != nil:
		return trackCLIError("serve", fmt.Errorf("configure LLM provider: %w", err))
	}

	mp, err := payment.NewClient(cfg.Payment)
	if errors.Is(err, payment.ErrNotConfigured) {
		log.Warnf("MERCADOPAGO_ACCESS_TOKEN not set, checkout and webhook will answer 503")
	}

	srv := server.New(cfg, server.Deps{
		DB:        database,
		Tracking:  tracking.NewService(database, telemetryClient),
		Payments:  payment.NewService(mp, database, telemetryClient, cfg.Server.PublicURL),
		Provider:  provider,
		Telemetry: telemetryClient,
	})

	if provider != nil && !serveNoKeyCheck {
		go probeKey(cmd.Context(), provider)
	}

	return trackCLIError("serve", srv.Run(cmd.Context()))
}

// probeKey logs whether the configured LLM key is accepted.
func probeKey(ctx context.Context, provider llm.Provider) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := llm.Probe(ctx, provider); err != nil {
		log.Errorf("%s key check failed: %v", provider.Name(), err)
		return
	}
	log.Printf("%s key check passed", provider.Name())
}
