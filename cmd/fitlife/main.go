// FitLife Pro backend: coaching chat proxy, Mercado Pago subscriptions and
// per-user fitness tracking over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fitlife-pro/fitlife/internal/cli"
	"github.com/fitlife-pro/fitlife/internal/config"
	"github.com/fitlife-pro/fitlife/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	telemetryClient := telemetry.New(cfg.Telemetry)
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, cfg, telemetryClient); err != nil {
		telemetryClient.Close()
		os.Exit(1)
	}
}
