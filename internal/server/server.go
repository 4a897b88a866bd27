// Package server exposes the FitLife backend over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-pro/fitlife/internal/config"
	"github.com/fitlife-pro/fitlife/internal/db"
	"github.com/fitlife-pro/fitlife/internal/llm"
	"github.com/fitlife-pro/fitlife/internal/log"
	"github.com/fitlife-pro/fitlife/internal/payment"
	"github.com/fitlife-pro/fitlife/internal/telemetry"
	"github.com/fitlife-pro/fitlife/internal/tracking"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the HTTP layer dispatches to. Provider may be nil
// when no LLM key is configured.
type Deps struct {
	DB        *db.DB
	Tracking  *tracking.Service
	Payments  *payment.Service
	Provider  llm.Provider
	Telemetry telemetry.Client
}

// Server is the HTTP front of the backend.
type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	db        *db.DB
	tracking  *tracking.Service
	payments  *payment.Service
	provider  llm.Provider
	telemetry telemetry.Client
}

// New builds the router. It does not start listening.
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Telemetry == nil {
		deps.Telemetry = telemetry.Noop()
	}
	if deps.Payments == nil {
		deps.Payments = payment.NewService(nil, deps.DB, deps.Telemetry, cfg.Server.PublicURL)
	}

	s := &Server{
		cfg:       cfg,
		engine:    gin.New(),
		db:        deps.DB,
		tracking:  deps.Tracking,
		payments:  deps.Payments,
		provider:  deps.Provider,
		telemetry: deps.Telemetry,
	}

	s.engine.Use(
		recovery(),
		requestLogger(),
		cors(cfg.Server.AllowOrigin),
	)
	s.registerRoutes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Server.Port)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	providerName := s.providerName()
	log.Printf("fitlife listening on %s (llm: %s, payments: %t)", ln.Addr(), orNone(providerName), s.payments.Enabled())
	s.telemetry.TrackServerStarted(providerName, s.payments.Enabled())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func (s *Server) providerName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}
