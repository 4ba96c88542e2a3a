// ABOUTME: Gateway orchestrator wiring the HTTP server, flow engine, and store
// ABOUTME: Manages route registration and graceful server lifecycle

package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ailucid/flow-gateway/internal/config"
	"github.com/ailucid/flow-gateway/internal/flow"
	"github.com/ailucid/flow-gateway/internal/store"
)

// Gateway serves the webhook endpoint and the context introspection API.
// The store is injected at construction; the gateway owns the flow engine
// and the HTTP server lifecycle.
type Gateway struct {
	config       *config.Config
	store        store.Store
	engine       *flow.Engine
	httpServer   *http.Server
	verifySecret []byte
	logger       *slog.Logger
}

// New creates a Gateway backed by the given store.
func New(cfg *config.Config, s store.Store, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		config: cfg,
		store:  s,
		engine: flow.NewEngine(s, logger),
		logger: logger.With("component", "gateway"),
	}

	if cfg.Webhook.VerifySecret != "" {
		g.verifySecret = []byte(cfg.Webhook.VerifySecret)
	} else {
		g.logger.Warn("webhook signature verification disabled - no verify_secret configured")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", g.handleHealth)
	mux.HandleFunc("/health/ready", g.handleReady)
	mux.HandleFunc("/webhook", g.handleWebhook)
	mux.HandleFunc("/contexts", g.handleListContexts)
	mux.HandleFunc("/contexts/reset", g.handleResetContexts)

	g.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return g
}

// Handler returns the gateway's HTTP handler, mainly for tests.
func (g *Gateway) Handler() http.Handler {
	return g.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		g.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := g.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	if err := g.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	g.logger.Info("gateway stopped")
	return nil
}
