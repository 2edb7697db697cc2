package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/janwillms/graphboard/internal/server"
	"github.com/janwillms/graphboard/pkg/session"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// serve command receives an interrupt.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API and web UI.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and embedded web UI",
		Long: `Serve starts the graphboard HTTP server: a JSON API for graph editing
sessions plus an embedded single-page UI at /.

Sessions are stored in memory by default and expire after their TTL.
A TOML config file can switch the backend to redis or mongo and tune
the address, log level, and session lifetime.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServer starts the HTTP server and blocks until ctx is canceled or the
// listener fails.
func (c *CLI) runServer(ctx context.Context, cfg server.Config) error {
	logger := loggerFromContext(ctx)

	store, closeStore, err := server.NewSessionStore(ctx, cfg.Session)
	if err != nil {
		return err
	}

	ttl := time.Duration(cfg.Session.TTL)
	srv := server.New(store, logger, ttl)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}

	// Sweep expired sessions in the background. Backends with native TTL
	// treat Cleanup as a no-op.
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go sweepSessions(cleanupCtx, store, ttl, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	logger.Info("server listening", "addr", cfg.Addr, "backend", cfg.Session.Backend, "ttl", ttl)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = closeStore(context.Background())
			return err
		}
	}

	return closeStore(context.Background())
}

// sweepSessions periodically removes expired sessions from the store.
func sweepSessions(ctx context.Context, store session.Store, ttl time.Duration, logger *log.Logger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
