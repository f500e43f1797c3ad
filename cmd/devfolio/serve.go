package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httphandler "github.com/ericfisherdev/devfolio/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/devfolio/internal/adapter/driving/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				cfg.ListenAddr = addr
			}
			return runServe(cmd.Context(), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DEVFOLIO_LISTEN_ADDR)")

	return cmd
}

func runServe(ctx context.Context, logger *slog.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.close(); closeErr != nil {
			logger.Error("error closing cache store", "error", closeErr)
		}
	}()

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(a.portfolio, a.pinger, logger))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(a.portfolio, logger))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.Info("devfolio started",
		"listen_addr", cfg.ListenAddr,
		"username", cfg.GitHubUsername,
		"store", cfg.Store,
		"cache_ttl", cfg.CacheTTL,
	)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	logger.Info("shutting down")

	// Requests in flight get 10s to finish their GitHub calls.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
