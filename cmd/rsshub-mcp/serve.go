// ABOUTME: MCP stdio serving loop with the optional debug API alongside
// ABOUTME: Ties both lifetimes together so stdio exit also stops the HTTP listener

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harper/rsshub-mcp/internal/api"
	"github.com/harper/rsshub-mcp/internal/mcp"
)

func runServe(ctx context.Context) error {
	srv := mcp.NewServer(Version, cfg, routeCache, subStore, fetchClient, logger)

	if cfg.HTTPAddr == "" {
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	}

	handler := api.NewHandler(routeCache, subStore, fetchClient, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(handler, logger),
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(serveCtx)

	// ServeStdio installs its own SIGINT/SIGTERM handling and returns when
	// the transport closes; the debug API follows it down.
	g.Go(func() error {
		defer cancel()
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("debug API listening", slog.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("debug API error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("debug API shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	return g.Wait()
}
