package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jamalishaq/forecast_serve/internal/config"
	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

// serverRuntime owns the HTTP server lifecycle and graceful shutdown.
type serverRuntime struct {
	listener         net.Listener
	server           *http.Server
	logger           usecase.Logger
	shutdownDeadline time.Duration
}

// newServerRuntime constructs a runtime with lifecycle and timeout settings.
func newServerRuntime(listener net.Listener, handler http.Handler, logger usecase.Logger, cfg config.ServerConfig) *serverRuntime {
	return &serverRuntime{
		listener: listener,
		server: &http.Server{
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger:           logger,
		shutdownDeadline: cfg.ShutdownDeadline,
	}
}

// serve handles requests until context cancellation, then drains in-flight
// requests. Requests still running at the shutdown deadline are cut off.
func (s *serverRuntime) serve(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.Serve(s.listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		logRuntimeInfo(s.logger, "shutdown signal received", "action", "stop_accepts")
	}

	logRuntimeInfo(s.logger, "waiting for in-flight requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownDeadline)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logRuntimeError(s.logger, "shutdown deadline reached",
			"deadline", s.shutdownDeadline.String(),
			"action", "force_close_active_connections",
			"error", err,
		)
		_ = s.server.Close()
		logRuntimeInfo(s.logger, "shutdown complete after forced close")
		return nil
	}

	logRuntimeInfo(s.logger, "shutdown complete")
	return nil
}

// logRuntimeInfo logs runtime lifecycle events when a logger is configured.
func logRuntimeInfo(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, keysAndValues...)
}

// logRuntimeError logs runtime errors when a logger is configured.
func logRuntimeError(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Error(msg, keysAndValues...)
}
