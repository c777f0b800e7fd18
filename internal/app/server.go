package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/transport/middleware"
	"github.com/heartmarshall/library-backend/internal/transport/rest"
)

const rateLimitCleanupInterval = 5 * time.Minute

// Handler builds the full HTTP handler. The returned stop function releases
// the rate limiter's background goroutine.
func (c *Container) Handler() (http.Handler, func()) {
	limiter := middleware.NewRateLimiter(rateLimitCleanupInterval)

	mux := rest.NewRouter(rest.RouterDeps{
		Circulation: rest.NewCirculationHandler(c.Circulation, c.Retry, c.Log),
		Reports:     rest.NewReportsHandler(c.Stats, c.Log),
		Health:      rest.NewHealthHandler(c.Pool, Version),
		Metrics:     c.Metrics.Handler(),
		Auth:        middleware.RequireOperator(c.JWT),
		WriteLimit:  limiter.Limit(c.Config.Server.WriteRateLimit),
	})

	// The metrics middleware wraps the mux directly so it sees r.Pattern.
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(c.Log),
		middleware.Recovery(c.Log),
		middleware.CORS(c.Config.CORS),
		middleware.Timeout(c.Config.Server.RequestTimeout),
		c.Metrics.Middleware(),
	)(mux)

	return handler, limiter.Stop
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within server.shutdown_timeout.
func (c *Container) Serve(ctx context.Context) error {
	handler, stop := c.Handler()
	defer stop()

	cfg := c.Config.Server
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		c.Log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Log.Info("shutting down http server", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}

// Run builds the container and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting library backend",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	return c.Serve(ctx)
}
