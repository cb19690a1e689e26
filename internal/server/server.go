// Package server exposes the sequence over HTTP/JSON with Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibscroll/internal/logging"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// RequestTimeout bounds a single lookup inside a handler.
	RequestTimeout time.Duration
	Security       SecurityConfig
}

// DefaultConfig returns production defaults for addr.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:            addr,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  5 * time.Second,
		Security:        DefaultSecurityConfig(),
	}
}

// Server serves a ValueSource over HTTP.
type Server struct {
	source  ValueSource
	config  Config
	metrics *Metrics
	logger  logging.Logger
}

// New creates a server. A nil m gets a fresh Metrics; a nil logger is
// replaced by a no-op one.
func New(source ValueSource, config Config, m *Metrics, logger logging.Logger) *Server {
	if m == nil {
		m = NewMetrics()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{source: source, config: config, metrics: m, logger: logger}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	routes := map[string]http.HandlerFunc{
		"/v1/fib":      s.handleFib,
		"/v1/sequence": s.handleSequence,
		"/v1/stats":    s.handleStats,
		"/health":      s.handleHealth,
		"/metrics":     s.handleMetrics,
	}
	for path, h := range routes {
		mux.HandleFunc(path, SecurityMiddleware(s.config.Security, s.metricsMiddleware(h)))
	}
	return mux
}

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down
// gracefully within ShutdownTimeout. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", logging.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
