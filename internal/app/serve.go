package app

import (
	"context"

	"github.com/agbru/fibscroll/internal/logging"
	"github.com/agbru/fibscroll/internal/metrics"
	"github.com/agbru/fibscroll/internal/sequence"
	"github.com/agbru/fibscroll/internal/server"
)

// runServe serves the HTTP API until ctx ends. The generator's metrics join
// the registry exposed on /metrics, and Timeout bounds each request.
func (a *Application) runServe(ctx context.Context) error {
	m := server.NewMetrics()
	gen := sequence.New(
		sequence.WithLogger(a.logger),
		sequence.WithRecorder(metrics.NewSequenceRecorder(m.Registry())),
	)
	defer gen.Close()

	cfg := server.DefaultConfig(a.Config.Addr)
	cfg.RequestTimeout = a.Config.Timeout

	a.logger.Info("serving sequence", logging.String("addr", cfg.Addr), logging.Int("max_index", sequence.MaxIndex))
	return server.New(gen, cfg, m, a.logger).ListenAndServe(ctx)
}
