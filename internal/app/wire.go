package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"spectre/internal/domain"
	"spectre/internal/protocol/spectre"
	"spectre/internal/services/session"
	"spectre/internal/worker"
)

// Wire bundles the engine, session, worker and metrics registry.
type Wire struct {
	Algorithm domain.Algorithm
	Session   *session.Service
	Worker    *worker.Worker
	Registry  *prometheus.Registry
}

// NewWire constructs the dependency graph from cfg. A nil alg uses the
// scrypt and HMAC-SHA-256 engine.
func NewWire(cfg Config, log *slog.Logger, alg domain.Algorithm) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	if alg == nil {
		alg = spectre.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sess := session.New(alg, log, session.NewMetrics(reg))
	wk := worker.New(sess,
		worker.WithLogger(log),
		worker.WithDerivationLimit(cfg.DerivationRate, cfg.DerivationBurst),
	)

	return &Wire{
		Algorithm: alg,
		Session:   sess,
		Worker:    wk,
		Registry:  reg,
	}, nil
}
