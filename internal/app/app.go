package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spectre/internal/worker"
)

// App is the wired application handed to CLI commands.
type App struct {
	Config Config
	Log    *slog.Logger
	*Wire
}

// New builds the app from cfg, logging to logOut.
func New(cfg Config, logOut io.Writer) (*App, error) {
	log := NewLogger(cfg.LogLevel, cfg.LogFormat, logOut)
	w, err := NewWire(cfg, log, nil)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Log: log, Wire: w}, nil
}

// Connect starts the worker and returns a client bound to it. The worker stops
// when ctx is done.
func (a *App) Connect(ctx context.Context) *worker.Client {
	return worker.Connect(ctx, a.Worker)
}

// MetricsHandler serves the app's registry in the Prometheus exposition format.
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
}
