package engine

import (
	"io"
	"log/slog"
)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	pactDir string
}

// Option configures Engine, Commands and StoreMerger.
type Option func(*options)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records publish and prune counts on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPactDir makes StoreMerger re-export the pact file after pruning.
// Engine sets it from config.Config.PactDir.
func WithPactDir(dir string) Option {
	return func(o *options) {
		o.pactDir = dir
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
