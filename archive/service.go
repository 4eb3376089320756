// Package archive reconstructs wrestler histories, statistics, brackets and
// ranked search results from the rows of a Store. Every call recomputes
// from freshly fetched rows.
package archive

import (
	"context"

	"go.uber.org/zap"

	"github.com/padraicbc/wrestleapi/config"
	"github.com/padraicbc/wrestleapi/metrics"
)

// Service answers the read operations of the HTTP layer.
type Service struct {
	store   Store
	limits  config.Search
	log     *zap.Logger
	metrics *metrics.Manager
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics sets the collectors the service reports to.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

// New builds a Service over store.
func New(store Store, limits config.Search, opts ...Option) *Service {
	s := &Service{store: store, limits: limits, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// defect logs and counts a tolerated data defect.
func (s *Service) defect(stage, reason string, fields ...zap.Field) {
	s.metrics.DataDefect(stage, reason)
	s.log.Warn("data quality",
		append([]zap.Field{zap.String("stage", stage), zap.String("reason", reason)}, fields...)...)
}

func clampLimit(limit, def, maxLimit int) int {
	switch {
	case limit <= 0:
		return def
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
