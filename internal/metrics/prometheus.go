package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts analysis, signal, backtest and persistence events on its own registry.
type Recorder struct {
	registry          *prometheus.Registry
	analyses          *prometheus.CounterVec
	signals           *prometheus.CounterVec
	backtestDuration  *prometheus.HistogramVec
	persistenceErrors *prometheus.CounterVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyses_total",
				Help: "Total number of market analyses run",
			},
			[]string{"symbol"},
		),
		signals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signals_total",
				Help: "Total number of confluence signals emitted",
			},
			[]string{"symbol", "direction", "grade"},
		),
		backtestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backtest_duration_seconds",
				Help:    "Wall time of a backtest run in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
		persistenceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "persistence_errors_total",
				Help: "Total number of failed writes to the store",
			},
			[]string{"entity"},
		),
	}
}

func (r *Recorder) RecordAnalysis(symbol string) {
	r.analyses.WithLabelValues(symbol).Inc()
}

func (r *Recorder) RecordSignal(symbol, direction, grade string) {
	r.signals.WithLabelValues(symbol, direction, grade).Inc()
}

func (r *Recorder) RecordBacktest(symbol string, elapsed time.Duration) {
	r.backtestDuration.WithLabelValues(symbol).Observe(elapsed.Seconds())
}

func (r *Recorder) RecordPersistenceError(entity string) {
	r.persistenceErrors.WithLabelValues(entity).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
