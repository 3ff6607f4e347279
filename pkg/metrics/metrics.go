// Package metrics provides Prometheus instrumentation for gostream pipelines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gostream components.
type Registry struct {
	// Pipeline lifecycle metrics
	StreamActivations *prometheus.CounterVec
	StreamCompletions *prometheus.CounterVec
	StreamFailures    *prometheus.CounterVec
	StreamActive      *prometheus.GaugeVec
	StreamDuration    *prometheus.HistogramVec

	// Item flow metrics
	ItemsForwarded *prometheus.CounterVec

	// Combinator runtime metrics
	BranchesActive  *prometheus.GaugeVec
	BranchesSpawned *prometheus.CounterVec

	// Timing operator metrics
	Timeouts *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gostream components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		StreamActivations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gostream",
				Subsystem: "pipeline",
				Name:      "activations_total",
				Help:      "Total number of stream activations",
			},
			[]string{"stream"},
		),

		StreamCompletions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gostream",
				Subsystem: "pipeline",
				Name:      "completions_total",
				Help:      "Total number of activations that ran to natural exhaustion",
			},
			[]string{"stream"},
		),

		StreamFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gostream",
				Subsystem: "pipeline",
				Name:      "failures_total",
				Help:      "Total number of activations that ended with an error",
			},
			[]string{"stream"},
		),

		StreamActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gostream",
				Subsystem: "pipeline",
				Name:      "active",
				Help:      "Number of currently open activations",
			},
			[]string{"stream"},
		),

		StreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gostream",
				Subsystem: "pipeline",
				Name:      "duration_seconds",
				Help:      "Lifetime of an activation from open to close",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stream"},
		),

		ItemsForwarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gostream",
				Subsystem: "pipeline",
				Name:      "items_total",
				Help:      "Total number of items forwarded downstream",
			},
			[]string{"stream"},
		),

		BranchesActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gostream",
				Subsystem: "combine",
				Name:      "branches_active",
				Help:      "Number of concurrently running branch tasks",
			},
			[]string{"operator"},
		),

		BranchesSpawned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gostream",
				Subsystem: "combine",
				Name:      "branches_spawned_total",
				Help:      "Total number of branch tasks spawned",
			},
			[]string{"operator"},
		),

		Timeouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gostream",
				Subsystem: "timing",
				Name:      "timeouts_total",
				Help:      "Total number of deadlines that elapsed before the source produced",
			},
			[]string{"stream"},
		),
	}
}
