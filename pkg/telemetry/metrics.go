package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Timer outcomes recorded in the timers_total metric.
const (
	OutcomeArmed    = "armed"
	OutcomeFired    = "fired"
	OutcomeCanceled = "canceled"
)

// DefaultDelayBuckets are histogram buckets, in seconds, for armed delays.
var DefaultDelayBuckets = []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5}

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "tooltip").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for armed delays.
	// Default: DefaultDelayBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the delay histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "tooltip",
		Buckets:   DefaultDelayBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a tooltip.Observer backed by Prometheus collectors.
//
// Exported series:
//   - visibility_changes_total{name, visible, controlled}
//   - timers_total{name, kind, outcome}
//   - timer_delay_seconds{kind}
//   - listeners_active{name, event}
type Metrics struct {
	visibility *prometheus.CounterVec
	timers     *prometheus.CounterVec
	delay      *prometheus.HistogramVec
	listeners  *prometheus.GaugeVec
}

var _ tooltip.Observer = (*Metrics)(nil)

// NewMetrics registers the collectors and returns the observer. Registering
// twice on the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if len(config.Buckets) == 0 {
		config.Buckets = DefaultDelayBuckets
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		visibility: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "visibility_changes_total",
				Help:        "Visibility requests by controller and requested value.",
				ConstLabels: config.ConstLabels,
			},
			[]string{"name", "visible", "controlled"},
		),
		timers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "timers_total",
				Help:        "Show and hide timers by outcome.",
				ConstLabels: config.ConstLabels,
			},
			[]string{"name", "kind", "outcome"},
		),
		delay: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "timer_delay_seconds",
				Help:        "Delay of armed show and hide timers.",
				Buckets:     config.Buckets,
				ConstLabels: config.ConstLabels,
			},
			[]string{"kind"},
		),
		listeners: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "listeners_active",
				Help:        "DOM listeners currently attached, by event type.",
				ConstLabels: config.ConstLabels,
			},
			[]string{"name", "event"},
		),
	}
}

// VisibilityChanged counts a visibility request.
func (m *Metrics) VisibilityChanged(name string, visible, controlled bool) {
	m.visibility.WithLabelValues(name, strconv.FormatBool(visible), strconv.FormatBool(controlled)).Inc()
}

// TimerArmed counts an armed timer and records its delay.
func (m *Metrics) TimerArmed(name string, kind tooltip.TimerKind, delay time.Duration) {
	m.timers.WithLabelValues(name, string(kind), OutcomeArmed).Inc()
	m.delay.WithLabelValues(string(kind)).Observe(delay.Seconds())
}

// TimerFired counts a fired timer.
func (m *Metrics) TimerFired(name string, kind tooltip.TimerKind) {
	m.timers.WithLabelValues(name, string(kind), OutcomeFired).Inc()
}

// TimerCanceled counts a canceled timer.
func (m *Metrics) TimerCanceled(name string, kind tooltip.TimerKind) {
	m.timers.WithLabelValues(name, string(kind), OutcomeCanceled).Inc()
}

// ListenerAttached increments the active listener gauge.
func (m *Metrics) ListenerAttached(name, event string) {
	m.listeners.WithLabelValues(name, event).Inc()
}

// ListenerDetached decrements the active listener gauge.
func (m *Metrics) ListenerDetached(name, event string) {
	m.listeners.WithLabelValues(name, event).Dec()
}
