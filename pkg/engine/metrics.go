package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the engine's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "universal").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the engine's metrics.
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

// WithBuckets sets the histogram buckets.
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
		Namespace: "universal",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	rendersTotal    *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheEvictions  prometheus.Counter
	cacheEntries    prometheus.Gauge
	compileDuration prometheus.Histogram
	hookErrorsTotal prometheus.Counter
}

// NewMetrics creates and registers the engine's metrics.
//
// Metrics collected:
//   - universal_renders_total: Counter of renders by status
//   - universal_render_duration_seconds: Histogram of render duration
//   - universal_factory_cache_hits_total: Counter of factory cache hits
//   - universal_factory_cache_misses_total: Counter of factory cache misses
//   - universal_factory_cache_evictions_total: Counter of LRU evictions
//   - universal_factory_cache_entries: Gauge of cached factories
//   - universal_compile_duration_seconds: Histogram of module compile time
//   - universal_serialize_hook_errors_total: Counter of ignored hook failures
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of renders by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "factory_cache_hits_total",
			Help:        "Total number of factory cache hits",
			ConstLabels: config.ConstLabels,
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "factory_cache_misses_total",
			Help:        "Total number of factory cache misses",
			ConstLabels: config.ConstLabels,
		}),

		cacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "factory_cache_evictions_total",
			Help:        "Total number of factories evicted from the cache",
			ConstLabels: config.ConstLabels,
		}),

		cacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "factory_cache_entries",
			Help:        "Number of cached factories",
			ConstLabels: config.ConstLabels,
		}),

		compileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_duration_seconds",
			Help:        "Module compile duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		hookErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "serialize_hook_errors_total",
			Help:        "Total number of ignored before-serialization hook failures",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeRender(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(status).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) cacheEvicted() {
	if m != nil {
		m.cacheEvictions.Inc()
	}
}

func (m *Metrics) setCacheEntries(n int) {
	if m != nil {
		m.cacheEntries.Set(float64(n))
	}
}

func (m *Metrics) observeCompile(d time.Duration) {
	if m != nil {
		m.compileDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) hookError() {
	if m != nil {
		m.hookErrorsTotal.Inc()
	}
}
