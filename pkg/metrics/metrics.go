// Package metrics exports render pass statistics to Prometheus.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("app"))
//	r := render.New(render.WithObserver(m))
//	m.TrackPending(r)
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vdom/pkg/render"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "vdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vdom",
		Subsystem: "render",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records render passes. It implements render.Observer.
type Collector struct {
	config Config

	passes   *prometheus.CounterVec
	duration prometheus.Histogram
	nodes    *prometheus.CounterVec
	hooks    prometheus.Counter
	warnings prometheus.Counter
	errors   prometheus.Counter
}

var _ render.Observer = (*Collector)(nil)

// New registers the render metrics and returns their collector.
//
// Metrics collected:
//   - vdom_render_passes_total: Counter of passes by status
//   - vdom_render_pass_duration_seconds: Histogram of pass duration
//   - vdom_render_nodes_total: Counter of node operations by op
//     (created, updated, removed, deferred, moved)
//   - vdom_render_hooks_total: Counter of lifecycle hook calls
//   - vdom_render_warnings_total: Counter of soft warnings
//   - vdom_render_errors_total: Counter of errors raised by views and hooks
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		config: config,

		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_total",
			Help:        "Total number of vnode operations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		hooks: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hooks_total",
			Help:        "Total number of lifecycle hook calls",
			ConstLabels: config.ConstLabels,
		}),

		warnings: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "warnings_total",
			Help:        "Total number of render warnings",
			ConstLabels: config.ConstLabels,
		}),

		errors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of errors raised by views and hooks",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObservePass implements render.Observer.
func (c *Collector) ObservePass(s render.PassStats) {
	status := "success"
	if s.Errors > 0 {
		status = "error"
	}
	c.passes.WithLabelValues(status).Inc()
	c.duration.Observe(s.Duration.Seconds())

	c.nodes.WithLabelValues("created").Add(float64(s.Created))
	c.nodes.WithLabelValues("updated").Add(float64(s.Updated))
	c.nodes.WithLabelValues("removed").Add(float64(s.Removed))
	c.nodes.WithLabelValues("deferred").Add(float64(s.Deferred))
	c.nodes.WithLabelValues("moved").Add(float64(s.Moved))

	c.hooks.Add(float64(s.Hooks))
	c.warnings.Add(float64(s.Warnings))
	c.errors.Add(float64(s.Errors))
}

// TrackPending registers a gauge reporting r's deferred removals. It may be
// called once per registry.
func (c *Collector) TrackPending(r *render.Renderer) prometheus.GaugeFunc {
	return promauto.With(c.config.Registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   c.config.Namespace,
		Subsystem:   c.config.Subsystem,
		Name:        "pending_removals",
		Help:        "DOM nodes kept in place while onbeforeremove is pending",
		ConstLabels: c.config.ConstLabels,
	}, func() float64 {
		return float64(r.Pending())
	})
}
