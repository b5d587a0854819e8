package prometheus

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// MetricsCollector owns a private registry and hands out metric vectors.
// Registering the same name twice returns the first vector.
type MetricsCollector interface {
	RegisterCounter(name, help string, labels ...string) *prometheus.CounterVec
	RegisterGauge(name, help string, labels ...string) *prometheus.GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec
	Handler() http.Handler
	Registry() *prometheus.Registry
}

// CollectorConfig holds configuration for the collector.
type CollectorConfig struct {
	Namespace            string
	Subsystem            string
	EnableProcessMetrics bool
	EnableGoMetrics      bool
	DefaultBuckets       []float64
	ConstLabels          map[string]string
}

// DefaultBuckets suit calls that finish in microseconds to a few seconds.
var DefaultBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

type prometheusCollector struct {
	registry *prometheus.Registry
	config   CollectorConfig
	mu       sync.Mutex
	vecs     map[string]prometheus.Collector
	logger   logging.Logger
}

// NewMetricsCollector creates a MetricsCollector with its own registry.
func NewMetricsCollector(cfg CollectorConfig, logger logging.Logger) (MetricsCollector, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.DefaultBuckets == nil {
		cfg.DefaultBuckets = DefaultBuckets
	}

	registry := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: cfg.Namespace,
		}))
	}
	if cfg.EnableGoMetrics {
		registry.MustRegister(collectors.NewGoCollector())
	}

	return &prometheusCollector{
		registry: registry,
		config:   cfg,
		vecs:     make(map[string]prometheus.Collector),
		logger:   logger.Named("metrics"),
	}, nil
}

func (c *prometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (c *prometheusCollector) Registry() *prometheus.Registry { return c.registry }

// register stores vec under name unless a collector already holds the name,
// in which case the existing one is returned.
func (c *prometheusCollector) register(name string, vec prometheus.Collector) prometheus.Collector {
	c.mu.Lock()
	defer c.mu.Unlock()

	fqName := prometheus.BuildFQName(c.config.Namespace, c.config.Subsystem, name)
	if existing, ok := c.vecs[fqName]; ok {
		return existing
	}
	if err := c.registry.Register(vec); err != nil {
		c.logger.Error("failed to register metric", logging.String("name", fqName), logging.Err(err))
	}
	c.vecs[fqName] = vec
	return vec
}

func (c *prometheusCollector) RegisterCounter(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   c.config.Namespace,
		Subsystem:   c.config.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.config.ConstLabels,
	}, labels)
	if v, ok := c.register(name, vec).(*prometheus.CounterVec); ok {
		return v
	}
	c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("type", "counter"))
	return vec
}

func (c *prometheusCollector) RegisterGauge(name, help string, labels ...string) *prometheus.GaugeVec {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   c.config.Namespace,
		Subsystem:   c.config.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.config.ConstLabels,
	}, labels)
	if v, ok := c.register(name, vec).(*prometheus.GaugeVec); ok {
		return v
	}
	c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("type", "gauge"))
	return vec
}

func (c *prometheusCollector) RegisterHistogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = c.config.DefaultBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   c.config.Namespace,
		Subsystem:   c.config.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.config.ConstLabels,
		Buckets:     buckets,
	}, labels)
	if v, ok := c.register(name, vec).(*prometheus.HistogramVec); ok {
		return v
	}
	c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("type", "histogram"))
	return vec
}

//Personal.AI order the ending
