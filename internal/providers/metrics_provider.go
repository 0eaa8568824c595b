package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cpd/internal/services"
	"cpd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncDispatches(action string)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	dispatchesTotal     *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncDispatches(action string) {
	m.dispatchesTotal.WithLabelValues(action).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.PlannerServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cpd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cpd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cpd_cache_hits_total",
			Help: "Total number of view cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cpd_cache_misses_total",
			Help: "Total number of view cache misses",
		}),

		dispatchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cpd_dispatches_total",
			Help: "Total number of store dispatches by action",
		}, []string{"action"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cpd_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cpd_personas_total",
		Help: "Current number of personas",
	}, func() float64 {
		personas, _, _ := service.Counts()
		return float64(personas)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cpd_blogs_total",
		Help: "Current number of blog posts",
	}, func() float64 {
		_, blogs, _ := service.Counts()
		return float64(blogs)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cpd_gpt_exports_total",
		Help: "Current number of prompt export records",
	}, func() float64 {
		_, _, exports := service.Counts()
		return float64(exports)
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncDispatches(_ string)                           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
