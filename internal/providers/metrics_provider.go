package providers

import (
	"cellar/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CellarGaugeSource is polled by the cellar gauges at scrape time.
type CellarGaugeSource interface {
	TotalRemaining() int
	LogCount() int
	NoteCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncClamped(operation string)
	IncStoreRecoveries(reason string)
	WatchCellar(source CellarGaugeSource)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	clampedTotal        *prometheus.CounterVec
	storeRecoveries     *prometheus.CounterVec
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncClamped(operation string) {
	m.clampedTotal.WithLabelValues(operation).Inc()
}

func (m *MetricsProvider) IncStoreRecoveries(reason string) {
	m.storeRecoveries.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) WatchCellar(source CellarGaugeSource) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cellar_bottles_remaining",
		Help: "Bottles remaining across the whole catalog",
	}, func() float64 {
		return float64(source.TotalRemaining())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cellar_logs_total",
		Help: "Number of consumption logs in the journal",
	}, func() float64 {
		return float64(source.LogCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cellar_notes_total",
		Help: "Number of free journal notes",
	}, func() float64 {
		return float64(source.NoteCount())
	})
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cellar_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cellar_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cellar_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cellar_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cellar_persistence_duration_seconds",
			Help:    "Duration of document save operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		clampedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cellar_quantity_clamped_total",
			Help: "Requested quantities adjusted to the allowed range",
		}, []string{"operation"}),

		storeRecoveries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cellar_store_recoveries_total",
			Help: "Stored documents discarded or repaired on load",
		}, []string{"reason"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncClamped(_ string)                              {}
func (n *noopMetrics) IncStoreRecoveries(_ string)                      {}
func (n *noopMetrics) WatchCellar(_ CellarGaugeSource)                  {}
