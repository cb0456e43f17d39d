package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
	broadcasts   *prometheus.CounterVec
	liveClients  prometheus.Gauge
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tradelens",
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Backend API requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tradelens",
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Backend API latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		cacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tradelens",
				Subsystem: "backend",
				Name:      "cache_hits_total",
				Help:      "Backend responses served from cache",
			},
			[]string{"endpoint"},
		),
		broadcasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tradelens",
				Subsystem: "live",
				Name:      "broadcasts_total",
				Help:      "Live feed frames broadcast by kind",
			},
			[]string{"kind"},
		),
		liveClients: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "tradelens",
				Subsystem: "live",
				Name:      "clients",
				Help:      "Websocket clients reached by the last broadcast",
			},
		),
	}
}

// RecordFetch records one backend call.
func (r *Recorder) RecordFetch(endpoint string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.fetchTotal.WithLabelValues(endpoint, result).Inc()
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordCacheHit records a backend response served from cache.
func (r *Recorder) RecordCacheHit(endpoint string) {
	r.cacheHits.WithLabelValues(endpoint).Inc()
}

// RecordBroadcast records a live frame and how many clients it reached.
func (r *Recorder) RecordBroadcast(kind string, clients int) {
	r.broadcasts.WithLabelValues(kind).Inc()
	r.liveClients.Set(float64(clients))
}
