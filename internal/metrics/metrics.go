// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
// Every method is safe on a nil *Metrics.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	screensOpen     prometheus.Gauge
	screensReaped   prometheus.Counter
	staleFetches    *prometheus.CounterVec
	generations     *prometheus.CounterVec
	publishOutcomes *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		screensOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "creatorhub_screens_open",
			Help: "Screens currently open.",
		}),
		screensReaped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creatorhub_screens_reaped_total",
			Help: "Screens closed by idle expiry.",
		}),
		staleFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorhub_stale_fetches_total",
			Help: "Fetch responses discarded because a newer fetch was issued.",
		}, []string{"collection"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorhub_generations_total",
			Help: "Generation attempts by type and outcome.",
		}, []string{"type", "outcome"}),
		publishOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorhub_post_publish_total",
			Help: "Simulated post publications by outcome.",
		}, []string{"outcome"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight, m.httpRequests, m.httpDuration,
		m.screensOpen, m.screensReaped, m.staleFetches,
		m.generations, m.publishOutcomes,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RequestStarted() {
	if m != nil {
		m.httpInFlight.Inc()
	}
}

func (m *Metrics) RequestFinished(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ScreenOpened() {
	if m != nil {
		m.screensOpen.Inc()
	}
}

func (m *Metrics) ScreenClosed(reaped bool) {
	if m == nil {
		return
	}
	m.screensOpen.Dec()
	if reaped {
		m.screensReaped.Inc()
	}
}

func (m *Metrics) StaleFetch(collection string) {
	if m != nil {
		m.staleFetches.WithLabelValues(collection).Inc()
	}
}

func (m *Metrics) Generation(usageType, outcome string) {
	if m != nil {
		m.generations.WithLabelValues(usageType, outcome).Inc()
	}
}

func (m *Metrics) Publish(outcome string) {
	if m != nil {
		m.publishOutcomes.WithLabelValues(outcome).Inc()
	}
}
