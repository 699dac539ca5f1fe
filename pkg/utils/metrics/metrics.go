package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tapcheck"

// Upstream request outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeStatusError    = "status_error"
	OutcomeTransportError = "transport_error"
)

// Metrics holds the Prometheus collectors for the service. All methods are
// safe to call on a nil *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests    *prometheus.CounterVec   // labels: provider, outcome
	UpstreamDuration    *prometheus.HistogramVec // labels: provider
	Classified          *prometheus.CounterVec   // labels: list={exceeding,others}
	EnrichmentFallbacks prometheus.Counter
	StaleReports        prometheus.Counter
	HTTPRequests        *prometheus.CounterVec // labels: route, status
}

// New creates the collectors on a dedicated registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		Classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contaminants_classified_total",
			Help:      "Contaminants classified by resulting list.",
		}, []string{"list"}),
		EnrichmentFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_fallback_total",
			Help:      "Facility lookups that fell back to N/A values.",
		}),
		StaleReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_reports_total",
			Help:      "Report loads discarded because a newer selection was made.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route pattern and status code.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.Classified,
		m.EnrichmentFallbacks,
		m.StaleReports,
		m.HTTPRequests,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream call and its latency
func (m *Metrics) ObserveUpstream(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveClassification counts contaminants placed in each list
func (m *Metrics) ObserveClassification(exceeding, others int) {
	if m == nil {
		return
	}
	m.Classified.WithLabelValues("exceeding").Add(float64(exceeding))
	m.Classified.WithLabelValues("others").Add(float64(others))
}

// IncEnrichmentFallback counts a facility lookup replaced by defaults
func (m *Metrics) IncEnrichmentFallback() {
	if m == nil {
		return
	}
	m.EnrichmentFallbacks.Inc()
}

// IncStaleReport counts a report discarded because a newer one was requested
func (m *Metrics) IncStaleReport() {
	if m == nil {
		return
	}
	m.StaleReports.Inc()
}

// ObserveHTTP counts a served request by route pattern and status
func (m *Metrics) ObserveHTTP(route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, status).Inc()
}
