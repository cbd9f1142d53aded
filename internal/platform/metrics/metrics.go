package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the video catalog service.
type Metrics struct {
	registry          *prometheus.Registry
	requestsTotal     prometheus.Counter
	uploadsTotal      prometheus.Counter
	trimsTotal        prometheus.Counter
	mergesTotal       prometheus.Counter
	tokensIssuedTotal prometheus.Counter
	errorsTotal       prometheus.Counter
	catalogClips      prometheus.Gauge
	catalogBytes      prometheus.Gauge
}

// New creates and registers Prometheus metrics for the service.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_requests_total",
		Help: "Total number of HTTP requests received",
	})
	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_uploads_total",
		Help: "Total number of clips successfully uploaded",
	})
	trimsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_trims_total",
		Help: "Total number of successful trim operations",
	})
	mergesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_merges_total",
		Help: "Total number of successful merge operations",
	})
	tokensIssuedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_share_tokens_issued_total",
		Help: "Total number of share tokens issued",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	catalogClips := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "video_catalog_clips",
		Help: "Number of clips in the catalog",
	})
	catalogBytes := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "video_catalog_bytes",
		Help: "Total byte size of all cataloged clips",
	})

	registry.MustRegister(
		requestsTotal,
		uploadsTotal,
		trimsTotal,
		mergesTotal,
		tokensIssuedTotal,
		errorsTotal,
		catalogClips,
		catalogBytes,
	)

	return &Metrics{
		registry:          registry,
		requestsTotal:     requestsTotal,
		uploadsTotal:      uploadsTotal,
		trimsTotal:        trimsTotal,
		mergesTotal:       mergesTotal,
		tokensIssuedTotal: tokensIssuedTotal,
		errorsTotal:       errorsTotal,
		catalogClips:      catalogClips,
		catalogBytes:      catalogBytes,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncUploads increments the uploads counter.
func (m *Metrics) IncUploads() {
	m.uploadsTotal.Inc()
}

// IncTrims increments the trims counter.
func (m *Metrics) IncTrims() {
	m.trimsTotal.Inc()
}

// IncMerges increments the merges counter.
func (m *Metrics) IncMerges() {
	m.mergesTotal.Inc()
}

// IncTokensIssued increments the share tokens counter.
func (m *Metrics) IncTokensIssued() {
	m.tokensIssuedTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// SetCatalogClips sets the cataloged clip count gauge.
func (m *Metrics) SetCatalogClips(n int64) {
	m.catalogClips.Set(float64(n))
}

// SetCatalogBytes sets the cataloged byte size gauge.
func (m *Metrics) SetCatalogBytes(n int64) {
	m.catalogBytes.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values
// (catalog clip count and stored bytes).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
