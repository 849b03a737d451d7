// Package metrics exposes Prometheus counters for HTTP traffic and the
// marketplace operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	listings *prometheus.CounterVec
	uploads  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	messages prometheus.Counter
	events   *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status class",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"}),
		listings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trznica_listings_created_total",
			Help: "Listings created, by whether an image was stored",
		}, []string{"image"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trznica_photo_uploads_total",
			Help: "Photo upload attempts by result",
		}, []string{"result"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trznica_photos_rejected_total",
			Help: "Photos refused before upload by reason",
		}, []string{"reason"}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trznica_contact_messages_total",
			Help: "Contact messages stored",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trznica_events_published_total",
			Help: "Message events published to the broker by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.listings, m.uploads, m.rejected, m.messages, m.events)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Request records one finished HTTP request.
func (m *Metrics) Request(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ListingCreated counts a stored listing.
func (m *Metrics) ListingCreated(withImage bool) {
	m.listings.WithLabelValues(strconv.FormatBool(withImage)).Inc()
}

// PhotoUploaded counts an upload attempt.
func (m *Metrics) PhotoUploaded(ok bool) {
	m.uploads.WithLabelValues(result(ok)).Inc()
}

// PhotoRejected counts a photo refused before upload.
func (m *Metrics) PhotoRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// MessageCreated counts a stored contact message.
func (m *Metrics) MessageCreated() {
	m.messages.Inc()
}

// EventPublished counts a broker publish attempt.
func (m *Metrics) EventPublished(ok bool) {
	m.events.WithLabelValues(result(ok)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
