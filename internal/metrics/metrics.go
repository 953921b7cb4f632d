// Package metrics collects and exposes Prometheus metrics for the API and the LLM gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLM outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeBlocked = "blocked"
	OutcomeError   = "error"
)

// Collector is the Prometheus-backed implementation used by the gateway,
// the itinerary service and the HTTP middleware.
type Collector struct {
	httpRequests       *prometheus.CounterVec
	llmRequests        *prometheus.CounterVec
	llmLatency         prometheus.Histogram
	itinerariesCreated prometheus.Counter
}

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eztravel_http_requests_total",
			Help: "HTTP responses by method, route and status code.",
		}, []string{"method", "route", "status"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eztravel_llm_requests_total",
			Help: "Itinerary prompts by outcome.",
		}, []string{"outcome"}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eztravel_llm_latency_seconds",
			Help:    "Latency of model generation calls.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}),
		itinerariesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eztravel_itineraries_created_total",
			Help: "Itineraries persisted.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.llmRequests,
		c.llmLatency,
		c.itinerariesCreated,
	)
	return c
}

func (c *Collector) RecordHTTP(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (c *Collector) RecordLLM(outcome string, d time.Duration) {
	c.llmRequests.WithLabelValues(outcome).Inc()
	if outcome != OutcomeBlocked {
		c.llmLatency.Observe(d.Seconds())
	}
}

func (c *Collector) RecordItineraryCreated() {
	c.itinerariesCreated.Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
