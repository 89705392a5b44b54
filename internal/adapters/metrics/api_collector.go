package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APICollector records HTTP request outcomes, retry attempts, and rate
// limiter/circuit breaker state, grounded on the teacher's
// api_metrics.go with an added breaker-state gauge since this agent's
// adapters/api.Client exposes CircuitState()/RateLimitSnapshot() the
// teacher's client has no equivalent of.
type APICollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	rateLimitWait   *prometheus.HistogramVec
	circuitState    *prometheus.GaugeVec
}

func newAPICollector() *APICollector {
	return &APICollector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "api_requests_total",
			Help: "Total API requests by method, path, and status code",
		}, []string{"method", "path", "status_code"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "api_request_duration_seconds",
			Help:    "API request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		}, []string{"method", "path"}),

		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "api_retries_total",
			Help: "Total API retry attempts by reason",
		}, []string{"method", "path", "reason"}),

		rateLimitWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "api_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the rate limiter",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "path"}),

		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "api_circuit_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{}),
	}
}

func (c *APICollector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.requestsTotal, c.requestDuration, c.retries, c.rateLimitWait, c.circuitState}
}

func (c *APICollector) RecordRequest(method, path string, statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, path).Observe(duration)
}

func (c *APICollector) RecordRetry(method, path, reason string) {
	c.retries.WithLabelValues(method, path, reason).Inc()
}

func (c *APICollector) RecordRateLimitWait(method, path string, duration float64) {
	c.rateLimitWait.WithLabelValues(method, path).Observe(duration)
}

// RecordCircuitState reports the breaker's current state as an integer
// gauge: 0 closed, 1 open, 2 half-open (api.CircuitState's values).
func (c *APICollector) RecordCircuitState(state int) {
	c.circuitState.WithLabelValues().Set(float64(state))
}
