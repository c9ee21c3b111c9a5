// SPDX-License-Identifier: MIT

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/internal/apperrors"
)

// Outcome label values besides the calc error kinds.
const (
	outcomeSuccess = "success"
	outcomeTimeout = "timeout"
	outcomeError   = "error"
)

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matcalc_active_requests",
		Help: "Current number of active requests",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matcalc_requests_total",
		Help: "Total number of requests received, by path",
	}, []string{"path"})
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matcalc_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
	calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matcalc_calculations_total",
		Help: "Calculations by operation and outcome (success, timeout, error or the error kind)",
	}, []string{"operation", "outcome"})
	calculationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matcalc_calculation_duration_seconds",
		Help:    "Calculation latency by operation",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"operation"})
	eigenNotConverged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matcalc_eigen_nonconverged_total",
		Help: "Eigen calculations that hit the iteration bound and returned approximate values",
	})
)

// Metrics exposes the Prometheus collectors of the server.
type Metrics struct {
	handler http.Handler
}

// NewMetrics creates a Metrics instance serving the default registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementActiveRequests increments the active gauge and the per-path counter.
func (m *Metrics) IncrementActiveRequests(path string) {
	activeRequests.Inc()
	totalRequests.WithLabelValues(path).Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// RateLimited counts a rejected request. Safe on a nil receiver.
func (m *Metrics) RateLimited() {
	rateLimited.Inc()
}

// ObserveCalculation records one finished calculation; it is installed as
// the service observer.
func (m *Metrics) ObserveCalculation(op calc.Operation, d time.Duration, res *calc.Result, err error) {
	outcome := outcomeSuccess
	switch {
	case err == nil:
	case apperrors.IsContextError(err):
		outcome = outcomeTimeout
	case calc.KindOf(err) != "":
		outcome = string(calc.KindOf(err))
	default:
		outcome = outcomeError
	}
	calculations.WithLabelValues(string(op), outcome).Inc()
	calculationDuration.WithLabelValues(string(op)).Observe(d.Seconds())
	if res != nil && res.Approximate {
		eigenNotConverged.Inc()
	}
}

// WritePrometheus serves the metrics in Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// handleMetrics is the HTTP handler for the /metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.WritePrometheus(w, r)
}

// metricsMiddleware tracks active and total requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests(r.URL.Path)
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}
