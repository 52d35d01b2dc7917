/*
metrics.go - Prometheus instrumentation for the HTTP surface

PURPOSE:
  Request counters and latency histograms, labeled by method, chi route
  pattern and status. Scraped from GET /metrics (see server.go).
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// metricsMiddleware records one observation per request, using the chi
// route pattern (not the raw path) so label cardinality stays bounded.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		httpReqTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(ww.Status())).Inc()
		httpLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}
