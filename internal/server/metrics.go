package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "console",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by the form service.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "console",
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the form service.",
	}, []string{"route", "method", "status"})
)

// MetricsMiddleware records request count and duration per chi route pattern.
// The pattern (e.g. /v1/forms/{formID}/render) is used instead of the raw
// path so label cardinality stays bounded by the route table.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		labels := []string{route, r.Method, strconv.Itoa(ww.Status())}
		requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(labels...).Inc()
	})
}
