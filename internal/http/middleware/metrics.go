package middleware

import (
	"net/http"
	"strconv"
	"time"

	"seo_meta_analyzer/internal/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records request counts and latencies per chi route pattern,
// so /api/analyses/{id} is one series regardless of the id.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &metricsStatusRecorder{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(srw, r)

		route := routePattern(r)
		code := strconv.Itoa(srw.statusCode())
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, code).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())

		if srw.statusCode() >= http.StatusBadRequest {
			metrics.HTTPRequestErrorsTotal.WithLabelValues(r.Method, route, code).Inc()
		}
	})
}

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded.
const unmatchedRoute = `unmatched`

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}

type metricsStatusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *metricsStatusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *metricsStatusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
