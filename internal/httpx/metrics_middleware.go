package httpx

import (
	"net/http"
	"time"

	"playerapi/internal/platform/metrics"
)

// MetricsMiddleware records request counts and latency by route pattern.
// It must wrap the ServeMux directly: the mux sets r.Pattern on the request
// it receives, and any middleware in between would hand it a copy.
func MetricsMiddleware(m *metrics.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}
