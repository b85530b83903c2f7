package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/agpb-backend/internal/observe"
)

// Metrics records request latency by method, matched route and status. It
// must wrap the ServeMux directly so the route pattern set by the mux is
// visible after the handler returns.
func Metrics(m *observe.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.RecordHTTP(r.Context(), r.Method, route, sw.status, time.Since(start))
		})
	}
}
