package middleware

import (
	"net/http"
	"strconv"
	"time"

	"club-booking/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics middleware observes request latency per route. The chi route
// pattern is used instead of the raw path to keep label cardinality bounded.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			m.HTTPDuration.WithLabelValues(
				r.Method,
				route,
				strconv.Itoa(rw.statusCode),
			).Observe(time.Since(start).Seconds())
		})
	}
}
