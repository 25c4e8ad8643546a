package middleware

import (
	"net/http"
	"strconv"
	"time"

	"paper-mart/internal/metrics"

	"github.com/gorilla/mux"
)

// Metrics records request counts and latencies. The route template (not the
// raw path) is used as the path label so slugs and ids do not explode the
// label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}

		metrics.HTTPRequestsTotal.
			WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, path).
			Observe(time.Since(start).Seconds())
	})
}
