package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records per-request latency.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Metrics reports each request's duration labelled by its matched route pattern, so path
// parameters do not explode label cardinality. It must wrap the ServeMux that sets r.Pattern.
func Metrics(observer RequestObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
	})
}
