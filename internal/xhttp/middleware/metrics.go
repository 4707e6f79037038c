package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/garrettladley/wellness/internal/metrics"
)

// Metrics records request count, latency and in-flight requests per route.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		done := metrics.RequestStarted()
		start := time.Now()

		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		done(strings.ToUpper(r.Method), canonicalRoute(r.URL.Path), wrapped.status, time.Since(start).Seconds())
	})
}

// canonicalRoute collapses path parameters so label cardinality stays bounded.
func canonicalRoute(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}

	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) > 4:
		return "other"
	case len(parts) == 4 && parts[0] == "api" && parts[1] == "health-profile" && parts[2] == "metrics" && parts[3] != "latest":
		return "/api/health-profile/metrics/{id}"
	case len(parts) >= 2 && parts[0] == "api":
		return "/" + strings.Join(parts, "/")
	case len(parts) == 1:
		return "/" + parts[0]
	default:
		return "other"
	}
}
