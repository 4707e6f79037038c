package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/garrettladley/wellness/internal/xhttp"
)

type SecurityConfig struct {
	// HSTSMaxAge enables Strict-Transport-Security when positive. Leave it
	// zero when the server is not behind TLS.
	HSTSMaxAge time.Duration
}

// SecurityHeaders sets response hardening headers. Responses are marked
// no-store because they carry personal health data.
func SecurityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	headers := map[string]string{
		xhttp.XContentTypeOpts: "nosniff",
		xhttp.XFrameOpts:       "DENY",
		xhttp.XXSSProtection:   "1; mode=block",
		xhttp.ReferrerPolicy:   "strict-origin-when-cross-origin",
		xhttp.CacheControl:     "no-store",
	}
	if cfg.HSTSMaxAge > 0 {
		headers[xhttp.HSTS] = "max-age=" + strconv.Itoa(int(cfg.HSTSMaxAge.Seconds())) + "; includeSubDomains"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
