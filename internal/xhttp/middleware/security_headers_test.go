package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garrettladley/wellness/internal/xhttp"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      SecurityConfig
		wantHSTS string
	}{
		{name: "without hsts"},
		{name: "with hsts", cfg: SecurityConfig{HSTSMaxAge: 365 * 24 * time.Hour}, wantHSTS: "max-age=31536000; includeSubDomains"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := SecurityHeaders(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/health-profile", nil))

			for k, want := range map[string]string{
				xhttp.XContentTypeOpts: "nosniff",
				xhttp.XFrameOpts:       "DENY",
				xhttp.CacheControl:     "no-store",
				xhttp.HSTS:             tt.wantHSTS,
			} {
				if got := rec.Header().Get(k); got != want {
					t.Errorf("%s = %q, want %q", k, got, want)
				}
			}
		})
	}
}
