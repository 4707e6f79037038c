package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/wellness/internal/xcontext"
	"github.com/garrettladley/wellness/internal/xslog"
)

// Logger puts base into the request context, tagged with the request ID when
// one is set. A nil base keeps whatever logger the context already carries.
// RequestID must run first.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if base != nil {
				ctx = xslog.WithLogger(ctx, base)
			}
			if id, ok := xcontext.GetRequestID(ctx); ok {
				ctx = xslog.WithAttrs(ctx, xslog.RequestID(id))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
