package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/wellness/internal/xcontext"
	"github.com/garrettladley/wellness/internal/xhttp"
)

type RequestIDMiddleware struct {
	IDFunc func(*http.Request) string
}

func newRequestID(_ *http.Request) string {
	return uuid.New().String()
}

type RequestIDOption func(*RequestIDMiddleware)

func WithIDFunc(fn func(*http.Request) string) RequestIDOption {
	return func(m *RequestIDMiddleware) { m.IDFunc = fn }
}

// WithIncomingRequestID keeps a caller-supplied X-Request-ID when it is a
// valid UUID, so a request can be traced across services.
func WithIncomingRequestID() RequestIDOption {
	return func(m *RequestIDMiddleware) {
		fallback := m.IDFunc
		m.IDFunc = func(r *http.Request) string {
			if id := r.Header.Get(xhttp.XRequestID); id != "" {
				if parsed, err := uuid.Parse(id); err == nil {
					return parsed.String()
				}
			}
			return fallback(r)
		}
	}
}

func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	middleware := &RequestIDMiddleware{IDFunc: newRequestID}

	for _, opt := range opts {
		opt(middleware)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := middleware.IDFunc(r)
			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
