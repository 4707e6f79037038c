package middleware

import (
	"errors"
	"net/http"

	"github.com/garrettladley/wellness/internal/metrics"
	"github.com/garrettladley/wellness/internal/xerrors"
	"github.com/garrettladley/wellness/internal/xslog"
)

// Recovery turns a handler panic into a logged 500. http.ErrAbortHandler is
// re-raised so net/http can abort the connection quietly.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}

			metrics.RecordPanic()
			ctx := r.Context()
			xslog.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				xslog.RequestGroup(r),
				xslog.ErrorGroupWithStack(v),
			)

			w.Header().Set("Connection", "close")
			xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithCode("panic")))
		}()
		next.ServeHTTP(w, r)
	})
}
