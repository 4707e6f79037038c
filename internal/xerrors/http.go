package xerrors

import (
	"context"
	"log/slog"
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/wellness/internal/xcontext"
	"github.com/garrettladley/wellness/internal/xhttp"
	"github.com/garrettladley/wellness/internal/xslog"
)

type errorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// WriteError logs err and writes it as JSON. Errors that are not *Error are
// reported as 500 without exposing their text.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = Internal(WithCause(err))
	}

	logError(ctx, appErr)

	h := w.Header()
	xhttp.SetHeaderContentTypeApplicationJSON(w)
	if appErr.RetryAfter > 0 {
		xhttp.SetHeaderRetryAfter(w, appErr.RetryAfter)
	}
	if appErr.Reason != "" {
		h.Set(xhttp.XRateLimitReason, appErr.Reason)
	}
	w.WriteHeader(appErr.StatusCode)

	resp := errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}
	resp.RequestID, _ = xcontext.GetRequestID(ctx)

	_ = go_json.NewEncoder(w).Encode(resp)
}

func logError(ctx context.Context, err *Error) {
	attrs := []slog.Attr{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("code", err.Code),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}
	if err.Reason != "" {
		attrs = append(attrs, slog.String("reason", err.Reason), slog.Duration("retry_after", err.RetryAfter))
	}
	if len(err.Fields) > 0 {
		attrs = append(attrs, slog.Any("fields", err.Fields))
	}

	level, msg := slog.LevelInfo, "error response"
	switch {
	case err.StatusCode >= http.StatusInternalServerError:
		level, msg = slog.LevelError, "server error"
	case err.StatusCode >= http.StatusBadRequest:
		level, msg = slog.LevelWarn, "client error"
	}
	xslog.FromContext(ctx).LogAttrs(ctx, level, msg, attrs...)
}
