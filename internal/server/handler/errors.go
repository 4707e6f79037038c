package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/service/health"
	"github.com/garrettladley/wellness/internal/xcontext"
	"github.com/garrettladley/wellness/internal/xerrors"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// checked in order; the first match wins
var serviceErrors = []errorMapping{
	{health.ErrProfileNotFound, http.StatusNotFound, "profile_not_found", "health profile not found"},
	{health.ErrMetricNotFound, http.StatusNotFound, "metric_not_found", "metric not found"},
	{health.ErrProfileExists, http.StatusConflict, "profile_exists", "health profile already exists"},
	{health.ErrAIAnalysisDisabled, http.StatusForbidden, "ai_analysis_disabled", "AI analysis is disabled in your privacy settings"},
	{health.ErrNoMetrics, http.StatusBadRequest, "no_metrics", "no physical metrics recorded"},
	{health.ErrBMIUnavailable, http.StatusBadRequest, "bmi_unavailable", "height and weight are required to calculate BMI"},
	{analytics.ErrInsufficientData, http.StatusBadRequest, "insufficient_data", "at least two physical metrics are required"},
}

// writeServiceError maps health service and engine errors onto HTTP errors.
// Anything unrecognized is a 500 reported with fallback as its message.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	xerrors.WriteError(ctx, w, toHTTPError(err, fallback))
}

func toHTTPError(err error, fallback string) *xerrors.Error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return xerrors.New(m.status, xerrors.WithCode(m.code), xerrors.WithMessage(m.message))
		}
	}
	var invalid *analytics.InvalidInputError
	if errors.As(err, &invalid) {
		return xerrors.BadRequest(xerrors.WithCode("invalid_input"), xerrors.WithMessage(invalid.Error()))
	}
	return xerrors.Internal(xerrors.WithMessage(fallback), xerrors.WithCause(err))
}

// requireUser returns the authenticated user, writing a 401 when there is none.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := xcontext.GetUserID(r.Context())
	if !ok {
		xerrors.WriteError(r.Context(), w, xerrors.Unauthorized(xerrors.WithMessage("missing user context")))
		return "", false
	}
	return userID, true
}
