package handler

import (
	"errors"
	"net/http"

	"github.com/garrettladley/wellness/internal/service/health"
	"github.com/garrettladley/wellness/internal/validator"
	"github.com/garrettladley/wellness/internal/xerrors"
	"github.com/garrettladley/wellness/internal/xhttp"
	"github.com/garrettladley/wellness/internal/xslog"
)

const metricsPath = profilePath + "/metrics"

type Metrics struct {
	service *health.Service
}

func NewMetrics(service *health.Service) *Metrics {
	return &Metrics{service: service}
}

func decodeMetric(w http.ResponseWriter, r *http.Request) (*metricRequest, bool) {
	var req metricRequest
	if err := xhttp.DecodeJSON(w, r, &req); err != nil {
		xerrors.WriteError(r.Context(), w, xerrors.BadRequest(xerrors.WithMessage("invalid JSON body"), xerrors.WithCause(err)))
		return nil, false
	}
	if verr := validator.Validate(&req); verr != nil {
		xerrors.WriteError(r.Context(), w, verr)
		return nil, false
	}
	return &req, true
}

// HandleAdd handles POST /api/health-profile/metrics requests.
func (h *Metrics) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := decodeMetric(w, r)
	if !ok {
		return
	}

	metric, err := h.service.AddMetric(ctx, userID, req.Metric)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to add metric")
		return
	}

	xslog.FromContext(ctx).DebugContext(ctx, "added metric",
		xslog.UserID(userID),
		xslog.MetricID(metric.ID))

	xhttp.WriteCreated(w, metricsPath+"/"+metric.ID, metric)
}

// HandleList handles GET /api/health-profile/metrics requests.
func (h *Metrics) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	metrics, err := h.service.ListMetrics(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to list metrics")
		return
	}
	xhttp.WriteOK(w, metrics)
}

// HandleLatest handles GET /api/health-profile/metrics/latest requests.
func (h *Metrics) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	metric, err := h.service.LatestMetric(ctx, userID)
	if errors.Is(err, health.ErrNoMetrics) {
		xerrors.WriteError(ctx, w, xerrors.NotFound(xerrors.WithCode("no_metrics"), xerrors.WithMessage("no physical metrics recorded")))
		return
	}
	if err != nil {
		writeServiceError(ctx, w, err, "failed to fetch latest metric")
		return
	}
	xhttp.WriteOK(w, metric)
}

// HandleGet handles GET /api/health-profile/metrics/{id} requests.
func (h *Metrics) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	metric, err := h.service.GetMetric(ctx, userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err, "failed to fetch metric")
		return
	}
	xhttp.WriteOK(w, metric)
}

// HandleUpdate handles PUT /api/health-profile/metrics/{id} requests.
func (h *Metrics) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := decodeMetric(w, r)
	if !ok {
		return
	}

	metric, err := h.service.UpdateMetric(ctx, userID, r.PathValue("id"), req.Metric)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to update metric")
		return
	}
	xhttp.WriteOK(w, metric)
}

// HandleDelete handles DELETE /api/health-profile/metrics/{id} requests.
func (h *Metrics) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMetric(ctx, userID, r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err, "failed to delete metric")
		return
	}
	xhttp.WriteNoContent(w)
}
