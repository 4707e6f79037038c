package handler

import (
	"net/http"

	"github.com/garrettladley/wellness/internal/service/health"
	"github.com/garrettladley/wellness/internal/xhttp"
)

type Analytics struct {
	service *health.Service
}

func NewAnalytics(service *health.Service) *Analytics {
	return &Analytics{service: service}
}

// HandleBMI handles GET /api/analytics/bmi requests.
func (h *Analytics) HandleBMI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reading, err := h.service.BMI(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to calculate BMI")
		return
	}
	xhttp.WriteOK(w, reading)
}

// HandleRecordWellnessScore handles POST /api/analytics/wellness-score
// requests. Each call appends the computed score to the history.
func (h *Analytics) HandleRecordWellnessScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entry, err := h.service.RecordWellnessScore(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to calculate wellness score")
		return
	}
	xhttp.WriteOK(w, entry)
}

// HandleWellnessScoreHistory handles GET /api/analytics/wellness-score/history
// requests.
func (h *Analytics) HandleWellnessScoreHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	history, err := h.service.WellnessScoreHistory(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to fetch wellness score history")
		return
	}
	xhttp.WriteOK(w, history)
}

// HandleGenerateInsights handles POST /api/analytics/insights requests.
func (h *Analytics) HandleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	insights, err := h.service.GenerateInsights(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to generate insights")
		return
	}
	xhttp.WriteOK(w, insights)
}

// HandleInsightHistory handles GET /api/analytics/insights requests.
func (h *Analytics) HandleInsightHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	insights, err := h.service.InsightHistory(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to fetch insights")
		return
	}
	xhttp.WriteOK(w, insights)
}

// HandleProgress handles GET /api/analytics/progress requests.
func (h *Analytics) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.service.Progress(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to fetch progress")
		return
	}
	xhttp.WriteOK(w, report)
}

// HandleTrends handles GET /api/analytics/trends requests.
func (h *Analytics) HandleTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	trends, err := h.service.Trends(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to calculate trends")
		return
	}
	xhttp.WriteOK(w, trends)
}
