package handler

import (
	"net/http"

	"github.com/garrettladley/wellness/internal/service/health"
)

// APIRoutes registers the authenticated profile and analytics endpoints.
func APIRoutes(service *health.Service) *http.ServeMux {
	profiles := NewProfiles(service)
	metrics := NewMetrics(service)
	analytics := NewAnalytics(service)

	mux := http.NewServeMux()

	mux.HandleFunc("POST "+profilePath, profiles.HandleCreate)
	mux.HandleFunc("GET "+profilePath, profiles.HandleGet)
	mux.HandleFunc("PUT "+profilePath, profiles.HandleUpdate)
	mux.HandleFunc("DELETE "+profilePath, profiles.HandleDelete)

	mux.HandleFunc("POST "+metricsPath, metrics.HandleAdd)
	mux.HandleFunc("GET "+metricsPath, metrics.HandleList)
	mux.HandleFunc("GET "+metricsPath+"/latest", metrics.HandleLatest)
	mux.HandleFunc("GET "+metricsPath+"/{id}", metrics.HandleGet)
	mux.HandleFunc("PUT "+metricsPath+"/{id}", metrics.HandleUpdate)
	mux.HandleFunc("DELETE "+metricsPath+"/{id}", metrics.HandleDelete)

	mux.HandleFunc("GET /api/analytics/bmi", analytics.HandleBMI)
	mux.HandleFunc("POST /api/analytics/wellness-score", analytics.HandleRecordWellnessScore)
	mux.HandleFunc("GET /api/analytics/wellness-score/history", analytics.HandleWellnessScoreHistory)
	mux.HandleFunc("POST /api/analytics/insights", analytics.HandleGenerateInsights)
	mux.HandleFunc("GET /api/analytics/insights", analytics.HandleInsightHistory)
	mux.HandleFunc("GET /api/analytics/progress", analytics.HandleProgress)
	mux.HandleFunc("GET /api/analytics/trends", analytics.HandleTrends)

	return mux
}
