package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/metrics"
	"github.com/garrettladley/wellness/internal/storage"
	"github.com/garrettladley/wellness/internal/xslog"
)

const (
	kindBMI      = "bmi"
	kindScore    = "wellness_score"
	kindInsights = "insights"
	kindProgress = "progress"
	kindTrends   = "trends"
)

func outcomeOf(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, analytics.ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrNoMetrics), errors.Is(err, ErrBMIUnavailable),
		errors.Is(err, analytics.ErrInsufficientData), errors.Is(err, ErrAIAnalysisDisabled):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}

// BMI computes the BMI of the latest metric.
func (s *Service) BMI(ctx context.Context, userID string) (reading analytics.BMIReading, err error) {
	defer func() { metrics.RecordAnalytics(kindBMI, outcomeOf(err)) }()

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return analytics.BMIReading{}, err
	}
	if len(p.PhysicalMetrics) == 0 {
		return analytics.BMIReading{}, ErrNoMetrics
	}

	r, err := analytics.LatestBMI(p.Record())
	if err != nil {
		return analytics.BMIReading{}, err
	}
	if r == nil {
		return analytics.BMIReading{}, ErrBMIUnavailable
	}
	return *r, nil
}

// RecordWellnessScore computes the current wellness score and appends it to
// the profile's score history.
func (s *Service) RecordWellnessScore(ctx context.Context, userID string) (entry analytics.WellnessScoreEntry, err error) {
	defer func() { metrics.RecordAnalytics(kindScore, outcomeOf(err)) }()

	_, err = s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
		score, err := analytics.CalculateWellnessScore(p.Record())
		if err != nil {
			return err
		}
		entry = analytics.WellnessScoreEntry{
			Date:    s.timestamp(),
			Score:   score.Score,
			Factors: score.Factors,
		}
		p.WellnessScores = append(p.WellnessScores, entry)
		return nil
	})
	if err != nil {
		return analytics.WellnessScoreEntry{}, s.analyticsErr(err, "record wellness score")
	}

	metrics.ObserveWellnessScore(entry.Score)
	xslog.FromContext(ctx).DebugContext(ctx, "recorded wellness score",
		xslog.UserID(userID),
		xslog.Score(entry.Score))
	return entry, nil
}

func (s *Service) WellnessScoreHistory(ctx context.Context, userID string) ([]analytics.WellnessScoreEntry, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.WellnessScores == nil {
		return []analytics.WellnessScoreEntry{}, nil
	}
	return p.WellnessScores, nil
}

// GenerateInsights produces insights for the current profile and appends them
// to the insight history. Users who opted out of AI analysis get
// ErrAIAnalysisDisabled and nothing is stored.
func (s *Service) GenerateInsights(ctx context.Context, userID string) (entries []storage.InsightEntry, err error) {
	defer func() { metrics.RecordAnalytics(kindInsights, outcomeOf(err)) }()

	_, err = s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
		if !p.Privacy.AIAnalysisAllowed() {
			return ErrAIAnalysisDisabled
		}

		insights, err := analytics.GenerateInsights(p.Record())
		if err != nil {
			return err
		}

		now := s.timestamp()
		entries = make([]storage.InsightEntry, 0, len(insights))
		for _, insight := range insights {
			entries = append(entries, storage.InsightEntry{
				Date:           now,
				Category:       insight.Category,
				Insight:        insight.Insight,
				Recommendation: insight.Recommendation,
			})
		}
		p.Insights = append(p.Insights, entries...)
		return nil
	})
	if err != nil {
		return nil, s.analyticsErr(err, "generate insights")
	}

	xslog.FromContext(ctx).DebugContext(ctx, "generated insights",
		xslog.UserID(userID),
		xslog.Count(len(entries)))
	return entries, nil
}

func (s *Service) InsightHistory(ctx context.Context, userID string) ([]storage.InsightEntry, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Insights == nil {
		return []storage.InsightEntry{}, nil
	}
	return p.Insights, nil
}

type ProgressReport struct {
	Goals          []analytics.GoalProgress `json:"goals"`
	WellnessScores []analytics.ScorePoint   `json:"wellness_scores"`
	WeightHistory  []analytics.WeightPoint  `json:"weight_history"`
}

// Progress reports goal progress with score and weight history. It returns
// ErrNoMetrics until a metric is recorded. Statuses derived from computed
// progress are written back to the stored goals; the computed progress itself
// is not, so it keeps following new metrics.
func (s *Service) Progress(ctx context.Context, userID string) (report ProgressReport, err error) {
	defer func() { metrics.RecordAnalytics(kindProgress, outcomeOf(err)) }()

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return ProgressReport{}, err
	}
	if len(p.PhysicalMetrics) == 0 {
		return ProgressReport{}, ErrNoMetrics
	}

	if staleStatuses(p) {
		p, err = s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
			applyDerivedStatuses(p)
			return nil
		})
		if err != nil {
			return ProgressReport{}, mapStoreErr(err, "persist goal status")
		}
	}

	record := p.Record()
	return ProgressReport{
		Goals:          analytics.EvaluateGoals(record.FitnessGoals, record.LatestMetric()),
		WellnessScores: analytics.ScoreHistory(record),
		WeightHistory:  analytics.WeightHistory(record),
	}, nil
}

// Trends compares the earliest and latest metrics of the profile.
func (s *Service) Trends(ctx context.Context, userID string) (trends analytics.Trends, err error) {
	defer func() { metrics.RecordAnalytics(kindTrends, outcomeOf(err)) }()

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return analytics.Trends{}, err
	}
	return analytics.CalculateTrends(p.Record())
}

func staleStatuses(p *storage.Profile) bool {
	for i, gp := range analytics.EvaluateGoals(p.FitnessGoals, p.LatestMetric()) {
		if gp.Derived && p.FitnessGoals[i].Status != gp.Status {
			return true
		}
	}
	return false
}

func applyDerivedStatuses(p *storage.Profile) {
	for i, gp := range analytics.EvaluateGoals(p.FitnessGoals, p.LatestMetric()) {
		if gp.Derived {
			p.FitnessGoals[i].Status = gp.Status
		}
	}
}

func (s *Service) analyticsErr(err error, op string) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidInput), errors.Is(err, ErrAIAnalysisDisabled):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return ErrProfileNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
