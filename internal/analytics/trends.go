package analytics

import (
	"fmt"
	"slices"
	"time"
)

const minTrendMetrics = 2

type WeightChange struct {
	ValueKg    float64 `json:"value_kg"`
	Percentage float64 `json:"percentage"`
}

type BodyFatChange struct {
	PercentagePoints float64 `json:"percentage_points"`
}

type ScoreChange struct {
	Value int `json:"value"`
	// Percentage is nil when the first recorded score is zero.
	Percentage *float64 `json:"percentage,omitempty"`
}

type Trends struct {
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	WeightChange       *WeightChange  `json:"weight_change"`
	BodyFatChange      *BodyFatChange `json:"body_fat_change"`
	WellnessScoreTrend *ScoreChange   `json:"wellness_score_trend"`
	MetricsCount       int            `json:"metrics_count"`
}

// CalculateTrends compares the earliest and the most recent metric by date,
// and the first and last recorded wellness score.
func CalculateTrends(r HealthRecord) (Trends, error) {
	if len(r.PhysicalMetrics) < minTrendMetrics {
		return Trends{}, fmt.Errorf("need at least %d physical metrics, have %d: %w",
			minTrendMetrics, len(r.PhysicalMetrics), ErrInsufficientData)
	}

	sorted := slices.Clone(r.PhysicalMetrics)
	slices.SortStableFunc(sorted, func(a, b Metric) int {
		return a.Date.Compare(b.Date)
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	trends := Trends{
		StartDate:    first.Date,
		EndDate:      last.Date,
		MetricsCount: len(sorted),
	}

	if first.Weight != nil && last.Weight != nil {
		firstKg, lastKg := first.Weight.Kilograms(), last.Weight.Kilograms()
		if err := checkPositive("weight_kg", firstKg); err != nil {
			return Trends{}, err
		}
		trends.WeightChange = &WeightChange{
			ValueKg:    lastKg - firstKg,
			Percentage: (lastKg - firstKg) / firstKg * 100,
		}
	}

	if first.BodyFatPercentage != nil && last.BodyFatPercentage != nil {
		trends.BodyFatChange = &BodyFatChange{
			PercentagePoints: *last.BodyFatPercentage - *first.BodyFatPercentage,
		}
	}

	if n := len(r.WellnessScores); n >= 2 {
		firstScore, lastScore := r.WellnessScores[0].Score, r.WellnessScores[n-1].Score
		change := &ScoreChange{Value: lastScore - firstScore}
		if firstScore != 0 {
			pct := float64(lastScore-firstScore) / float64(firstScore) * 100
			change.Percentage = &pct
		}
		trends.WellnessScoreTrend = change
	}

	return trends, nil
}

type WeightPoint struct {
	Date     time.Time `json:"date"`
	Weight   Mass      `json:"weight"`
	WeightKg float64   `json:"weight_kg"`
}

// WeightHistory lists every metric that recorded a weight, in record order.
func WeightHistory(r HealthRecord) []WeightPoint {
	points := make([]WeightPoint, 0, len(r.PhysicalMetrics))
	for _, m := range r.PhysicalMetrics {
		if m.Weight == nil || m.Weight.Value == 0 {
			continue
		}
		points = append(points, WeightPoint{
			Date:     m.Date,
			Weight:   *m.Weight,
			WeightKg: m.Weight.Kilograms(),
		})
	}
	return points
}

type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

func ScoreHistory(r HealthRecord) []ScorePoint {
	points := make([]ScorePoint, 0, len(r.WellnessScores))
	for _, s := range r.WellnessScores {
		points = append(points, ScorePoint{Date: s.Date, Score: s.Score})
	}
	return points
}
