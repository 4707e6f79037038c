package analytics

const (
	maxFactorScore = 20

	// unrecognizedScore is awarded when a source value is present but falls
	// outside the known categories.
	unrecognizedScore = 10
)

type WellnessScore struct {
	Score   int             `json:"score"`
	Factors WellnessFactors `json:"factors"`
}

// CalculateWellnessScore sums five independently capped sub-scores into a
// 0-100 total. Absent source data contributes zero.
func CalculateWellnessScore(r HealthRecord) (WellnessScore, error) {
	physical, err := physicalScore(r.LatestMetric())
	if err != nil {
		return WellnessScore{}, err
	}

	factors := WellnessFactors{
		Physical:  physical,
		Nutrition: nutritionScore(r.DietaryPreferences),
	}
	if r.Lifestyle != nil {
		factors.Activity = activityScore(r.Lifestyle.ActivityLevel)
		factors.Sleep = sleepScore(r.Lifestyle.SleepHours)
		factors.Stress = stressScore(r.Lifestyle.StressLevel)
	}

	return WellnessScore{
		Score:   factors.Total(),
		Factors: factors,
	}, nil
}

func physicalScore(m *Metric) (int, error) {
	reading, ok, err := MetricBMI(m)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	switch reading.Category {
	case BMICategoryNormal:
		return 20, nil
	case BMICategoryUnderweight, BMICategoryOverweight:
		return 15, nil
	case BMICategoryObese:
		return 10, nil
	default:
		return unrecognizedScore, nil
	}
}

func nutritionScore(p *DietaryPreferences) int {
	if p == nil {
		return 0
	}

	score := 15
	if p.Diet == DietVegan || p.Diet == DietVegetarian {
		score += 3
	}
	return min(score, maxFactorScore)
}

func activityScore(level ActivityLevel) int {
	switch level {
	case ActivityLevelVeryActive:
		return 20
	case ActivityLevelActive:
		return 18
	case ActivityLevelModerate:
		return 15
	case ActivityLevelLight:
		return 10
	case ActivityLevelSedentary:
		return 5
	default:
		return unrecognizedScore
	}
}

func sleepScore(hours *float64) int {
	if hours == nil {
		return 0
	}

	h := *hours
	switch {
	case h >= 7 && h <= 9:
		return 20
	case h >= 6 && h < 7:
		return 15
	case h > 9:
		return 15
	default:
		return 10
	}
}

func stressScore(level StressLevel) int {
	switch level {
	case StressLevelLow:
		return 20
	case StressLevelModerate:
		return 15
	case StressLevelHigh:
		return 5
	default:
		return unrecognizedScore
	}
}
