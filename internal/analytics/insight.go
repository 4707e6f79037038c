package analytics

import "fmt"

type InsightCategory string

const (
	InsightCategoryNutrition     InsightCategory = "nutrition"
	InsightCategorySleep         InsightCategory = "sleep"
	InsightCategoryActivity      InsightCategory = "activity"
	InsightCategoryStress        InsightCategory = "stress"
	InsightCategoryOverallHealth InsightCategory = "overall-health"
)

type Insight struct {
	Category       InsightCategory `json:"category"`
	Insight        string          `json:"insight"`
	Recommendation string          `json:"recommendation"`
}

const (
	minRecommendedSleepHours = 7
	maxRecommendedSleepHours = 9
)

// GenerateInsights produces at most one templated insight per category, in
// the order nutrition, sleep, activity, stress.
func GenerateInsights(r HealthRecord) ([]Insight, error) {
	insights := make([]Insight, 0, 4)

	reading, ok, err := MetricBMI(r.LatestMetric())
	if err != nil {
		return nil, err
	}
	if ok {
		if insight, ok := nutritionInsight(reading.Category); ok {
			insights = append(insights, insight)
		}
	}

	if r.Lifestyle == nil {
		return insights, nil
	}

	if insight, ok := sleepInsight(r.Lifestyle.SleepHours); ok {
		insights = append(insights, insight)
	}
	if insight, ok := activityInsight(r.Lifestyle.ActivityLevel); ok {
		insights = append(insights, insight)
	}
	if insight, ok := stressInsight(r.Lifestyle.StressLevel); ok {
		insights = append(insights, insight)
	}

	return insights, nil
}

func nutritionInsight(category BMICategory) (Insight, bool) {
	switch category {
	case BMICategoryUnderweight:
		return Insight{
			Category:       InsightCategoryNutrition,
			Insight:        "Your BMI indicates you may be underweight.",
			Recommendation: "Consider increasing caloric intake with nutritious foods and consult with a healthcare provider.",
		}, true
	case BMICategoryOverweight, BMICategoryObese:
		return Insight{
			Category:       InsightCategoryNutrition,
			Insight:        fmt.Sprintf("Your BMI indicates you may be %s.", category),
			Recommendation: "Consider a balanced diet and regular exercise routine. Consult with a healthcare provider for personalized advice.",
		}, true
	case BMICategoryNormal:
		return Insight{
			Category:       InsightCategoryNutrition,
			Insight:        "Your BMI is within the normal range.",
			Recommendation: "Maintain your healthy lifestyle with balanced nutrition and regular physical activity.",
		}, true
	default:
		return Insight{}, false
	}
}

// sleepInsight stays silent for the recommended range.
func sleepInsight(hours *float64) (Insight, bool) {
	if hours == nil {
		return Insight{}, false
	}

	switch h := *hours; {
	case h < minRecommendedSleepHours:
		return Insight{
			Category:       InsightCategorySleep,
			Insight:        "You may not be getting enough sleep.",
			Recommendation: "Aim for 7-9 hours of sleep per night for optimal health and recovery.",
		}, true
	case h > maxRecommendedSleepHours:
		return Insight{
			Category:       InsightCategorySleep,
			Insight:        "You may be getting more sleep than necessary.",
			Recommendation: "While sleep is important, excessive sleep can sometimes indicate other health issues. Consider consulting a healthcare provider if you feel fatigued despite long sleep hours.",
		}, true
	default:
		return Insight{}, false
	}
}

func activityInsight(level ActivityLevel) (Insight, bool) {
	if level != ActivityLevelSedentary && level != ActivityLevelLight {
		return Insight{}, false
	}
	return Insight{
		Category:       InsightCategoryActivity,
		Insight:        "Your activity level is on the lower side.",
		Recommendation: "Try to incorporate more movement into your day. Even short walks can have significant health benefits.",
	}, true
}

func stressInsight(level StressLevel) (Insight, bool) {
	if level != StressLevelHigh {
		return Insight{}, false
	}
	return Insight{
		Category:       InsightCategoryStress,
		Insight:        "Your reported stress level is high.",
		Recommendation: "Consider stress-reduction techniques such as meditation, deep breathing, or physical activity. If stress is significantly impacting your life, consider speaking with a mental health professional.",
	}, true
}
