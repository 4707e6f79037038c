package analytics

import "time"

type ActivityLevel string

const (
	ActivityLevelSedentary  ActivityLevel = "sedentary"
	ActivityLevelLight      ActivityLevel = "light"
	ActivityLevelModerate   ActivityLevel = "moderate"
	ActivityLevelActive     ActivityLevel = "active"
	ActivityLevelVeryActive ActivityLevel = "very-active"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivityLevelSedentary, ActivityLevelLight, ActivityLevelModerate, ActivityLevelActive, ActivityLevelVeryActive:
		return true
	default:
		return false
	}
}

type StressLevel string

const (
	StressLevelLow      StressLevel = "low"
	StressLevelModerate StressLevel = "moderate"
	StressLevelHigh     StressLevel = "high"
)

func (s StressLevel) Valid() bool {
	switch s {
	case StressLevelLow, StressLevelModerate, StressLevelHigh:
		return true
	default:
		return false
	}
}

type AlcoholConsumption string

const (
	AlcoholConsumptionNone       AlcoholConsumption = "none"
	AlcoholConsumptionOccasional AlcoholConsumption = "occasional"
	AlcoholConsumptionModerate   AlcoholConsumption = "moderate"
	AlcoholConsumptionHeavy      AlcoholConsumption = "heavy"
)

func (a AlcoholConsumption) Valid() bool {
	switch a {
	case AlcoholConsumptionNone, AlcoholConsumptionOccasional, AlcoholConsumptionModerate, AlcoholConsumptionHeavy:
		return true
	default:
		return false
	}
}

type Diet string

const (
	DietOmnivore    Diet = "omnivore"
	DietVegetarian  Diet = "vegetarian"
	DietVegan       Diet = "vegan"
	DietPescatarian Diet = "pescatarian"
	DietKeto        Diet = "keto"
	DietPaleo       Diet = "paleo"
	DietOther       Diet = "other"
)

func (d Diet) Valid() bool {
	switch d {
	case DietOmnivore, DietVegetarian, DietVegan, DietPescatarian, DietKeto, DietPaleo, DietOther:
		return true
	default:
		return false
	}
}

type GoalType string

const (
	GoalTypeWeight        GoalType = "weight"
	GoalTypeStrength      GoalType = "strength"
	GoalTypeEndurance     GoalType = "endurance"
	GoalTypeFlexibility   GoalType = "flexibility"
	GoalTypeOverallHealth GoalType = "overall-health"
)

func (g GoalType) Valid() bool {
	switch g {
	case GoalTypeWeight, GoalTypeStrength, GoalTypeEndurance, GoalTypeFlexibility, GoalTypeOverallHealth:
		return true
	default:
		return false
	}
}

type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not-started"
	GoalStatusInProgress GoalStatus = "in-progress"
	GoalStatusAchieved   GoalStatus = "achieved"
	GoalStatusAbandoned  GoalStatus = "abandoned"
)

func (g GoalStatus) Valid() bool {
	switch g {
	case GoalStatusNotStarted, GoalStatusInProgress, GoalStatusAchieved, GoalStatusAbandoned:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Metric is one physical measurement snapshot. Only the fields that were
// measured are set.
type Metric struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Height             *Length   `json:"height,omitempty"`
	Weight             *Mass     `json:"weight,omitempty"`
	BodyFatPercentage  *float64  `json:"body_fat_percentage,omitempty"`
	WaistCircumference *Length   `json:"waist_circumference,omitempty"`
}

type Lifestyle struct {
	SleepHours         *float64           `json:"sleep_hours,omitempty"`
	ActivityLevel      ActivityLevel      `json:"activity_level,omitempty"`
	StressLevel        StressLevel        `json:"stress_level,omitempty"`
	Smoker             bool               `json:"smoker"`
	AlcoholConsumption AlcoholConsumption `json:"alcohol_consumption,omitempty"`
}

type DietaryPreferences struct {
	Diet         Diet     `json:"diet"`
	Allergies    []string `json:"allergies,omitempty"`
	Intolerances []string `json:"intolerances,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
}

type Target struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

type Goal struct {
	ID       string     `json:"id"`
	Type     GoalType   `json:"type"`
	Target   *Target    `json:"target,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Priority Priority   `json:"priority,omitempty"`
	Status   GoalStatus `json:"status"`
	// Progress is an explicitly recorded percentage (0-100). Once set it is
	// never recomputed.
	Progress *int `json:"progress,omitempty"`
	// StartingValue is the recorded baseline in the target's unit. When nil,
	// weight goals fall back to the current weight plus a fixed offset.
	StartingValue *float64 `json:"starting_value,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type WellnessFactors struct {
	Physical  int `json:"physical"`
	Nutrition int `json:"nutrition"`
	Activity  int `json:"activity"`
	Sleep     int `json:"sleep"`
	Stress    int `json:"stress"`
}

func (f WellnessFactors) Total() int {
	return f.Physical + f.Nutrition + f.Activity + f.Sleep + f.Stress
}

type WellnessScoreEntry struct {
	Date    time.Time       `json:"date"`
	Score   int             `json:"score"`
	Factors WellnessFactors `json:"factors"`
}

// HealthRecord is the analytics input: a caller-supplied snapshot of a user's
// stored health data. Slices are in insertion order, which is chronological.
type HealthRecord struct {
	PhysicalMetrics    []Metric             `json:"physical_metrics"`
	Lifestyle          *Lifestyle           `json:"lifestyle,omitempty"`
	DietaryPreferences *DietaryPreferences  `json:"dietary_preferences,omitempty"`
	FitnessGoals       []Goal               `json:"fitness_goals"`
	WellnessScores     []WellnessScoreEntry `json:"wellness_scores"`
}

// LatestMetric returns the most recently appended metric, or nil.
func (r HealthRecord) LatestMetric() *Metric {
	if len(r.PhysicalMetrics) == 0 {
		return nil
	}
	return &r.PhysicalMetrics[len(r.PhysicalMetrics)-1]
}
