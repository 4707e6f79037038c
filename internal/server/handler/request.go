package handler

import (
	"fmt"
	"math"
	"time"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/service/health"
	"github.com/garrettladley/wellness/internal/storage"
	"github.com/garrettladley/wellness/internal/validator"
)

const (
	maxSleepHours        = 24
	maxBodyFatPercentage = 100
	maxGoalProgress      = 100
)

var (
	_ validator.Validator = (*profileRequest)(nil)
	_ validator.Validator = (*metricRequest)(nil)
)

type profileRequest struct {
	DateOfBirth        *time.Time                    `json:"date_of_birth,omitempty"`
	Gender             storage.Gender                `json:"gender,omitempty"`
	Lifestyle          *analytics.Lifestyle          `json:"lifestyle,omitempty"`
	DietaryPreferences *analytics.DietaryPreferences `json:"dietary_preferences,omitempty"`
	FitnessGoals       []analytics.Goal              `json:"fitness_goals,omitempty"`
	FitnessAssessment  *storage.FitnessAssessment    `json:"fitness_assessment,omitempty"`
	Privacy            storage.Privacy               `json:"privacy"`
	// PhysicalMetrics seeds the metric history on create and is rejected on
	// update.
	PhysicalMetrics []analytics.Metric `json:"physical_metrics,omitempty"`

	now time.Time
}

func (r *profileRequest) Validate() map[string]string {
	var f validator.Fields

	f.Check(r.DateOfBirth == nil || !r.DateOfBirth.After(r.now), "date_of_birth", "must not be in the future")
	f.Check(r.Gender.Valid(), "gender", "must be one of male, female, non-binary, prefer-not-to-say")
	f.Check(r.Privacy.DataVisibility.Valid(), "privacy.data_visibility", "must be one of private, friends, public")

	if l := r.Lifestyle; l != nil {
		lf := f.Nested("lifestyle")
		lf.Check(l.SleepHours == nil || inRange(*l.SleepHours, 0, maxSleepHours),
			"sleep_hours", fmt.Sprintf("must be between 0 and %d", maxSleepHours))
		lf.Check(l.ActivityLevel == "" || l.ActivityLevel.Valid(),
			"activity_level", "must be one of sedentary, light, moderate, active, very-active")
		lf.Check(l.StressLevel == "" || l.StressLevel.Valid(),
			"stress_level", "must be one of low, moderate, high")
		lf.Check(l.AlcoholConsumption == "" || l.AlcoholConsumption.Valid(),
			"alcohol_consumption", "must be one of none, occasional, moderate, heavy")
	}

	if d := r.DietaryPreferences; d != nil {
		f.Check(d.Diet.Valid(), "dietary_preferences.diet", "must be one of omnivore, vegetarian, vegan, pescatarian, keto, paleo, other")
	}

	if a := r.FitnessAssessment; a != nil {
		const ratings = "must be one of poor, below-average, average, above-average, excellent"
		af := f.Nested("fitness_assessment")
		af.Check(a.Date == nil || !a.Date.After(r.now), "date", "must not be in the future")
		af.Check(a.CardioEndurance.Valid(), "cardio_endurance", ratings)
		af.Check(a.MuscularStrength.Valid(), "muscular_strength", ratings)
		af.Check(a.Flexibility.Valid(), "flexibility", ratings)
		af.Check(a.Balance.Valid(), "balance", ratings)
	}

	for i, g := range r.FitnessGoals {
		validateGoal(f.Nested(fmt.Sprintf("fitness_goals[%d]", i)), g)
	}
	for i, m := range r.PhysicalMetrics {
		validateMetric(f.Nested(fmt.Sprintf("physical_metrics[%d]", i)), m)
	}

	return f.Map()
}

func (r *profileRequest) input() health.ProfileInput {
	return health.ProfileInput{
		DateOfBirth:        r.DateOfBirth,
		Gender:             r.Gender,
		Lifestyle:          r.Lifestyle,
		DietaryPreferences: r.DietaryPreferences,
		FitnessGoals:       r.FitnessGoals,
		FitnessAssessment:  r.FitnessAssessment,
		Privacy:            r.Privacy,
	}
}

type metricRequest struct {
	analytics.Metric
}

func (r *metricRequest) Validate() map[string]string {
	var f validator.Fields
	validateMetric(&f, r.Metric)
	return f.Map()
}

func validateGoal(f *validator.Fields, g analytics.Goal) {
	f.Check(g.Type.Valid(), "type", "must be one of weight, strength, endurance, flexibility, overall-health")
	f.Check(g.Status == "" || g.Status.Valid(), "status", "must be one of not-started, in-progress, achieved, abandoned")
	f.Check(g.Priority == "" || g.Priority.Valid(), "priority", "must be one of low, medium, high")
	f.Check(g.Progress == nil || (*g.Progress >= 0 && *g.Progress <= maxGoalProgress),
		"progress", fmt.Sprintf("must be between 0 and %d", maxGoalProgress))
	if g.Target != nil {
		f.Check(finite(g.Target.Value), "target.value", "must be a finite number")
		f.Check(g.Type != analytics.GoalTypeWeight || analytics.MassUnit(g.Target.Unit).Valid(),
			"target.unit", "must be kg or lb")
	}
	f.Check(g.StartingValue == nil || finite(*g.StartingValue), "starting_value", "must be a finite number")
}

func validateMetric(f *validator.Fields, m analytics.Metric) {
	f.Check(m.Height != nil || m.Weight != nil || m.BodyFatPercentage != nil || m.WaistCircumference != nil,
		"metric", "at least one measurement is required")
	if h := m.Height; h != nil {
		f.Check(positive(h.Value), "height.value", "must be greater than zero")
		f.Check(h.Unit.Valid(), "height.unit", "must be cm or in")
	}
	if wt := m.Weight; wt != nil {
		f.Check(positive(wt.Value), "weight.value", "must be greater than zero")
		f.Check(wt.Unit.Valid(), "weight.unit", "must be kg or lb")
	}
	f.Check(m.BodyFatPercentage == nil || inRange(*m.BodyFatPercentage, 0, maxBodyFatPercentage),
		"body_fat_percentage", fmt.Sprintf("must be between 0 and %d", maxBodyFatPercentage))
	if wc := m.WaistCircumference; wc != nil {
		f.Check(positive(wc.Value), "waist_circumference.value", "must be greater than zero")
		f.Check(wc.Unit.Valid(), "waist_circumference.unit", "must be cm or in")
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func inRange(v, lo, hi float64) bool {
	return finite(v) && v >= lo && v <= hi
}
