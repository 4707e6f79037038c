package health

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/storage"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T) (*Service, *storage.MemoryStore) {
	t.Helper()

	var seq atomic.Int64
	store := storage.NewMemoryStore()
	svc := NewService(store,
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }),
	)
	return svc, store
}

func healthyInput() ProfileInput {
	return ProfileInput{
		Gender: storage.GenderFemale,
		Lifestyle: &analytics.Lifestyle{
			SleepHours:    ptr(8.0),
			ActivityLevel: analytics.ActivityLevelVeryActive,
			StressLevel:   analytics.StressLevelLow,
		},
		DietaryPreferences: &analytics.DietaryPreferences{Diet: analytics.DietVegan},
		FitnessGoals: []analytics.Goal{
			{Type: analytics.GoalTypeWeight, Target: &analytics.Target{Value: 65, Unit: "kg"}},
		},
	}
}

func bodyMetric(weightKg, heightCm float64) analytics.Metric {
	return analytics.Metric{
		Weight: &analytics.Mass{Value: weightKg, Unit: analytics.MassUnitKilograms},
		Height: &analytics.Length{Value: heightCm, Unit: analytics.LengthUnitCentimeters},
	}
}

func TestProfileLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := t.Context()

	if _, err := svc.GetProfile(ctx, "u1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("GetProfile() error = %v, want ErrProfileNotFound", err)
	}

	created, err := svc.CreateProfile(ctx, "u1", healthyInput(), []analytics.Metric{bodyMetric(70, 175)})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if len(created.FitnessGoals) != 1 || created.FitnessGoals[0].ID == "" {
		t.Fatalf("CreateProfile() goals = %+v, want one goal with an id", created.FitnessGoals)
	}
	if got := created.FitnessGoals[0].Status; got != analytics.GoalStatusNotStarted {
		t.Errorf("CreateProfile() goal status = %q, want %q", got, analytics.GoalStatusNotStarted)
	}
	if len(created.PhysicalMetrics) != 1 || !created.PhysicalMetrics[0].Date.Equal(fixedNow) {
		t.Errorf("CreateProfile() metrics = %+v, want one metric dated now", created.PhysicalMetrics)
	}

	if _, err := svc.CreateProfile(ctx, "u1", ProfileInput{}, nil); !errors.Is(err, ErrProfileExists) {
		t.Errorf("CreateProfile() duplicate error = %v, want ErrProfileExists", err)
	}

	in := healthyInput()
	in.Gender = storage.GenderNonBinary
	in.FitnessGoals = nil
	updated, err := svc.UpdateProfile(ctx, "u1", in)
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Gender != storage.GenderNonBinary || len(updated.FitnessGoals) != 0 {
		t.Errorf("UpdateProfile() = %+v, want replaced editable fields", updated)
	}
	if len(updated.PhysicalMetrics) != 1 {
		t.Errorf("UpdateProfile() dropped metrics, got %d", len(updated.PhysicalMetrics))
	}

	if err := svc.DeleteProfile(ctx, "u1"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if err := svc.DeleteProfile(ctx, "u1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("DeleteProfile() twice error = %v, want ErrProfileNotFound", err)
	}
	if _, err := svc.UpdateProfile(ctx, "u1", in); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("UpdateProfile() after delete error = %v, want ErrProfileNotFound", err)
	}
}

func TestMetricOperations(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := t.Context()

	if _, err := svc.AddMetric(ctx, "missing", bodyMetric(70, 175)); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("AddMetric() without profile error = %v, want ErrProfileNotFound", err)
	}
	if _, err := svc.CreateProfile(ctx, "u1", ProfileInput{}, nil); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if _, err := svc.LatestMetric(ctx, "u1"); !errors.Is(err, ErrNoMetrics) {
		t.Errorf("LatestMetric() on empty history error = %v, want ErrNoMetrics", err)
	}
	list, err := svc.ListMetrics(ctx, "u1")
	if err != nil || list == nil || len(list) != 0 {
		t.Errorf("ListMetrics() = %v, %v, want empty non-nil slice", list, err)
	}

	older := bodyMetric(72, 175)
	older.Date = fixedNow.AddDate(0, 0, 7)
	first, err := svc.AddMetric(ctx, "u1", older)
	if err != nil {
		t.Fatalf("AddMetric() error = %v", err)
	}
	second, err := svc.AddMetric(ctx, "u1", analytics.Metric{ID: "client-id", BodyFatPercentage: ptr(21.5)})
	if err != nil {
		t.Fatalf("AddMetric() error = %v", err)
	}
	if second.ID == "client-id" || second.ID == "" {
		t.Errorf("AddMetric() id = %q, want a server assigned id", second.ID)
	}
	if !second.Date.Equal(fixedNow) {
		t.Errorf("AddMetric() date = %v, want %v", second.Date, fixedNow)
	}

	latest, err := svc.LatestMetric(ctx, "u1")
	if err != nil {
		t.Fatalf("LatestMetric() error = %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("LatestMetric() = %q, want last appended %q", latest.ID, second.ID)
	}

	got, err := svc.GetMetric(ctx, "u1", first.ID)
	if err != nil {
		t.Fatalf("GetMetric() error = %v", err)
	}
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("GetMetric() mismatch (-want +got):\n%s", diff)
	}
	if _, err := svc.GetMetric(ctx, "u1", "nope"); !errors.Is(err, ErrMetricNotFound) {
		t.Errorf("GetMetric() unknown error = %v, want ErrMetricNotFound", err)
	}

	replaced, err := svc.UpdateMetric(ctx, "u1", first.ID, bodyMetric(71, 175))
	if err != nil {
		t.Fatalf("UpdateMetric() error = %v", err)
	}
	if replaced.ID != first.ID || !replaced.Date.Equal(first.Date) {
		t.Errorf("UpdateMetric() = %+v, want id and date of %+v kept", replaced, first)
	}
	if replaced.Weight == nil || replaced.Weight.Value != 71 {
		t.Errorf("UpdateMetric() weight = %+v, want 71", replaced.Weight)
	}
	if _, err := svc.UpdateMetric(ctx, "u1", "nope", bodyMetric(71, 175)); !errors.Is(err, ErrMetricNotFound) {
		t.Errorf("UpdateMetric() unknown error = %v, want ErrMetricNotFound", err)
	}

	if err := svc.DeleteMetric(ctx, "u1", first.ID); err != nil {
		t.Fatalf("DeleteMetric() error = %v", err)
	}
	if err := svc.DeleteMetric(ctx, "u1", first.ID); !errors.Is(err, ErrMetricNotFound) {
		t.Errorf("DeleteMetric() twice error = %v, want ErrMetricNotFound", err)
	}
	list, err = svc.ListMetrics(ctx, "u1")
	if err != nil {
		t.Fatalf("ListMetrics() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != second.ID {
		t.Errorf("ListMetrics() = %+v, want only %q", list, second.ID)
	}
}

func TestBMI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		metrics []analytics.Metric
		want    analytics.BMIReading
		wantErr error
	}{
		{
			name:    "no metrics",
			wantErr: ErrNoMetrics,
		},
		{
			name:    "latest metric without height",
			metrics: []analytics.Metric{bodyMetric(70, 175), {Weight: &analytics.Mass{Value: 70}}},
			wantErr: ErrBMIUnavailable,
		},
		{
			name:    "non-positive weight",
			metrics: []analytics.Metric{bodyMetric(0, 175)},
			wantErr: analytics.ErrInvalidInput,
		},
		{
			name:    "normal",
			metrics: []analytics.Metric{bodyMetric(70, 175)},
			want: analytics.BMIReading{
				BMIResult: analytics.BMIResult{Value: 22.9, Category: analytics.BMICategoryNormal},
				HeightCm:  175,
				WeightKg:  70,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestService(t)
			if _, err := svc.CreateProfile(t.Context(), "u1", ProfileInput{}, tt.metrics); err != nil {
				t.Fatalf("CreateProfile() error = %v", err)
			}

			got, err := svc.BMI(t.Context(), "u1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BMI() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BMI() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BMI() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecordWellnessScore(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := t.Context()

	if _, err := svc.RecordWellnessScore(ctx, "u1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("RecordWellnessScore() without profile error = %v, want ErrProfileNotFound", err)
	}
	if _, err := svc.CreateProfile(ctx, "u1", healthyInput(), []analytics.Metric{bodyMetric(70, 175)}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	entry, err := svc.RecordWellnessScore(ctx, "u1")
	if err != nil {
		t.Fatalf("RecordWellnessScore() error = %v", err)
	}
	want := analytics.WellnessScoreEntry{
		Date:  fixedNow,
		Score: 98,
		Factors: analytics.WellnessFactors{
			Physical:  20,
			Nutrition: 18,
			Activity:  20,
			Sleep:     20,
			Stress:    20,
		},
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("RecordWellnessScore() mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.RecordWellnessScore(ctx, "u1"); err != nil {
		t.Fatalf("RecordWellnessScore() second call error = %v", err)
	}
	history, err := svc.WellnessScoreHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("WellnessScoreHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Errorf("WellnessScoreHistory() len = %d, want 2", len(history))
	}
}

func TestRecordWellnessScoreConcurrent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := t.Context()
	if _, err := svc.CreateProfile(ctx, "u1", healthyInput(), []analytics.Metric{bodyMetric(70, 175)}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			if _, err := svc.RecordWellnessScore(ctx, "u1"); err != nil {
				t.Errorf("RecordWellnessScore() error = %v", err)
			}
		})
	}
	wg.Wait()

	history, err := svc.WellnessScoreHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("WellnessScoreHistory() error = %v", err)
	}
	if len(history) != n {
		t.Errorf("WellnessScoreHistory() len = %d, want %d", len(history), n)
	}
}

func TestGenerateInsights(t *testing.T) {
	t.Parallel()

	t.Run("appends to history", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		ctx := t.Context()
		in := ProfileInput{
			Lifestyle: &analytics.Lifestyle{
				SleepHours:    ptr(5.0),
				ActivityLevel: analytics.ActivityLevelSedentary,
				StressLevel:   analytics.StressLevelHigh,
			},
		}
		if _, err := svc.CreateProfile(ctx, "u1", in, []analytics.Metric{bodyMetric(95, 175)}); err != nil {
			t.Fatalf("CreateProfile() error = %v", err)
		}

		entries, err := svc.GenerateInsights(ctx, "u1")
		if err != nil {
			t.Fatalf("GenerateInsights() error = %v", err)
		}
		if len(entries) == 0 {
			t.Fatal("GenerateInsights() returned no insights")
		}
		for _, e := range entries {
			if !e.Date.Equal(fixedNow) {
				t.Errorf("insight %q date = %v, want %v", e.Category, e.Date, fixedNow)
			}
		}

		if _, err := svc.GenerateInsights(ctx, "u1"); err != nil {
			t.Fatalf("GenerateInsights() second call error = %v", err)
		}
		history, err := svc.InsightHistory(ctx, "u1")
		if err != nil {
			t.Fatalf("InsightHistory() error = %v", err)
		}
		if len(history) != 2*len(entries) {
			t.Errorf("InsightHistory() len = %d, want %d", len(history), 2*len(entries))
		}
	})

	t.Run("opted out of analysis", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		ctx := t.Context()
		in := ProfileInput{Privacy: storage.Privacy{AllowAIAnalysis: ptr(false)}}
		if _, err := svc.CreateProfile(ctx, "u1", in, []analytics.Metric{bodyMetric(95, 175)}); err != nil {
			t.Fatalf("CreateProfile() error = %v", err)
		}

		if _, err := svc.GenerateInsights(ctx, "u1"); !errors.Is(err, ErrAIAnalysisDisabled) {
			t.Fatalf("GenerateInsights() error = %v, want ErrAIAnalysisDisabled", err)
		}
		history, err := svc.InsightHistory(ctx, "u1")
		if err != nil {
			t.Fatalf("InsightHistory() error = %v", err)
		}
		if len(history) != 0 {
			t.Errorf("InsightHistory() len = %d, want 0", len(history))
		}
	})
}

func TestProgressPersistsDerivedStatus(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := t.Context()

	in := ProfileInput{
		FitnessGoals: []analytics.Goal{
			{ID: "weight", Type: analytics.GoalTypeWeight, Target: &analytics.Target{Value: 65, Unit: "kg"}},
			{ID: "recorded", Type: analytics.GoalTypeStrength, Status: analytics.GoalStatusInProgress, Progress: ptr(40)},
			{ID: "dropped", Type: analytics.GoalTypeWeight, Target: &analytics.Target{Value: 60, Unit: "kg"}, Status: analytics.GoalStatusAbandoned},
		},
	}
	if _, err := svc.CreateProfile(ctx, "u1", in, []analytics.Metric{bodyMetric(70, 175)}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	report, err := svc.Progress(ctx, "u1")
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	wantGoals := []analytics.GoalProgress{
		{GoalID: "weight", Type: analytics.GoalTypeWeight, Progress: 67, Status: analytics.GoalStatusInProgress, Derived: true},
		{GoalID: "recorded", Type: analytics.GoalTypeStrength, Progress: 40, Status: analytics.GoalStatusInProgress},
		{GoalID: "dropped", Type: analytics.GoalTypeWeight, Progress: 50, Status: analytics.GoalStatusAbandoned, Derived: true},
	}
	if diff := cmp.Diff(wantGoals, report.Goals); diff != "" {
		t.Errorf("Progress() goals mismatch (-want +got):\n%s", diff)
	}
	if len(report.WeightHistory) != 1 {
		t.Errorf("Progress() weight history len = %d, want 1", len(report.WeightHistory))
	}

	stored, err := store.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	statuses := make(map[string]analytics.GoalStatus, len(stored.FitnessGoals))
	for _, g := range stored.FitnessGoals {
		statuses[g.ID] = g.Status
		if g.ID == "weight" && g.Progress != nil {
			t.Errorf("stored weight goal progress = %d, want unset", *g.Progress)
		}
	}
	wantStatuses := map[string]analytics.GoalStatus{
		"weight":   analytics.GoalStatusInProgress,
		"recorded": analytics.GoalStatusInProgress,
		"dropped":  analytics.GoalStatusAbandoned,
	}
	if diff := cmp.Diff(wantStatuses, statuses); diff != "" {
		t.Errorf("stored statuses mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.AddMetric(ctx, "u1", bodyMetric(65, 175)); err != nil {
		t.Fatalf("AddMetric() error = %v", err)
	}
	report, err = svc.Progress(ctx, "u1")
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if got := report.Goals[0]; got.Progress != 100 || got.Status != analytics.GoalStatusAchieved {
		t.Errorf("Progress() after reaching target = %+v, want achieved at 100", got)
	}
}

func TestTrends(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := t.Context()
	if _, err := svc.CreateProfile(ctx, "u1", ProfileInput{}, []analytics.Metric{bodyMetric(80, 180)}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if _, err := svc.Trends(ctx, "u1"); !errors.Is(err, analytics.ErrInsufficientData) {
		t.Fatalf("Trends() with one metric error = %v, want ErrInsufficientData", err)
	}

	later := bodyMetric(76, 180)
	later.Date = fixedNow.AddDate(0, 1, 0)
	if _, err := svc.AddMetric(ctx, "u1", later); err != nil {
		t.Fatalf("AddMetric() error = %v", err)
	}

	trends, err := svc.Trends(ctx, "u1")
	if err != nil {
		t.Fatalf("Trends() error = %v", err)
	}
	if trends.MetricsCount != 2 {
		t.Errorf("Trends() metrics count = %d, want 2", trends.MetricsCount)
	}
	if trends.WeightChange == nil || trends.WeightChange.ValueKg != -4 {
		t.Errorf("Trends() weight change = %+v, want -4kg", trends.WeightChange)
	}
	if !trends.StartDate.Equal(fixedNow) || !trends.EndDate.Equal(later.Date) {
		t.Errorf("Trends() window = %v..%v, want %v..%v", trends.StartDate, trends.EndDate, fixedNow, later.Date)
	}
}

func TestCreateProfileStartsWithEmptyHistories(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := t.Context()

	if _, err := svc.CreateProfile(ctx, "u1", ProfileInput{}, nil); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	stored, err := store.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if stored.PhysicalMetrics == nil || stored.FitnessGoals == nil || stored.WellnessScores == nil || stored.Insights == nil {
		t.Errorf("stored profile has nil histories: %+v", stored)
	}
	if n := len(stored.PhysicalMetrics) + len(stored.FitnessGoals) + len(stored.WellnessScores) + len(stored.Insights); n != 0 {
		t.Errorf("stored profile has %d history entries, want 0", n)
	}
}

func TestProgressRequiresMetrics(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := t.Context()

	if _, err := svc.CreateProfile(ctx, "u1", healthyInput(), nil); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if _, err := svc.Progress(ctx, "u1"); !errors.Is(err, ErrNoMetrics) {
		t.Fatalf("Progress() error = %v, want ErrNoMetrics", err)
	}

	stored, err := store.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got := stored.FitnessGoals[0].Status; got != analytics.GoalStatusNotStarted {
		t.Errorf("stored goal status = %q, want %q", got, analytics.GoalStatusNotStarted)
	}
}

func TestFitnessAssessment(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := t.Context()

	in := healthyInput()
	in.FitnessAssessment = &storage.FitnessAssessment{
		CardioEndurance: storage.RatingAboveAverage,
		Balance:         storage.RatingAverage,
	}
	created, err := svc.CreateProfile(ctx, "u1", in, nil)
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	want := &storage.FitnessAssessment{
		Date:            &fixedNow,
		CardioEndurance: storage.RatingAboveAverage,
		Balance:         storage.RatingAverage,
	}
	if diff := cmp.Diff(want, created.FitnessAssessment); diff != "" {
		t.Errorf("CreateProfile() assessment mismatch (-want +got):\n%s", diff)
	}
	if in.FitnessAssessment.Date != nil {
		t.Error("CreateProfile() modified the caller's assessment")
	}

	in.FitnessAssessment = nil
	updated, err := svc.UpdateProfile(ctx, "u1", in)
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.FitnessAssessment != nil {
		t.Errorf("UpdateProfile() assessment = %+v, want cleared", updated.FitnessAssessment)
	}
}
