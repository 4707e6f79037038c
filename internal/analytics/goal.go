package analytics

import "math"

// assumedWeightOffsetKg stands in for a starting weight when a goal has no
// recorded baseline: the user is assumed to have started this much heavier
// than they are now.
const assumedWeightOffsetKg = 10

type GoalProgress struct {
	GoalID   string     `json:"id"`
	Type     GoalType   `json:"type"`
	Progress int        `json:"progress"`
	Status   GoalStatus `json:"status"`
	// Derived is set when Progress was computed rather than read from the
	// goal, so the caller knows to persist it.
	Derived bool `json:"-"`
}

// CalculateGoalProgress returns the goal's completion percentage in [0,100].
// An explicitly recorded progress value is returned unchanged. Only weight
// goals are estimated; every other goal type reports 0.
func CalculateGoalProgress(g Goal, latest *Metric) int {
	if g.Progress != nil {
		return *g.Progress
	}
	if g.Target == nil || g.Target.Value == 0 || latest == nil {
		return 0
	}

	switch g.Type {
	case GoalTypeWeight:
		return weightGoalProgress(g, latest)
	default:
		return 0
	}
}

func weightGoalProgress(g Goal, latest *Metric) int {
	if latest.Weight == nil || latest.Weight.Value == 0 {
		return 0
	}

	unit := MassUnit(g.Target.Unit)
	current := latest.Weight.Kilograms()
	target := NormalizeWeight(g.Target.Value, unit)

	starting := current + assumedWeightOffsetKg
	if g.StartingValue != nil {
		starting = NormalizeWeight(*g.StartingValue, unit)
	}

	var done, total float64
	if target < starting {
		done, total = starting-current, starting-target
	} else {
		done, total = current-starting, target-starting
	}
	if total <= 0 {
		return 0
	}

	ratio := clamp01(done / total)
	return int(math.Round(ratio * 100))
}

// StatusForProgress derives a goal status from a computed progress value.
func StatusForProgress(progress int) GoalStatus {
	switch {
	case progress <= 0:
		return GoalStatusNotStarted
	case progress >= 100:
		return GoalStatusAchieved
	default:
		return GoalStatusInProgress
	}
}

// EvaluateGoals reports progress for every goal against the latest metric.
// Goals with recorded progress keep their recorded status, and an abandoned
// goal stays abandoned whatever its computed progress.
func EvaluateGoals(goals []Goal, latest *Metric) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		if g.Progress != nil {
			out = append(out, GoalProgress{
				GoalID:   g.ID,
				Type:     g.Type,
				Progress: *g.Progress,
				Status:   g.Status,
			})
			continue
		}

		progress := CalculateGoalProgress(g, latest)
		status := StatusForProgress(progress)
		if g.Status == GoalStatusAbandoned {
			status = GoalStatusAbandoned
		}
		out = append(out, GoalProgress{
			GoalID:   g.ID,
			Type:     g.Type,
			Progress: progress,
			Status:   status,
			Derived:  true,
		})
	}
	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
