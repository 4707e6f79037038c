package health

import (
	"context"
	"time"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/storage"
)

// ProfileInput holds the user-editable parts of a profile. Metric, score and
// insight histories are only changed through their own operations.
type ProfileInput struct {
	DateOfBirth        *time.Time
	Gender             storage.Gender
	Lifestyle          *analytics.Lifestyle
	DietaryPreferences *analytics.DietaryPreferences
	FitnessGoals       []analytics.Goal
	FitnessAssessment  *storage.FitnessAssessment
	Privacy            storage.Privacy
}

// CreateProfile creates the caller's profile, optionally seeded with metrics.
func (s *Service) CreateProfile(ctx context.Context, userID string, in ProfileInput, metrics []analytics.Metric) (*storage.Profile, error) {
	p := &storage.Profile{
		UserID: userID,
		HealthRecord: analytics.HealthRecord{
			PhysicalMetrics: make([]analytics.Metric, 0, len(metrics)),
			FitnessGoals:    []analytics.Goal{},
			WellnessScores:  []analytics.WellnessScoreEntry{},
		},
		Insights: []storage.InsightEntry{},
	}
	s.applyInput(p, in)
	for _, m := range metrics {
		p.PhysicalMetrics = append(p.PhysicalMetrics, s.prepareMetric(m))
	}

	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, mapStoreErr(err, "create profile")
	}
	return p, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*storage.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err, "get profile")
	}
	return p, nil
}

// UpdateProfile replaces the editable fields of the caller's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*storage.Profile, error) {
	p, err := s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
		s.applyInput(p, in)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err, "update profile")
	}
	return p, nil
}

func (s *Service) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.store.DeleteProfile(ctx, userID); err != nil {
		return mapStoreErr(err, "delete profile")
	}
	return nil
}

func (s *Service) applyInput(p *storage.Profile, in ProfileInput) {
	p.DateOfBirth = in.DateOfBirth
	p.Gender = in.Gender
	p.Lifestyle = in.Lifestyle
	p.DietaryPreferences = in.DietaryPreferences
	p.Privacy = in.Privacy

	p.FitnessAssessment = nil
	if a := in.FitnessAssessment; a != nil {
		assessed := *a
		if assessed.Date == nil {
			now := s.timestamp()
			assessed.Date = &now
		}
		p.FitnessAssessment = &assessed
	}

	goals := make([]analytics.Goal, 0, len(in.FitnessGoals))
	for _, g := range in.FitnessGoals {
		if g.ID == "" {
			g.ID = s.newID()
		}
		if g.Status == "" {
			g.Status = analytics.GoalStatusNotStarted
		}
		goals = append(goals, g)
	}
	p.FitnessGoals = goals
}
