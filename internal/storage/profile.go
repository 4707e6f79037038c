package storage

import (
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/wellness/internal/analytics"
)

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non-binary"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

func (g Gender) Valid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderNonBinary, GenderPreferNotToSay:
		return true
	default:
		return false
	}
}

type DataVisibility string

const (
	DataVisibilityPrivate DataVisibility = "private"
	DataVisibilityFriends DataVisibility = "friends"
	DataVisibilityPublic  DataVisibility = "public"
)

func (v DataVisibility) Valid() bool {
	switch v {
	case "", DataVisibilityPrivate, DataVisibilityFriends, DataVisibilityPublic:
		return true
	default:
		return false
	}
}

type Privacy struct {
	ShareData      bool           `json:"share_data"`
	DataVisibility DataVisibility `json:"data_visibility,omitempty"`
	// AllowAIAnalysis is nil until the user makes a choice.
	AllowAIAnalysis *bool `json:"allow_ai_analysis,omitempty"`
}

// AIAnalysisAllowed reports whether insights may be generated. Analysis is
// allowed unless the user opted out.
func (p Privacy) AIAnalysisAllowed() bool {
	return p.AllowAIAnalysis == nil || *p.AllowAIAnalysis
}

// Rating grades one fitness assessment component.
type Rating string

const (
	RatingPoor         Rating = "poor"
	RatingBelowAverage Rating = "below-average"
	RatingAverage      Rating = "average"
	RatingAboveAverage Rating = "above-average"
	RatingExcellent    Rating = "excellent"
)

func (r Rating) Valid() bool {
	switch r {
	case "", RatingPoor, RatingBelowAverage, RatingAverage, RatingAboveAverage, RatingExcellent:
		return true
	default:
		return false
	}
}

// FitnessAssessment is the user's most recent self-assessment. It is kept on
// the profile for display and does not feed analytics.
type FitnessAssessment struct {
	Date             *time.Time `json:"date,omitempty"`
	CardioEndurance  Rating     `json:"cardio_endurance,omitempty"`
	MuscularStrength Rating     `json:"muscular_strength,omitempty"`
	Flexibility      Rating     `json:"flexibility,omitempty"`
	Balance          Rating     `json:"balance,omitempty"`
}

// InsightEntry is one generated insight as kept in the profile history.
type InsightEntry struct {
	Date           time.Time                 `json:"date"`
	Category       analytics.InsightCategory `json:"category"`
	Insight        string                    `json:"insight"`
	Recommendation string                    `json:"recommendation"`
}

// Profile is the persisted health profile of a single user. It is stored as
// one document.
type Profile struct {
	UserID      string     `json:"user_id"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      Gender     `json:"gender,omitempty"`

	analytics.HealthRecord

	FitnessAssessment *FitnessAssessment `json:"fitness_assessment,omitempty"`
	Insights          []InsightEntry     `json:"insights"`
	Privacy           Privacy            `json:"privacy"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Record returns the analytics view of the profile.
func (p *Profile) Record() analytics.HealthRecord {
	return p.HealthRecord
}

func encodeProfile(p *Profile) ([]byte, error) {
	return go_json.Marshal(p)
}

func decodeProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := go_json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// cloneProfile deep-copies p through its document form.
func cloneProfile(p *Profile) (*Profile, error) {
	data, err := encodeProfile(p)
	if err != nil {
		return nil, err
	}
	return decodeProfile(data)
}
