package health

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/wellness/internal/storage"
)

var (
	ErrProfileNotFound    = errors.New("health profile not found")
	ErrProfileExists      = errors.New("health profile already exists")
	ErrMetricNotFound     = errors.New("metric not found")
	ErrNoMetrics          = errors.New("no physical metrics recorded")
	ErrBMIUnavailable     = errors.New("latest metric has no height or weight")
	ErrAIAnalysisDisabled = errors.New("AI analysis is disabled in privacy settings")
)

// Service orchestrates the analytics engine over stored profiles. Every
// operation that appends to or rewrites a profile runs inside
// ProfileStore.UpdateProfile so concurrent requests cannot lose writes.
type Service struct {
	store storage.ProfileStore
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDFunc(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store storage.ProfileStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

func mapStoreErr(err error, op string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrProfileNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return ErrProfileExists
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
