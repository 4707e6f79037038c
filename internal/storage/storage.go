package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type RateLimitResult struct {
	Allowed bool
	// Limit is the most requests a key can make at once and Remaining how
	// many of those are left after this one.
	Limit     int
	Remaining int
	// RetryAfter is set when the request was denied.
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// UpdateFunc mutates a profile in place. Returning an error aborts the update
// and nothing is written.
type UpdateFunc func(p *Profile) error

type ProfileStore interface {
	// CreateProfile returns ErrAlreadyExists if the user already has a profile.
	CreateProfile(ctx context.Context, p *Profile) error

	// GetProfile returns ErrNotFound if the user has no profile.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// UpdateProfile loads the profile, applies fn and writes the result back.
	// Concurrent updates of the same profile are serialized, so appends made
	// by fn are never lost. Returns the stored profile.
	UpdateProfile(ctx context.Context, userID string, fn UpdateFunc) (*Profile, error)

	DeleteProfile(ctx context.Context, userID string) error
}

type APIKey struct {
	ID         string
	UserID     string
	Hash       string
	Name       string
	Revoked    bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

type APIKeyStore interface {
	CreateAPIKey(ctx context.Context, key APIKey) error

	// GetAPIKeyByHash returns ErrNotFound if no key has the given hash.
	GetAPIKeyByHash(ctx context.Context, hash string) (*APIKey, error)

	// ListAPIKeys returns the user's keys ordered by creation time.
	ListAPIKeys(ctx context.Context, userID string) ([]APIKey, error)

	// RevokeAPIKey marks the key revoked and returns it. Revoking twice is
	// not an error. Returns ErrNotFound for unknown ids.
	RevokeAPIKey(ctx context.Context, id string) (*APIKey, error)

	TouchAPIKey(ctx context.Context, id string, at time.Time) error
}

type Store interface {
	ProfileStore
	APIKeyStore

	Ping(ctx context.Context) error

	Close() error
}

// CachedAPIKey is what the API key cache remembers about a validated key.
type CachedAPIKey struct {
	KeyID  string `json:"key_id"`
	UserID string `json:"user_id"`
}

// APIKeyCache caches validated API keys to avoid a store lookup per request.
// Maps key hash -> key owner.
type APIKeyCache interface {
	// Get returns ErrNotFound if not cached or expired.
	Get(ctx context.Context, keyHash string) (CachedAPIKey, error)

	Set(ctx context.Context, keyHash string, key CachedAPIKey, ttl time.Duration) error

	Delete(ctx context.Context, keyHash string) error
}
