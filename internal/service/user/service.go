package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAPIKeyNotFound = errors.New("API key not found")
	ErrAPIKeyRevoked  = errors.New("API key has been revoked")
)

type ValidatedUser struct {
	UserID   string
	APIKeyID string
}

// APIKeyInfo describes an issued key. The key itself is never recoverable.
type APIKeyInfo struct {
	ID         string
	UserID     string
	Name       string
	Revoked    bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// Authenticator is what request authentication needs.
type Authenticator interface {
	// ValidateAPIKey returns ErrAPIKeyNotFound for unknown keys and
	// ErrAPIKeyRevoked for revoked ones.
	ValidateAPIKey(ctx context.Context, apiKey string) (*ValidatedUser, error)

	// UpdateAPIKeyLastUsed records use of a key. Callers run it off the
	// request path.
	UpdateAPIKeyLastUsed(ctx context.Context, apiKeyID string) error
}

type Service interface {
	Authenticator

	// IssueAPIKey returns the new key in plaintext. Only its hash is kept.
	IssueAPIKey(ctx context.Context, userID string, name string) (string, error)

	// ListAPIKeys returns the user's keys, oldest first.
	ListAPIKeys(ctx context.Context, userID string) ([]APIKeyInfo, error)

	// RevokeAPIKey disables a key immediately, including any cached
	// validation. Returns ErrAPIKeyNotFound for unknown ids.
	RevokeAPIKey(ctx context.Context, apiKeyID string) error
}
