package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/wellness/internal/storage"
	"github.com/garrettladley/wellness/internal/xslog"
)

const (
	apiKeyPrefix = "wel_"
	apiKeyLength = 32
)

var _ Service = (*APIKeyService)(nil)

type APIKeyService struct {
	store    storage.APIKeyStore
	cache    storage.APIKeyCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewAPIKeyService(store storage.APIKeyStore, cache storage.APIKeyCache, cacheTTL time.Duration) *APIKeyService {
	return &APIKeyService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *APIKeyService) ValidateAPIKey(ctx context.Context, apiKey string) (*ValidatedUser, error) {
	keyHash := HashAPIKey(apiKey)

	if cached, err := s.cache.Get(ctx, keyHash); err == nil {
		return &ValidatedUser{UserID: cached.UserID, APIKeyID: cached.KeyID}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		xslog.FromContext(ctx).WarnContext(ctx, "api key cache lookup failed", xslog.Error(err))
	}

	record, err := s.store.GetAPIKeyByHash(ctx, keyHash)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting API key by hash: %w", err)
	}

	if record.Revoked {
		return nil, ErrAPIKeyRevoked
	}

	cached := storage.CachedAPIKey{KeyID: record.ID, UserID: record.UserID}
	if err := s.cache.Set(ctx, keyHash, cached, s.cacheTTL); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "failed to cache api key", xslog.Error(err))
	}

	return &ValidatedUser{
		UserID:   record.UserID,
		APIKeyID: record.ID,
	}, nil
}

func (s *APIKeyService) IssueAPIKey(ctx context.Context, userID string, name string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return "", err
	}

	err = s.store.CreateAPIKey(ctx, storage.APIKey{
		ID:        uuid.NewString(),
		UserID:    userID,
		Hash:      HashAPIKey(apiKey),
		Name:      name,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("creating API key: %w", err)
	}

	return apiKey, nil
}

func (s *APIKeyService) UpdateAPIKeyLastUsed(ctx context.Context, apiKeyID string) error {
	if err := s.store.TouchAPIKey(ctx, apiKeyID, s.now().UTC()); err != nil {
		return fmt.Errorf("updating API key last used: %w", err)
	}
	return nil
}

func (s *APIKeyService) ListAPIKeys(ctx context.Context, userID string) ([]APIKeyInfo, error) {
	keys, err := s.store.ListAPIKeys(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing API keys: %w", err)
	}
	infos := make([]APIKeyInfo, len(keys))
	for i, k := range keys {
		infos[i] = APIKeyInfo{
			ID:         k.ID,
			UserID:     k.UserID,
			Name:       k.Name,
			Revoked:    k.Revoked,
			CreatedAt:  k.CreatedAt,
			LastUsedAt: k.LastUsedAt,
		}
	}
	return infos, nil
}

func (s *APIKeyService) RevokeAPIKey(ctx context.Context, apiKeyID string) error {
	key, err := s.store.RevokeAPIKey(ctx, apiKeyID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrAPIKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("revoking API key: %w", err)
	}
	if err := s.cache.Delete(ctx, key.Hash); err != nil {
		return fmt.Errorf("evicting revoked API key from cache: %w", err)
	}
	xslog.FromContext(ctx).InfoContext(ctx, "api key revoked", xslog.UserGroup(key.UserID, key.ID))
	return nil
}

// HashAPIKey returns the hex SHA-256 digest under which a key is stored.
func HashAPIKey(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}

func generateAPIKey() (string, error) {
	b := make([]byte, apiKeyLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return apiKeyPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
