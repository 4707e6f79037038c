package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps profiles and API keys in process memory. Profiles are
// copied on the way in and out so callers never share state with the store.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]*Profile

	keysMu sync.RWMutex
	keys   map[string]APIKey // by hash

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*Profile),
		keys:     make(map[string]APIKey),
		now:      time.Now,
	}
}

func (m *MemoryStore) CreateProfile(_ context.Context, p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[p.UserID]; ok {
		return ErrAlreadyExists
	}

	stored, err := cloneProfile(p)
	if err != nil {
		return fmt.Errorf("failed to copy profile: %w", err)
	}
	now := m.now()
	stored.CreatedAt, stored.UpdatedAt = now, now
	p.CreatedAt, p.UpdatedAt = now, now

	m.profiles[p.UserID] = stored
	return nil
}

func (m *MemoryStore) GetProfile(_ context.Context, userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProfile(p)
}

func (m *MemoryStore) UpdateProfile(_ context.Context, userID string, fn UpdateFunc) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}

	working, err := cloneProfile(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to copy profile: %w", err)
	}
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UserID = userID
	working.CreatedAt = stored.CreatedAt
	working.UpdatedAt = m.now()

	next, err := cloneProfile(working)
	if err != nil {
		return nil, fmt.Errorf("failed to copy profile: %w", err)
	}
	m.profiles[userID] = next
	return working, nil
}

func (m *MemoryStore) DeleteProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

func (m *MemoryStore) CreateAPIKey(_ context.Context, key APIKey) error {
	m.keysMu.Lock()
	defer m.keysMu.Unlock()

	if _, ok := m.keys[key.Hash]; ok {
		return ErrAlreadyExists
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = m.now()
	}
	m.keys[key.Hash] = key
	return nil
}

func (m *MemoryStore) GetAPIKeyByHash(_ context.Context, hash string) (*APIKey, error) {
	m.keysMu.RLock()
	key, ok := m.keys[hash]
	m.keysMu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return &key, nil
}

func (m *MemoryStore) TouchAPIKey(_ context.Context, id string, at time.Time) error {
	m.keysMu.Lock()
	defer m.keysMu.Unlock()

	for hash, key := range m.keys {
		if key.ID == id {
			key.LastUsedAt = &at
			m.keys[hash] = key
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) ListAPIKeys(_ context.Context, userID string) ([]APIKey, error) {
	m.keysMu.RLock()
	defer m.keysMu.RUnlock()

	var keys []APIKey
	for _, key := range m.keys {
		if key.UserID == userID {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b APIKey) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return keys, nil
}

func (m *MemoryStore) RevokeAPIKey(_ context.Context, id string) (*APIKey, error) {
	m.keysMu.Lock()
	defer m.keysMu.Unlock()

	for hash, key := range m.keys {
		if key.ID == id {
			key.Revoked = true
			m.keys[hash] = key
			return &key, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
