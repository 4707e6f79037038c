package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ RateLimiter = (*MemoryRateLimiter)(nil)

const limiterIdleTimeout = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter is a per-key token bucket for single-instance deployments.
type MemoryRateLimiter struct {
	limiters  map[string]*limiterEntry
	limiterMu sync.Mutex
	rateLimit rate.Limit
	rateBurst int

	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryRateLimiter(ratePerSec float64, burst int) *MemoryRateLimiter {
	m := &MemoryRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		done:      make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	now := time.Now()

	m.limiterMu.Lock()
	entry, exists := m.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(m.rateLimit, m.rateBurst)}
		m.limiters[key] = entry
	}
	entry.lastSeen = now
	m.limiterMu.Unlock()

	allowed := entry.limiter.AllowN(now, 1)
	result := RateLimitResult{
		Allowed:   allowed,
		Limit:     m.rateBurst,
		Remaining: max(int(entry.limiter.TokensAt(now)), 0),
	}
	if !allowed {
		result.RetryAfter = m.retryAfter()
	}
	return result, nil
}

// retryAfter is the time for one token to refill.
func (m *MemoryRateLimiter) retryAfter() time.Duration {
	if m.rateLimit <= 0 || m.rateLimit == rate.Inf {
		return time.Second
	}
	return max(time.Duration(float64(time.Second)/float64(m.rateLimit)), time.Second)
}

func (m *MemoryRateLimiter) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

func (m *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle(time.Now())
		case <-m.done:
			return
		}
	}
}

func (m *MemoryRateLimiter) evictIdle(now time.Time) {
	m.limiterMu.Lock()
	for key, entry := range m.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTimeout {
			delete(m.limiters, key)
		}
	}
	m.limiterMu.Unlock()
}
