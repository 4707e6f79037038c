package storage

import (
	"testing"
	"time"
)

func TestMemoryRateLimiter(t *testing.T) {
	t.Parallel()

	limiter := NewMemoryRateLimiter(1, 3)
	t.Cleanup(func() { _ = limiter.Close() })

	ctx := t.Context()
	for i := range 3 {
		result, err := limiter.Allow(ctx, "203.0.113.1")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d denied within burst", i+1)
		}
		if want := 2 - i; result.Remaining != want {
			t.Errorf("request %d Remaining = %d, want %d", i+1, result.Remaining, want)
		}
		if result.Limit != 3 {
			t.Errorf("Limit = %d, want 3", result.Limit)
		}
	}

	result, err := limiter.Allow(ctx, "203.0.113.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if result.Allowed {
		t.Error("request beyond burst allowed")
	}
	if result.Remaining != 0 {
		t.Errorf("Remaining = %d after exhausting burst, want 0", result.Remaining)
	}
	if result.RetryAfter < time.Second {
		t.Errorf("RetryAfter = %v, want at least 1s", result.RetryAfter)
	}

	other, err := limiter.Allow(ctx, "203.0.113.2")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !other.Allowed {
		t.Error("separate key shares the exhausted bucket")
	}
}

func TestMemoryRateLimiterEvictsIdle(t *testing.T) {
	t.Parallel()

	limiter := NewMemoryRateLimiter(1, 1)
	t.Cleanup(func() { _ = limiter.Close() })

	if _, err := limiter.Allow(t.Context(), "k"); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}

	limiter.evictIdle(time.Now().Add(limiterIdleTimeout + time.Second))

	limiter.limiterMu.Lock()
	n := len(limiter.limiters)
	limiter.limiterMu.Unlock()
	if n != 0 {
		t.Errorf("limiters after eviction = %d, want 0", n)
	}
}
