package config

import (
	"errors"
	"net/netip"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	appenv "github.com/garrettladley/wellness/internal/env"
)

var prefixComparer = cmp.Comparer(func(a, b netip.Prefix) bool { return a == b })

func TestRead(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_WINDOW", "30s")

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := Config{
		Port:    "8080",
		Env:     appenv.Development,
		Storage: Storage{Driver: DriverMemory},
		Redis:   Redis{DialTimeout: 5 * time.Second},
		RateLimit: RateLimit{
			Limit:       10,
			Burst:       20,
			WindowLimit: 600,
			Window:      30 * time.Second,
		},
		CORS:        CORS{AllowedOrigins: []string{"https://a.example", "https://b.example"}},
		APIKeyCache: APIKeyCache{TTL: 5 * time.Minute, CleanupInterval: time.Minute},
		Compression: true,
	}
	if diff := cmp.Diff(want, cfg, prefixComparer); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = true without a URL")
	}
}

func TestReadPostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("STORAGE_DATABASE_URL", "")

	if _, err := Read(); !errors.Is(err, ErrDatabaseURLRequired) {
		t.Fatalf("Read() error = %v, want ErrDatabaseURLRequired", err)
	}
}

func TestReadInvalidDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	if _, err := Read(); err == nil {
		t.Fatal("Read() error = nil, want invalid driver error")
	}
}

func TestReadSQLiteDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WELLNESS_HOME", dir)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_SQLITE_PATH", "")

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if want := filepath.Join(dir, "wellness.db"); cfg.Storage.SQLitePath != want {
		t.Errorf("SQLitePath = %q, want %q", cfg.Storage.SQLitePath, want)
	}
}

func TestReadInvalidEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ENV", "staging")

	if _, err := Read(); err == nil {
		t.Fatal("Read() error = nil, want invalid environment error")
	}
}

func TestReadTrustedProxies(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("RATE_TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1/32")

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.1/32"),
	}
	if diff := cmp.Diff(want, cfg.RateLimit.TrustedProxies, prefixComparer); diff != "" {
		t.Errorf("TrustedProxies mismatch (-want +got):\n%s", diff)
	}

	t.Setenv("RATE_TRUSTED_PROXIES", "not-a-cidr")
	if _, err := Read(); err == nil {
		t.Error("Read() error = nil, want invalid prefix error")
	}
}
