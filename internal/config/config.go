package config

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/wellness/internal/env"
	"github.com/garrettladley/wellness/internal/paths"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

func (d Driver) Valid() bool {
	switch d {
	case DriverPostgres, DriverSQLite, DriverMemory:
		return true
	default:
		return false
	}
}

type Config struct {
	Port        string             `env:"PORT" envDefault:"8080"`
	Env         appenv.Environment `env:"ENV" envDefault:"development"`
	Storage     Storage            `envPrefix:"STORAGE_"`
	Redis       Redis              `envPrefix:"REDIS_"`
	RateLimit   RateLimit          `envPrefix:"RATE_"`
	CORS        CORS               `envPrefix:"CORS_"`
	APIKeyCache APIKeyCache        `envPrefix:"API_KEY_CACHE_"`
	// Compression gzips large responses. Disable it when a proxy in front
	// already compresses.
	Compression bool `env:"COMPRESSION" envDefault:"true"`
}

type Storage struct {
	Driver      Driver `env:"DRIVER" envDefault:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`
	// SQLitePath defaults to the per-user data directory.
	SQLitePath string `env:"SQLITE_PATH"`
}

// Redis is optional. Without a URL the server falls back to in-process rate
// limiting and API key caching.
type Redis struct {
	URL         string        `env:"URL"`
	PoolSize    int           `env:"POOL_SIZE"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

func (r Redis) Enabled() bool { return r.URL != "" }

type RateLimit struct {
	// Limit is requests per second for the in-memory limiter.
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
	// WindowLimit and Window configure the Redis sliding window.
	WindowLimit int           `env:"WINDOW_LIMIT" envDefault:"600"`
	Window      time.Duration `env:"WINDOW" envDefault:"1m"`
	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed when
	// keying clients. Empty means the peer address is always used.
	TrustedProxies []netip.Prefix `env:"TRUSTED_PROXIES"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type APIKeyCache struct {
	TTL             time.Duration `env:"TTL" envDefault:"5m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1m"`
}

var ErrDatabaseURLRequired = errors.New("STORAGE_DATABASE_URL is required for the postgres driver")

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	if !c.Storage.Driver.Valid() {
		return fmt.Errorf("invalid storage driver %q (valid: postgres, sqlite, memory)", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.SQLitePath == "" {
		path, err := paths.DB()
		if err != nil {
			return err
		}
		c.Storage.SQLitePath = path
	}
	return nil
}
