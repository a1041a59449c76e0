package cache

import (
	"context"
	"time"

	"github.com/matzehuels/flowbreak/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string `toml:"backend" json:"backend"`
	Dir        string `toml:"dir" json:"dir"`
	URL        string `toml:"url" json:"url"`
	Database   string `toml:"database" json:"database"`
	Collection string `toml:"collection" json:"collection"`
	Prefix     string `toml:"prefix" json:"prefix"`
	// TTL overrides the per-kind default time-to-live when positive.
	TTL time.Duration `toml:"ttl" json:"ttl"`
}

// TTLOr returns the configured TTL, or def when none is set.
func (cfg Config) TTLOr(def time.Duration) time.Duration {
	if cfg.TTL > 0 {
		return cfg.TTL
	}
	return def
}

// Open returns the cache described by cfg. An empty backend means a file
// cache when a directory is set and no cache otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}
	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		if err := errors.ValidateURL(cfg.URL, "redis", "rediss"); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "redis cache")
		}
		return NewRedisCache(ctx, cfg.URL)
	case BackendMongo:
		if err := errors.ValidateURL(cfg.URL, "mongodb", "mongodb+srv"); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "mongo cache")
		}
		return NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis, mongo or none)", backend)
}

// Keyer returns the keyer for cfg: the default keyer, scoped when a prefix
// is configured.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
}
