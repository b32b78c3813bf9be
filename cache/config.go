package cache

import (
	"time"

	"github.com/hanawi96/testiq-sub004/internal/cacheinfra"
)

// Interface assertion to ensure the memory store satisfies Store.
var _ Store = (*cacheinfra.MemoryStore)(nil)

// Config exposes the page store configuration for consumers of the cache
// package.
type Config struct {
	// DefaultTTL is the lifetime Set applies to entries.
	DefaultTTL time.Duration

	// SweepInterval is how often the janitor collects expired entries.
	// Zero disables the janitor.
	SweepInterval time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultStoreConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewMemoryStore constructs the default in-process page store.
func NewMemoryStore(cfg Config) (Store, error) {
	return cacheinfra.NewMemoryStore(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.StoreConfig {
	return cacheinfra.StoreConfig{
		DefaultTTL:    c.DefaultTTL,
		SweepInterval: c.SweepInterval,
	}
}

func convertFromInternal(cfg cacheinfra.StoreConfig) Config {
	return Config{
		DefaultTTL:    cfg.DefaultTTL,
		SweepInterval: cfg.SweepInterval,
	}
}
