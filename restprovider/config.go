// Package restprovider connects the list data layer to the admin REST API.
// It wraps the internal client in the module's public provider interface;
// anything that speaks the same document envelope can stand in for it by
// implementing remote.ListProvider directly.
package restprovider

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hanawi96/testiq-sub004/internal/restinfra"
	"github.com/hanawi96/testiq-sub004/remote"
)

// Config exposes the REST client configuration for consumers of the
// restprovider package.
type Config struct {
	// BaseURL is the admin API root, without a trailing slash.
	BaseURL string

	// Resource is the collection path segment ("articles", "users",
	// "media").
	Resource string

	// HTTPClient defaults to a client with a 15 second timeout.
	HTTPClient *http.Client

	// MaxRetries is how many times a failed read is retried on top of
	// the first attempt. Zero disables retries; writes are never
	// retried.
	MaxRetries int

	// RetryBaseWait and RetryMaxWait bound the exponential backoff
	// between read retries.
	RetryBaseWait time.Duration
	RetryMaxWait  time.Duration

	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// DefaultConfig returns a Config populated with the client defaults.
func DefaultConfig() Config {
	return convertFromInternal(restinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// New builds a list provider for one backend collection.
func New[T any](cfg Config) (remote.ListProvider[T], error) {
	return restinfra.New[T](cfg.toInternal())
}

func (c Config) toInternal() restinfra.Config {
	return restinfra.Config{
		BaseURL:       c.BaseURL,
		Resource:      c.Resource,
		HTTPClient:    c.HTTPClient,
		MaxRetries:    c.MaxRetries,
		RetryBaseWait: c.RetryBaseWait,
		RetryMaxWait:  c.RetryMaxWait,
		Logger:        c.Logger,
	}
}

func convertFromInternal(cfg restinfra.Config) Config {
	return Config{
		BaseURL:       cfg.BaseURL,
		Resource:      cfg.Resource,
		HTTPClient:    cfg.HTTPClient,
		MaxRetries:    cfg.MaxRetries,
		RetryBaseWait: cfg.RetryBaseWait,
		RetryMaxWait:  cfg.RetryMaxWait,
		Logger:        cfg.Logger,
	}
}
