package di

import (
	"net/http"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hanawi96/testiq-sub004/admin"
	"github.com/hanawi96/testiq-sub004/cache"
	"github.com/hanawi96/testiq-sub004/listdata"
	"github.com/hanawi96/testiq-sub004/remote"
	"github.com/hanawi96/testiq-sub004/restprovider"
)

// Config describes one admin backend and how the services built over it
// are tuned.
type Config struct {
	// BaseURL is the admin API root, without a trailing slash. Required.
	BaseURL string

	// HTTPClient is shared by every provider the container builds. Nil
	// falls back to the REST client default.
	HTTPClient *http.Client

	// Reference overrides the reference cache configuration. Nil uses
	// defaults sized for lookup tables.
	Reference *cache.ReferenceConfig

	// Lists tunes every list service the container builds: page size,
	// cache TTLs, search window, prefetch pacing, error sink. The Logger
	// and Metrics fields may be left empty; the container fills them in
	// from its own Logger and Registerer.
	Lists admin.Options

	// Logger defaults to a nop logger.
	Logger *zap.Logger

	// Registerer receives the data layer's Prometheus collectors. Nil
	// leaves the services unmetered. Collector names are fixed, so build
	// at most one container per registry.
	Registerer prometheus.Registerer
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required),
	)
}

// Container wires the whole client-side data layer for one admin backend:
// a provider per collection, the three typed list services, and the shared
// reference cache behind the filter dropdowns. It manages singleton
// instances; every accessor returns the same one.
type Container struct {
	cfg      Config
	logger   *zap.Logger
	metrics  *listdata.Metrics
	listOpts admin.Options

	reference cache.ReferenceCache
	lookups   *admin.Lookups
	articles  *admin.ArticleList
	users     *admin.UserList
	media     *admin.MediaList

	closeOnce sync.Once
}

// New builds a container over the backend named by cfg.BaseURL.
func New(cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := cfg.Lists.Metrics
	if cfg.Registerer != nil {
		metrics = listdata.NewMetrics(cfg.Registerer)
	}

	refCfg := cache.DefaultReferenceConfig()
	if cfg.Reference != nil {
		refCfg = *cfg.Reference
	}
	reference, err := cache.NewReferenceCache(refCfg)
	if err != nil {
		return nil, err
	}

	opts := cfg.Lists
	if opts.Logger == nil {
		opts.Logger = logger
	}
	opts.Metrics = metrics

	c := &Container{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		listOpts:  opts,
		reference: reference,
	}
	if err := c.buildServices(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) buildServices() error {
	articleProvider, err := newProvider[admin.Article](c.cfg, "articles", c.logger)
	if err != nil {
		return err
	}
	if c.articles, err = admin.NewArticleList(articleProvider, c.listOpts); err != nil {
		return err
	}

	userProvider, err := newProvider[admin.User](c.cfg, "users", c.logger)
	if err != nil {
		return err
	}
	if c.users, err = admin.NewUserList(userProvider, c.listOpts); err != nil {
		return err
	}

	mediaProvider, err := newProvider[admin.MediaFile](c.cfg, "media", c.logger)
	if err != nil {
		return err
	}
	if c.media, err = admin.NewMediaList(mediaProvider, c.listOpts); err != nil {
		return err
	}

	categoryProvider, err := newProvider[admin.Category](c.cfg, "categories", c.logger)
	if err != nil {
		return err
	}
	countryProvider, err := newProvider[admin.Country](c.cfg, "countries", c.logger)
	if err != nil {
		return err
	}
	c.lookups, err = admin.NewLookups(c.reference, categoryProvider, countryProvider)
	return err
}

// newProvider builds a REST provider for one collection, sharing the
// container's HTTP client and logger.
func newProvider[T any](cfg Config, resource string, logger *zap.Logger) (remote.ListProvider[T], error) {
	pc := restprovider.DefaultConfig()
	pc.BaseURL = cfg.BaseURL
	pc.Resource = resource
	pc.HTTPClient = cfg.HTTPClient
	pc.Logger = logger
	return restprovider.New[T](pc)
}

// Articles returns the singleton articles service.
func (c *Container) Articles() *admin.ArticleList {
	return c.articles
}

// Users returns the singleton users service.
func (c *Container) Users() *admin.UserList {
	return c.users
}

// Media returns the singleton media service.
func (c *Container) Media() *admin.MediaList {
	return c.media
}

// Lookups returns the singleton reference data service.
func (c *Container) Lookups() *admin.Lookups {
	return c.lookups
}

// Reference returns the shared reference cache, for callers that keep
// their own lookup collections in it.
func (c *Container) Reference() cache.ReferenceCache {
	return c.reference
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Metrics returns the shared collectors, or nil when the container runs
// unmetered.
func (c *Container) Metrics() *listdata.Metrics {
	return c.metrics
}

// Config returns a copy of the configuration the container was built with.
func (c *Container) Config() Config {
	return c.cfg
}

// Close shuts down every list service the container built. Safe to call
// more than once.
func (c *Container) Close() {
	c.closeOnce.Do(func() {
		if c.articles != nil {
			c.articles.Close()
		}
		if c.users != nil {
			c.users.Close()
		}
		if c.media != nil {
			c.media.Close()
		}
	})
}

// NewList builds a list service for a collection the container has no
// typed service for, wired with the container's HTTP client, logger,
// metrics, and list options.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function. Example: NewList[Comment](container, "comments",
// func(c Comment) string { return c.ID })
func NewList[T any](c *Container, resource string, idOf func(T) string) (*admin.List[T], error) {
	provider, err := newProvider[T](c.cfg, resource, c.logger)
	if err != nil {
		return nil, err
	}
	return admin.NewList(resource, provider, idOf, c.listOpts)
}
