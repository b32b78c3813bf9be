// Package restinfra implements the list provider boundary against the
// admin REST API.
package restinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanawi96/testiq-sub004/query"
	"github.com/hanawi96/testiq-sub004/remote"
)

// Config holds the connection settings for one backend collection.
type Config struct {
	// BaseURL is the admin API root, without a trailing slash.
	BaseURL string

	// Resource is the collection path segment ("articles", "users",
	// "media").
	Resource string

	// HTTPClient defaults to a client with a 15 second timeout.
	HTTPClient *http.Client

	// MaxRetries is how many times a failed read is retried on top of
	// the first attempt. Zero disables retries. Writes are never
	// retried.
	MaxRetries int

	// RetryBaseWait and RetryMaxWait bound the exponential backoff
	// between read retries. Defaults are 200ms and 2s.
	RetryBaseWait time.Duration
	RetryMaxWait  time.Duration

	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// DefaultConfig returns the client defaults: three read retries backed off
// between 200ms and 2s.
func DefaultConfig() Config {
	return Config{
		MaxRetries:    3,
		RetryBaseWait: 200 * time.Millisecond,
		RetryMaxWait:  2 * time.Second,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Resource, validation.Required),
		validation.Field(&c.MaxRetries, validation.Min(0)),
	)
}

// listEnvelope is the backend's list payload.
type listEnvelope[T any] struct {
	Documents []T `json:"documents"`
	Total     int `json:"total"`
}

// documentEnvelope is the backend's single-document payload.
type documentEnvelope[T any] struct {
	Document *T `json:"document"`
}

// Client fetches pages, stats, and field mutations for one collection.
// Reads are retried with exponential backoff on transport errors, 429, and
// 5xx; mutations are sent exactly once because the backend does not
// guarantee they are idempotent.
type Client[T any] struct {
	baseURL  string
	resource string

	http       *http.Client
	maxRetries int
	retryBase  time.Duration
	retryMax   time.Duration

	logger *zap.Logger
}

var _ remote.ListProvider[struct{}] = (*Client[struct{}])(nil)

// New builds a REST list provider for one collection.
func New[T any](cfg Config) (*Client[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.RetryBaseWait <= 0 {
		cfg.RetryBaseWait = 200 * time.Millisecond
	}
	if cfg.RetryMaxWait <= 0 {
		cfg.RetryMaxWait = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Client[T]{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		resource:   cfg.Resource,
		http:       cfg.HTTPClient,
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBaseWait,
		retryMax:   cfg.RetryMaxWait,
		logger:     cfg.Logger,
	}, nil
}

// FetchPage requests one page of the collection. Filter values travel as
// query parameters next to page and limit; empty values are dropped.
func (c *Client[T]) FetchPage(ctx context.Context, pageReq query.PageRequest) (remote.PageResult[T], error) {
	var zero remote.PageResult[T]

	params := url.Values{}
	params.Set("page", strconv.Itoa(pageReq.Page))
	params.Set("limit", strconv.Itoa(pageReq.Limit))
	for name, value := range pageReq.Filters {
		if value != "" {
			params.Set(name, value)
		}
	}

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, c.resource, params.Encode())

	var env listEnvelope[T]
	if err := c.getJSON(ctx, remote.OpFetchPage, endpoint, &env); err != nil {
		return zero, err
	}
	return remote.NewPageResult(env.Documents, env.Total, pageReq.Page, pageReq.Limit), nil
}

// FetchStats requests the collection's aggregate counters.
func (c *Client[T]) FetchStats(ctx context.Context) (remote.Stats, error) {
	endpoint := fmt.Sprintf("%s/%s/stats", c.baseURL, c.resource)

	var stats remote.Stats
	if err := c.getJSON(ctx, remote.OpFetchStats, endpoint, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MutateField patches one field of one document and returns the backend's
// authoritative version. It is sent exactly once.
func (c *Client[T]) MutateField(ctx context.Context, entityID, field string, value any) (*T, error) {
	body, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, remote.NewError(remote.OpMutateField, 0, "marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.resource, url.PathEscape(entityID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, remote.NewError(remote.OpMutateField, 0, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	c.logger.Debug("mutating field",
		zap.String("resource", c.resource),
		zap.String("entity_id", entityID),
		zap.String("field", field),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, remote.NewError(remote.OpMutateField, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(remote.OpMutateField, resp)
	}

	var env documentEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, remote.NewError(remote.OpMutateField, resp.StatusCode, "decode response", err)
	}
	return env.Document, nil
}

// getJSON performs a GET with retries and decodes the response into out.
func (c *Client[T]) getJSON(ctx context.Context, op, endpoint string, out any) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryBase
	bo.MaxInterval = c.retryMax
	bo.MaxElapsedTime = 0

	var lastErr error
	for attempt := 0; ; attempt++ {
		err := c.getOnce(ctx, op, endpoint, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var rerr *remote.Error
		if !errors.As(err, &rerr) || !rerr.Retryable() || attempt >= c.maxRetries {
			return err
		}

		wait := bo.NextBackOff()
		c.logger.Debug("retrying request",
			zap.String("op", op),
			zap.String("resource", c.resource),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return lastErr
		}
	}
}

func (c *Client[T]) getOnce(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return remote.NewError(op, 0, "build request", err)
	}
	c.setCommonHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return remote.NewError(op, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return remote.NewError(op, resp.StatusCode, "decode response", err)
	}
	return nil
}

func (c *Client[T]) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return remote.NewError(op, resp.StatusCode, msg, nil)
}
