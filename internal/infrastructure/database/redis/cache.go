package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"math/rand"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/pkg/errors"
)

var ErrCacheMiss = errors.NotFound("cache miss")

// Loader produces the value for a key on a miss.
type Loader func(ctx context.Context) (string, error)

// Cache stores rendered artefacts (SVG depictions, fingerprint bit strings)
// keyed by a digest of their inputs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// GetOrLoad returns the cached value or runs load once per key across
	// concurrent callers.  Backend failures fall through to load.
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load Loader) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
	Ping(ctx context.Context) error
}

// Observer receives cache hit, miss and error counts.
type Observer interface {
	RecordCacheAccess(cache string, hit bool)
	RecordCacheError(cache string)
}

type nopObserver struct{}

func (nopObserver) RecordCacheAccess(string, bool) {}
func (nopObserver) RecordCacheError(string)        {}

type redisCache struct {
	client     *Client
	logger     logging.Logger
	name       string
	prefix     string
	defaultTTL time.Duration
	observer   Observer
	group      singleflight.Group
}

type CacheOption func(*redisCache)

func WithPrefix(prefix string) CacheOption {
	return func(c *redisCache) { c.prefix = prefix }
}

func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *redisCache) { c.defaultTTL = ttl }
}

// WithName sets the label used for metrics; defaults to "rdkit".
func WithName(name string) CacheOption {
	return func(c *redisCache) { c.name = name }
}

func WithObserver(o Observer) CacheOption {
	return func(c *redisCache) {
		if o != nil {
			c.observer = o
		}
	}
}

func NewRedisCache(client *Client, log logging.Logger, opts ...CacheOption) Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &redisCache{
		client:     client,
		logger:     log.Named("cache"),
		name:       "rdkit",
		prefix:     "rdkit:",
		defaultTTL: time.Hour,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a cache key of the form "<kind>:<sha256 of parts>".
func Key(kind string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return kind + ":" + hex.EncodeToString(sum[:])
}

func (c *redisCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expiry by +/- 10%.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.fullKey(key)).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.fullKey(key), value, jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to set cache")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	return c.client.Del(ctx, full...).Err()
}

func (c *redisCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load Loader) (string, error) {
	val, err := c.Get(ctx, key)
	switch {
	case err == nil:
		c.observer.RecordCacheAccess(c.name, true)
		return val, nil
	case err != ErrCacheMiss:
		c.observer.RecordCacheError(c.name)
		c.logger.Warn("cache read failed, loading from source", logging.String("key", key), logging.Err(err))
	default:
		c.observer.RecordCacheAccess(c.name, false)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		loaded, loadErr := load(ctx)
		if loadErr != nil {
			return "", loadErr
		}
		if setErr := c.Set(ctx, key, loaded, ttl); setErr != nil {
			c.observer.RecordCacheError(c.name)
			c.logger.Warn("failed to populate cache", logging.String("key", key), logging.Err(setErr))
		}
		return loaded, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *redisCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var deleted int64
	var cursor uint64
	match := c.fullKey(prefix) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += int64(len(keys))
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

// NopCache is used when redis is disabled.  Every lookup misses and
// GetOrLoad always runs the loader.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (string, error)              { return "", ErrCacheMiss }
func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error                  { return nil }
func (NopCache) DeleteByPrefix(context.Context, string) (int64, error)    { return 0, nil }
func (NopCache) Ping(context.Context) error                               { return nil }
func (NopCache) GetOrLoad(ctx context.Context, _ string, _ time.Duration, load Loader) (string, error) {
	return load(ctx)
}

//Personal.AI order the ending
