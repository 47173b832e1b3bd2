package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultTTL      = time.Hour
	scanBatchSize   = 100
	keySeparator    = ":"
	defaultKeySpace = "boxsdk"
)

var (
	ErrKeyNotFound     = errors.New("cache: key not found")
	ErrEmptyKey        = errors.New("cache: key must not be empty")
	ErrCacheMarshal    = errors.New("cache: failed to marshal value")
	ErrCacheUnmarshal  = errors.New("cache: failed to unmarshal value")
	ErrCacheGet        = errors.New("cache: failed to get")
	ErrCacheSet        = errors.New("cache: failed to set")
	ErrCacheDelete     = errors.New("cache: failed to delete")
	ErrCacheInvalidate = errors.New("cache: failed to invalidate")
)

// Loader fetches a value on a cache miss.
type Loader[V any] func(ctx context.Context) (*V, error)

// Cache stores JSON-encoded values under "<keyspace>:<namespace>:<key>",
// each entry with its own TTL.
type Cache[V any] struct {
	client    redis.UniversalClient
	ttl       time.Duration
	namespace string
}

func New[V any](client redis.UniversalClient, namespace string, ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Cache[V]{
		client:    client,
		ttl:       ttl,
		namespace: defaultKeySpace + keySeparator + namespace,
	}
}

func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) key(id string) (string, error) {
	if id == "" {
		return "", ErrEmptyKey
	}

	return c.namespace + keySeparator + id, nil
}

func (c *Cache[V]) Get(ctx context.Context, id string) (*V, error) {
	key, err := c.key(id)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}

		return nil, fmt.Errorf("%w: %w", ErrCacheGet, err)
	}

	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheUnmarshal, err)
	}

	return &value, nil
}

func (c *Cache[V]) Set(ctx context.Context, id string, value *V) error {
	key, err := c.key(id)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheMarshal, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSet, err)
	}

	return nil
}

func (c *Cache[V]) Delete(ctx context.Context, id string) error {
	key, err := c.key(id)
	if err != nil {
		return err
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheDelete, err)
	}

	return nil
}

// Invalidate removes every entry in the namespace.
func (c *Cache[V]) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.namespace+keySeparator+"*", scanBatchSize).Iterator()

	keys := make([]string, 0, scanBatchSize)

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheInvalidate, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheInvalidate, err)
	}

	return nil
}

// GetOrLoad returns the cached value or calls load and stores its result.
// Redis failures are logged and fall through to load; load errors are returned as is.
func (c *Cache[V]) GetOrLoad(ctx context.Context, id string, load Loader[V]) (*V, error) {
	value, err := c.Get(ctx, id)
	if err == nil {
		return value, nil
	}

	if !errors.Is(err, ErrKeyNotFound) {
		log.Warn().Err(err).Str("namespace", c.namespace).Str("key", id).Msg("Cache read failed, loading from source.")
	}

	value, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, id, value); err != nil {
		log.Warn().Err(err).Str("namespace", c.namespace).Str("key", id).Msg("Cache write failed.")
	}

	return value, nil
}
