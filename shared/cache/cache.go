package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"hotel/infras/otel"
	"hotel/shared/dto"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	otelCacheHitAttribute = "cache.hit"

	otelCacheRemovedAttribute = "cache.removed"

	scanBatchSize = 100

	Nil = redis.Nil
)

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

// NewRedisCache wraps client. A nil client yields a cache that always misses.
func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	if client == nil {
		return disabledCache{}
	}

	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Clear removes every key under prefix. Keys are collected a scan page at a time and
// unlinked in batches.
func (cache *redisCache) Clear(ctx context.Context, prefix string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, prefix)

	removed := 0
	batch := make([]string, 0, scanBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := cache.client.Unlink(ctx, batch...).Err(); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Int("keys", len(batch)).Msg("failed to unlink cache keys")

			return fmt.Errorf("failed to delete cache values: %w", err)
		}

		removed += len(batch)
		batch = batch[:0]

		return nil
	}

	iter := cache.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == scanBatchSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if err = flush(); err != nil {
		return err
	}

	scope.SetAttribute(otelCacheRemovedAttribute, removed)

	return nil
}

// Delete implements RedisCache.
func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Str("key", key).Err(err).Str("RedisCache", "Delete").Msg("failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the value stored at key into value. A missing key returns an error
// satisfying IsMiss and is not traced as a failure.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	defer func() {
		scope.SetAttribute(otelCacheHitAttribute, err == nil)

		if !IsMiss(err) {
			scope.TraceIfError(err)
		}
	}()

	raw, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if target, ok := value.(*string); ok {
		*target = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save implements RedisCache.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	payload, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache saved")

	return nil
}

func encode(value any) ([]byte, error) {
	if text, ok := value.(string); ok {
		return []byte(text), nil
	}

	return json.Marshal(value) // nolint:wrapcheck
}

type disabledCache struct{}

func (disabledCache) Save(context.Context, string, any, int) error { return nil }

func (disabledCache) Get(context.Context, string, any) error { return Nil }

func (disabledCache) Delete(context.Context, string) error { return nil }

func (disabledCache) Clear(context.Context, string) error { return nil }

// IsMiss reports whether err only means the key was absent.
func IsMiss(err error) bool {
	return errors.Is(err, Nil)
}

// InvalidateCaches removes every key under the given prefixes, logging failures.
func InvalidateCaches(ctx context.Context, cache RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := cache.Clear(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}

// SaveAsync stores value in the background so the response is not held up by Redis.
// The request context's cancellation is dropped; its values are kept for tracing.
func SaveAsync(ctx context.Context, cache RedisCache, key string, value any, ttl int) {
	go func() {
		if err := cache.Save(context.WithoutCancel(ctx), key, value, ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to save cache")
		}
	}()
}

// BuildCacheKey joins prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery keys a listing by its window and a hash of its filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	hash := fnv.New64a()
	_, _ = fmt.Fprintf(hash, "%s|%v", where, args)

	return fmt.Sprintf("%s:%d:%d:%s:%x", prefix, params.Page, params.Limit, params.Status, hash.Sum64())
}
