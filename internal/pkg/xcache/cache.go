package xcache

import (
	"context"
	"fmt"
	"time"

	cachelib "github.com/eko/gocache/lib/v4/cache"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
	redis "github.com/redis/go-redis/v9"

	"github.com/cowrite/cowrite/internal/log"
	lru_store "github.com/cowrite/cowrite/internal/pkg/xcache/lru"
	redis_store "github.com/cowrite/cowrite/internal/pkg/xcache/redis"
	"github.com/cowrite/cowrite/internal/pkg/xredis"
)

// Cache is the gocache cache interface: Get, Set, Delete, Invalidate, Clear and GetType.
type Cache[T any] = cachelib.CacheInterface[T]

type SetterCache[T any] = cachelib.SetterCacheInterface[T]

// NewMemory creates an in-memory cache backed by patrickmn/go-cache.
func NewMemory[T any](client *gocache.Cache, options ...Option) SetterCache[T] {
	return cachelib.New[T](gocache_store.NewGoCache(client, options...))
}

// NewBoundedMemory creates an in-memory cache holding at most size entries.
func NewBoundedMemory[T any](size int, expiration time.Duration) SetterCache[T] {
	return cachelib.New[T](lru_store.NewStore(size, expiration))
}

// NewRedis creates a redis cache whose keys start with prefix.
func NewRedis[T any](client redis.UniversalClient, prefix string, options ...Option) SetterCache[T] {
	return cachelib.New[T](redis_store.NewStore[T](client, prefix, options...))
}

// NewTwoLevel reads from memory first and falls back to redis, filling memory on a hit.
func NewTwoLevel[T any](memory, redis SetterCache[T]) Cache[T] {
	return cachelib.NewChain[T](memory, redis)
}

// NewFromConfig builds a typed cache from cfg. An empty or unknown mode
// yields a noop cache.
func NewFromConfig[T any](ctx context.Context, cfg Config) (Cache[T], error) {
	switch cfg.Mode {
	case ModeMemory:
		log.Info(ctx, "using memory cache")
		return newMemoryFromConfig[T](cfg.Memory), nil
	case ModeRedis, ModeTwoLevel:
	default:
		log.Info(ctx, "cache disabled", log.String("mode", cfg.Mode))
		return NewNoop[T](), nil
	}

	client, err := xredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("invalid redis cache config: %w", err)
	}

	rds := NewRedis[T](client, cfg.KeyPrefix, WithExpiration(defaultIfZero(cfg.Redis.Expiration, 30*time.Minute)))

	if cfg.Mode == ModeRedis {
		log.Info(ctx, "using redis cache")
		return rds, nil
	}

	log.Info(ctx, "using two-level cache")

	return NewTwoLevel(newMemoryFromConfig[T](cfg.Memory), rds), nil
}

func newMemoryFromConfig[T any](cfg MemoryConfig) SetterCache[T] {
	expiration := defaultIfZero(cfg.Expiration, 5*time.Minute)

	if cfg.MaxEntries > 0 {
		return NewBoundedMemory[T](cfg.MaxEntries, expiration)
	}

	cleanup := defaultIfZero(cfg.CleanupInterval, 10*time.Minute)

	return NewMemory[T](gocache.New(expiration, cleanup), WithExpiration(expiration))
}

func defaultIfZero(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}

	return d
}
