// Package lru implements a size bounded gocache store on top of an expirable
// LRU. Every entry shares the TTL given at construction.
package lru

import (
	"context"
	"errors"
	"fmt"
	"time"

	lib_store "github.com/eko/gocache/lib/v4/store"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// StoreType is reported by GetType.
const StoreType = "lru"

var errMiss = errors.New("lru: no such key")

type Store struct {
	cache *expirable.LRU[string, any]
	ttl   time.Duration
}

// NewStore keeps at most size entries, each for ttl. A zero ttl never expires.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, any](size, nil, ttl),
		ttl:   ttl,
	}
}

func (s *Store) Get(_ context.Context, key any) (any, error) {
	k, err := stringKey(key)
	if err != nil {
		return nil, lib_store.NotFoundWithCause(err)
	}

	value, ok := s.cache.Get(k)
	if !ok {
		return nil, lib_store.NotFoundWithCause(errMiss)
	}

	return value, nil
}

// GetWithTTL reports the store TTL, not the time left on the entry.
func (s *Store) GetWithTTL(ctx context.Context, key any) (any, time.Duration, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	return value, s.ttl, nil
}

// Set ignores per-call expiration options.
func (s *Store) Set(_ context.Context, key any, value any, _ ...lib_store.Option) error {
	k, err := stringKey(key)
	if err != nil {
		return err
	}

	s.cache.Add(k, value)

	return nil
}

func (s *Store) Delete(_ context.Context, key any) error {
	k, err := stringKey(key)
	if err != nil {
		return err
	}

	s.cache.Remove(k)

	return nil
}

// Invalidate drops every entry; tags are not supported.
func (s *Store) Invalidate(ctx context.Context, _ ...lib_store.InvalidateOption) error {
	return s.Clear(ctx)
}

func (s *Store) Clear(_ context.Context) error {
	s.cache.Purge()
	return nil
}

func (s *Store) GetType() string {
	return StoreType
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return s.cache.Len()
}

func stringKey(key any) (string, error) {
	k, ok := key.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %T", key)
	}

	return k, nil
}
