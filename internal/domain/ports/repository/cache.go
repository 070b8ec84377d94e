package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by KVCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// KVCache is a minimal expiring key-value cache. Entries are read-only once
// written; they simply expire.
type KVCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
