// Package cache stores generated text keyed by prompt so repeated prompts skip
// the text-generation backends.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("key not found in cache")
	ErrClosed   = errors.New("cache is closed")
)

// Cache is a string store with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Options configures the cache implementations.
type Options struct {
	DefaultTTL    time.Duration
	Capacity      int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// DefaultOptions returns a one week TTL and room for 10k in-process entries.
func DefaultOptions() Options {
	return Options{
		DefaultTTL: 168 * time.Hour,
		Capacity:   10000,
	}
}

// Key derives the cache key for a prompt.
func Key(prompt string) string {
	sum := sha1.Sum([]byte(prompt))
	return "llm:" + hex.EncodeToString(sum[:])
}

// New returns a Redis cache when an address is configured, otherwise an
// in-process one.
func New(opts Options) Cache {
	if opts.RedisAddr != "" {
		return NewRedis(opts)
	}
	return NewMemory(opts.Capacity, opts.DefaultTTL)
}
