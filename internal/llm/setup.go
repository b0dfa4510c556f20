package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/cache"
	"github.com/DeafMist/job-radar/internal/config"
)

// Open builds the backend pool and its cache from cfg. The returned cache must
// be closed by the caller.
func Open(ctx context.Context, cfg *config.Generation, log *zap.Logger) (*Pool, cache.Cache, error) {
	if log == nil {
		log = zap.NewNop()
	}
	specs, err := ParseSpecs(cfg.Backends)
	if err != nil {
		return nil, nil, fmt.Errorf("parse LLM_BACKENDS: %w", err)
	}

	backends, err := NewBackends(ctx, specs, Credentials{
		GroqAPIKey:   cfg.GroqAPIKey,
		GroqBaseURL:  cfg.GroqBaseURL,
		GeminiAPIKey: cfg.GeminiAPIKey,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	if len(backends) == 0 {
		log.Warn("no text generation backend configured")
	}

	opts := cache.DefaultOptions()
	opts.DefaultTTL = cfg.CacheTTL
	opts.RedisAddr = cfg.RedisAddr
	opts.RedisPassword = cfg.RedisPassword
	opts.RedisDB = cfg.RedisDB
	c := cache.New(opts)

	pool := NewPool(backends,
		WithTimeout(cfg.Timeout),
		WithCache(c, cfg.CacheTTL),
		WithLogger(log),
	)
	log.Info("backend pool ready", zap.Strings("backends", pool.Names()))
	return pool, c, nil
}
