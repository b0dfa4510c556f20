// Package llm runs prompts against an ordered list of interchangeable
// text-generation backends.
//
// A backend that fails once is marked unavailable for the rest of the run and
// is never retried; the next backend in order is tried instead. The unavailable
// set is shared by every goroutine using the same Pool.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/cache"
	"github.com/DeafMist/job-radar/internal/dedupe"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
)

// CacheBackend is the backend name reported for answers served from the cache.
const CacheBackend = "cache"

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Backend is one named generator, e.g. "groq:llama-3.1-8b-instant".
type Backend struct {
	Name      string
	Generator Generator
}

// Answer is generated text and the backend that produced it.
type Answer struct {
	Text    string
	Backend string
}

// Pool tries backends in order for every prompt.
type Pool struct {
	backends    []Backend
	unavailable *dedupe.Set
	timeout     time.Duration
	cache       cache.Cache
	cacheTTL    time.Duration
	log         *zap.Logger
}

type Option func(*Pool)

// WithTimeout bounds every single backend call.
func WithTimeout(d time.Duration) Option {
	return func(p *Pool) {
		p.timeout = d
	}
}

// WithCache consults c before calling any backend and stores fresh answers in it.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(p *Pool) {
		p.cache = c
		p.cacheTTL = ttl
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPool creates a pool over backends, tried in the given order.
func NewPool(backends []Backend, opts ...Option) *Pool {
	p := &Pool{
		backends:    append([]Backend(nil), backends...),
		unavailable: dedupe.NewSet(),
		timeout:     60 * time.Second,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Names lists the configured backends in order.
func (p *Pool) Names() []string {
	out := make([]string, 0, len(p.backends))
	for _, b := range p.backends {
		out = append(out, b.Name)
	}
	return out
}

// Unavailable lists the backends marked unavailable, in the order they failed.
func (p *Pool) Unavailable() []string {
	return p.unavailable.Keys()
}

// Generate returns the first non-empty answer. When every backend is
// unavailable or returns nothing it fails with an UNAVAILABLE domain error.
func (p *Pool) Generate(ctx context.Context, prompt string) (Answer, error) {
	key := cache.Key(prompt)
	if p.cache != nil {
		if text, err := p.cache.Get(ctx, key); err == nil {
			return Answer{Text: text, Backend: CacheBackend}, nil
		}
	}

	for _, b := range p.backends {
		if p.unavailable.Contains(b.Name) {
			continue
		}

		text, err := p.call(ctx, b, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return Answer{}, fmt.Errorf("generate: %w", ctx.Err())
			}
			if p.unavailable.Add(b.Name) {
				p.log.Error("backend marked unavailable", zap.String("backend", b.Name), zap.Error(err))
			}
			continue
		}
		if strings.TrimSpace(text) == "" {
			p.log.Warn("backend returned empty text", zap.String("backend", b.Name))
			continue
		}

		if p.cache != nil {
			if err := p.cache.Set(ctx, key, text, p.cacheTTL); err != nil {
				p.log.Warn("cache set failed", zap.Error(err))
			}
		}
		return Answer{Text: text, Backend: b.Name}, nil
	}

	return Answer{}, domainerrors.Unavailable("no backend returned text", nil)
}

func (p *Pool) call(ctx context.Context, b Backend, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return b.Generator.Generate(ctx, prompt)
}
