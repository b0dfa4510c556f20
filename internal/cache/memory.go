package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	key string
	ts  time.Time
}

type item struct {
	value string
	ts    time.Time
	ttl   time.Duration
}

// Memory keeps a bounded set of recent entries in process.
type Memory struct {
	mu         sync.Mutex
	items      map[string]item
	order      []entry
	capacity   int
	defaultTTL time.Duration
	closed     bool
}

// NewMemory creates a cache holding at most capacity entries.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Memory{
		items:      make(map[string]item, capacity),
		order:      make([]entry, 0, capacity),
		capacity:   capacity,
		defaultTTL: ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrClosed
	}
	it, ok := m.items[key]
	if !ok || time.Now().Sub(it.ts) > it.ttl {
		return "", ErrNotFound
	}
	return it.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.items[key] = item{value: value, ts: now, ttl: ttl}
	m.order = append(m.order, entry{key: key, ts: now})
	m.compact(now)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.items = nil
	m.order = nil
	return nil
}

// compact evicts the oldest entries while over capacity or expired.
func (m *Memory) compact(now time.Time) {
	for len(m.order) > 0 {
		oldest := m.order[0]
		it, ok := m.items[oldest.key]
		stale := !ok || it.ts != oldest.ts
		expired := ok && now.Sub(it.ts) > it.ttl
		if !stale && !expired && len(m.items) <= m.capacity {
			return
		}
		m.order = m.order[1:]
		if !stale {
			delete(m.items, oldest.key)
		}
	}
}
