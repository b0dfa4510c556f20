package dedupe

import "sync"

// Set records keys in first-seen order. It is safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	items map[string]struct{}
	order []string
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{items: make(map[string]struct{})}
}

// Add records key and reports whether it was not present before. Concurrent
// callers adding the same key observe true exactly once.
func (s *Set) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

// Contains reports whether key has been added.
func (s *Set) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[key]
	return ok
}

// Len returns the number of distinct keys.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys returns the keys in the order they were first added.
func (s *Set) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}
