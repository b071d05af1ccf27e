package sets

import "sync"

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes v if present.
func (s Set[T]) Delete(v T) { delete(s, v) }

// SyncSet is a Set guarded by a mutex, safe for use from several workers.
// The zero value is ready to use.
type SyncSet[T comparable] struct {
	mu sync.Mutex
	m  Set[T]
}

// NewSync creates an empty SyncSet.
func NewSync[T comparable]() *SyncSet[T] {
	return &SyncSet[T]{m: New[T]()}
}

// AddIfAbsent inserts v and reports whether it was newly added.
// Check and insert happen under one lock, so exactly one caller wins for v.
func (s *SyncSet[T]) AddIfAbsent(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = New[T]()
	}
	if s.m.Has(v) {
		return false
	}
	s.m.Add(v)
	return true
}

// Has returns true if v is present.
func (s *SyncSet[T]) Has(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Has(v)
}

// Len returns the number of members.
func (s *SyncSet[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
