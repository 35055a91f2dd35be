package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/todo-api/internal/domain/auth"
	"github.com/yanqian/todo-api/pkg/util"
)

type counter struct {
	failures  int
	expiresAt time.Time
}

// MemoryStore counts failed logins in process memory for tests/dev.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]counter
	now      util.Clock
}

// NewMemoryStore constructs a store. A nil clock uses util.NowUTC.
func NewMemoryStore(clock util.Clock) *MemoryStore {
	if clock == nil {
		clock = util.NowUTC
	}
	return &MemoryStore{
		counters: make(map[string]counter),
		now:      clock,
	}
}

// Failures reports the failures recorded for key in the current window.
func (s *MemoryStore) Failures(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.live(key)
	if !ok {
		return 0, nil
	}
	return entry.failures, nil
}

// RecordFailure bumps the counter for key.
func (s *MemoryStore) RecordFailure(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.live(key)
	if !ok {
		entry = counter{expiresAt: s.now().Add(window)}
	}
	entry.failures++
	s.counters[key] = entry
	return entry.failures, nil
}

// Reset forgets the failures for key.
func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, key)
	return nil
}

// live returns the unexpired counter for key. Callers hold mu.
func (s *MemoryStore) live(key string) (counter, bool) {
	entry, ok := s.counters[key]
	if !ok {
		return counter{}, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.counters, key)
		return counter{}, false
	}
	return entry, true
}

var _ auth.AttemptStore = (*MemoryStore)(nil)
