package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps request timestamps in process memory. Limits are per
// instance; use RedisStore when running more than one.
type MemoryStore struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	now     func() time.Time
}

type clientWindow struct {
	timestamps []time.Time
}

// NewMemoryStore creates a MemoryStore. Stale keys are pruned every interval
// until ctx is done.
func NewMemoryStore(ctx context.Context, interval, window time.Duration) *MemoryStore {
	s := &MemoryStore{
		clients: make(map[string]*clientWindow),
		now:     time.Now,
	}
	go s.cleanupLoop(ctx, interval, window)
	return s
}

var _ Store = (*MemoryStore)(nil)

// cleanupLoop periodically removes stale entries from the clients map.
func (s *MemoryStore) cleanupLoop(ctx context.Context, interval, window time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune(window)
		}
	}
}

func (s *MemoryStore) prune(window time.Duration) {
	windowStart := s.now().Add(-window)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, cw := range s.clients {
		cw.timestamps = within(cw.timestamps, windowStart)
		if len(cw.timestamps) == 0 {
			delete(s.clients, key)
		}
	}
}

// Allow implements Store.
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	now := s.now()
	windowStart := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	cw, ok := s.clients[key]
	if !ok {
		cw = &clientWindow{}
		s.clients[key] = cw
	}
	cw.timestamps = within(cw.timestamps, windowStart)

	if len(cw.timestamps) >= limit {
		if len(cw.timestamps) == 0 {
			return Decision{RetryAfter: window}, nil
		}
		oldest := cw.timestamps[0]
		return Decision{RetryAfter: oldest.Add(window).Sub(now)}, nil
	}

	cw.timestamps = append(cw.timestamps, now)
	return Decision{Allowed: true}, nil
}

// within filters in place, keeping timestamps after windowStart.
func within(ts []time.Time, windowStart time.Time) []time.Time {
	valid := ts[:0]
	for _, t := range ts {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}
