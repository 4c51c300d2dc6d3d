// Package ratelimit guards the reset-request endpoint with a per-identifier
// sliding window, so one account cannot be flooded with codes.
package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow tracks request timestamps per key. Sliding (not fixed)
// windows prevent bursts straddling a window boundary.
type SlidingWindow struct {
	mu     sync.Mutex
	events map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		events: make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records the request and reports whether it fits the window.
func (s *SlidingWindow) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.cleanupLocked(key, now)

	if len(kept) >= s.limit {
		return false
	}
	s.events[key] = append(kept, now)
	return true
}

// cleanupLocked drops timestamps older than the window. Must be called while
// holding s.mu.
func (s *SlidingWindow) cleanupLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-s.window)
	stamps := s.events[key]
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	kept := stamps[i:]
	if len(kept) == 0 {
		delete(s.events, key)
	} else if i > 0 {
		s.events[key] = kept
	}
	return kept
}
