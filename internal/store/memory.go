// internal/store/memory.go
//
// In-memory implementation of the Cache interface.
//
// Characteristics:
//   - Stores rankings keyed by RankKey in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Optional TTL; expired entries are dropped lazily on Get.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
)

type memoryEntry struct {
	ranked  []entropy.RankedGuess
	expires time.Time // zero = never
}

// Memory is a map-based Cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ Cache = (*Memory)(nil)

// NewMemory constructs an in-memory cache. ttl <= 0 keeps entries forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached ranking.
func (m *Memory) Get(_ context.Context, key string) ([]entropy.RankedGuess, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && m.expired(e) {
		m.mu.Lock()
		// A Put may have replaced the entry since the read lock was released.
		if cur, still := m.entries[key]; still && m.expired(cur) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		ok = false
	}
	recordLookup("memory", ok)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(e.ranked), true, nil
}

func (m *Memory) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

// Put stores a copy of ranked.
func (m *Memory) Put(_ context.Context, key string, ranked []entropy.RankedGuess) error {
	e := memoryEntry{ranked: slices.Clone(ranked)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
