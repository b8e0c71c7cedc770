package cache

import (
	"strings"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	data      V
	timestamp time.Time
}

// Memory is a process-local TTL cache. An entry is fresh while
// now - timestamp < ttl. When maxEntries is reached the oldest entry is
// evicted to make room.
type Memory[V any] struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type MemoryOption[V any] func(*Memory[V])

// WithClock replaces time.Now, letting tests move time deterministically.
func WithClock[V any](now func() time.Time) MemoryOption[V] {
	return func(m *Memory[V]) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMaxEntries bounds the number of stored entries; 0 disables the bound.
func WithMaxEntries[V any](n int) MemoryOption[V] {
	return func(m *Memory[V]) {
		if n >= 0 {
			m.maxEntries = n
		}
	}
}

func NewMemory[V any](ttl time.Duration, opts ...MemoryOption[V]) *Memory[V] {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	m := &Memory[V]{
		entries: make(map[string]memoryEntry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if m.now().Sub(e.timestamp) >= m.ttl {
		return zero, false
	}
	return e.data, true
}

func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictLocked()
	}
	m.entries[key] = memoryEntry[V]{data: value, timestamp: m.now()}
}

// SetIfAbsent stores value unless a fresh entry already exists under key. It
// reports whether the value was stored.
func (m *Memory[V]) SetIfAbsent(key string, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[key]; ok && now.Sub(e.timestamp) < m.ttl {
		return false
	}
	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictLocked()
	}
	m.entries[key] = memoryEntry[V]{data: value, timestamp: now}
	return true
}

func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// DeleteContaining removes every key containing substr and returns how many
// entries were removed.
func (m *Memory[V]) DeleteContaining(substr string) int {
	if substr == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k := range m.entries {
		if strings.Contains(k, substr) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory[V]) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for k, e := range m.entries {
		if now.Sub(e.timestamp) >= m.ttl {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// evictLocked removes an expired entry if one exists, else the oldest. O(n),
// only reached when the cache is full.
func (m *Memory[V]) evictLocked() {
	now := m.now()
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range m.entries {
		if now.Sub(e.timestamp) >= m.ttl {
			delete(m.entries, k)
			return
		}
		if first || e.timestamp.Before(oldest) {
			oldestKey, oldest, first = k, e.timestamp, false
		}
	}
	if !first {
		delete(m.entries, oldestKey)
	}
}
