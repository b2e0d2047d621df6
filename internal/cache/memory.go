package cache

import (
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded TTL map, used when Redis is disabled.
// Entries are dropped lazily on read and swept opportunistically on write.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

var defaultMemory = NewMemoryStore()

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
}

// SetClock overrides the time source, for expiry tests.
func (s *MemoryStore) SetClock(clock func() time.Time) {
	if clock == nil {
		return
	}
	s.mu.Lock()
	s.clock = clock
	s.mu.Unlock()
}

// Get returns the stored payload if it has not expired.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.clock().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return entry.payload, true
}

// Set stores payload under key for ttl.
func (s *MemoryStore) Set(key string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	// Occasional sweep keeps the map from accumulating dead entries.
	if len(s.entries) > 0 && len(s.entries)%64 == 0 {
		for k, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, k)
			}
		}
	}
	s.entries[key] = memoryEntry{payload: payload, expiresAt: now.Add(ttl)}
}

// Del removes key.
func (s *MemoryStore) Del(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of live and dead entries currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
