package idempotency

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryService is an in-process IdempotencyService for tests and local
// runs. It mirrors the Redis semantics: set-if-absent locks with TTL expiry
// and TTL'd result records.
type MemoryService struct {
	mu      sync.Mutex
	locks   map[string]time.Time
	results map[string]memoryEntry
	lockTTL time.Duration
	now     func() time.Time
}

// NewMemoryService creates a new in-memory idempotency service
func NewMemoryService(lockTTL time.Duration) *MemoryService {
	return &MemoryService{
		locks:   make(map[string]time.Time),
		results: make(map[string]memoryEntry),
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

func (s *MemoryService) AcquireLock(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiry, held := s.locks[key]; held && s.now().Before(expiry) {
		return false, nil
	}
	s.locks[key] = s.now().Add(s.lockTTL)
	return true, nil
}

func (s *MemoryService) ReleaseLock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)
	return nil
}

func (s *MemoryService) GetResult(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.results[key]
	if !ok {
		return "", false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.results, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryService) SaveResult(_ context.Context, key, paymentID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[key] = memoryEntry{
		value:     paymentID,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}
