package session

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/sushibar/internal/domain/repository"
)

// MemoryStore is a process-local store used when no Redis URL is configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	orders  map[string]memoryEntry[[]int64]
	flashes map[string]memoryEntry[[]repository.Flash]
}

type memoryEntry[T any] struct {
	value   T
	expires time.Time
}

// NewMemoryStore creates MemoryStore with provided TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		orders:  make(map[string]memoryEntry[[]int64]),
		flashes: make(map[string]memoryEntry[[]repository.Flash]),
	}
}

func (s *MemoryStore) SaveLastOrders(_ context.Context, sessionID string, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[sessionID] = memoryEntry[[]int64]{value: append([]int64(nil), ids...), expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) PopLastOrders(_ context.Context, sessionID string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.orders[sessionID]
	delete(s.orders, sessionID)
	if !ok || s.now().After(e.expires) {
		return nil, nil
	}
	return e.value, nil
}

func (s *MemoryStore) PushFlash(_ context.Context, sessionID string, level, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.flashes[sessionID]
	if s.now().After(e.expires) {
		e.value = nil
	}
	if len(e.value) < maxFlashes {
		e.value = append(e.value, repository.Flash{Level: level, Message: message})
	}
	e.expires = s.now().Add(s.ttl)
	s.flashes[sessionID] = e
	return nil
}

func (s *MemoryStore) PopFlashes(_ context.Context, sessionID string) ([]repository.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.flashes[sessionID]
	delete(s.flashes, sessionID)
	if !ok || s.now().After(e.expires) {
		return nil, nil
	}
	return e.value, nil
}
