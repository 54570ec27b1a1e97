package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore хранилище в памяти процесса
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	clock Clock
}

func NewMemoryStore(clock Clock) *MemoryStore {
	if clock == nil {
		clock = RealClock{}
	}
	return &MemoryStore{
		items: make(map[string]memoryItem),
		clock: clock,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !s.clock.Now().Before(item.expiresAt) {
		s.mu.Lock()
		if current, ok := s.items[key]; ok && current.expiresAt.Equal(item.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return item.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.items[key] = memoryItem{value: stored, expiresAt: s.clock.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil
}

// Len количество записей, включая ещё не вычищенные просроченные
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
