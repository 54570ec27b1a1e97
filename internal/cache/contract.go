package cache

import (
	"context"
	"time"
)

// Store хранилище байтовых значений с TTL (память процесса или Redis)
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Metrics счётчики попаданий в кэш
type Metrics interface {
	IncCacheHit()
	IncCacheMiss()
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// RealClock системные часы
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
