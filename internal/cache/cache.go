package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// envelope формат значения в хранилище. Срок жизни проверяется при чтении,
// поэтому запись после истечения TTL считается промахом, даже если хранилище её ещё держит
type envelope[T any] struct {
	Value     T         `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Cache типизированный кэш поверх Store
type Cache[T any] struct {
	store   Store
	prefix  string
	clock   Clock
	metrics Metrics
}

type Option func(*options)

type options struct {
	clock   Clock
	metrics Metrics
}

// WithClock задаёт источник времени (для тестов)
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithMetrics включает счётчики hit/miss
func WithMetrics(m Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New создаёт кэш для значений типа T. Ключи получают префикс prefix
func New[T any](store Store, prefix string, opts ...Option) *Cache[T] {
	o := options{clock: RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		store:   store,
		prefix:  prefix,
		clock:   o.clock,
		metrics: o.metrics,
	}
}

// Get возвращает значение и признак попадания
func (c *Cache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T

	raw, ok, err := c.store.Get(ctx, c.key(key))
	if err != nil {
		return zero, false, fmt.Errorf("%w: get %s: %v", ErrStore, key, err)
	}
	if !ok {
		c.miss()
		return zero, false, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, false, fmt.Errorf("%w: %s: %v", ErrCodec, key, err)
	}

	if !c.clock.Now().Before(env.ExpiresAt) {
		c.miss()
		return zero, false, nil
	}

	c.hit()
	return env.Value, true, nil
}

// Set сохраняет значение на ttl. Бессрочные записи не поддерживаются
func (c *Cache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	raw, err := json.Marshal(envelope[T]{Value: value, ExpiresAt: c.clock.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCodec, key, err)
	}

	if err := c.store.Set(ctx, c.key(key), raw, ttl); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, key, err)
	}
	return nil
}

// Invalidate удаляет значения по ключам
func (c *Cache[T]) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = c.key(key)
	}
	if err := c.store.Delete(ctx, full...); err != nil {
		return fmt.Errorf("%w: delete %v: %v", ErrStore, keys, err)
	}
	return nil
}

// GetOrLoad возвращает значение из кэша или вызывает load и кэширует результат.
// Ошибка load возвращается как есть и ничего не кэширует
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if ttl <= 0 {
		return zero, ErrInvalidTTL
	}

	value, ok, err := c.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		return value, nil
	}

	value, err = load(ctx)
	if err != nil {
		return zero, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return zero, err
	}
	return value, nil
}

func (c *Cache[T]) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *Cache[T]) hit() {
	if c.metrics != nil {
		c.metrics.IncCacheHit()
	}
}

func (c *Cache[T]) miss() {
	if c.metrics != nil {
		c.metrics.IncCacheMiss()
	}
}
