package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/events"
)

const keyPrefix = "portfolio:"

// ListingKey is the cache key of the public listing for kind.
func ListingKey(kind events.ContentKind) string {
	return keyPrefix + string(kind)
}

// Listings caches public read models. A nil *Listings or a zero TTL disables caching.
// An invalidation that lands while a listing is loading stops that load from being written back.
type Listings struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// NewListings builds the listing cache.
func NewListings(store Store, ttl time.Duration, logger *zap.Logger) *Listings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listings{store: store, ttl: ttl, logger: logger, generations: map[string]uint64{}}
}

func (l *Listings) enabled() bool {
	return l != nil && l.store != nil && l.ttl > 0
}

// GetOrLoad returns the cached value for key or calls load and caches its result.
// Store failures are logged and treated as misses.
func GetOrLoad[T any](ctx context.Context, l *Listings, key string, load func(context.Context) (T, error)) (T, error) {
	if !l.enabled() {
		return load(ctx)
	}

	raw, err := l.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		jsonErr := json.Unmarshal(raw, &cached)
		if jsonErr == nil {
			return cached, nil
		}
		l.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(jsonErr))
	case !errors.Is(err, ErrMiss):
		l.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	gen := l.generation(key)
	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		l.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return value, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generations[key] != gen {
		l.logger.Debug("listing invalidated during load; not caching", zap.String("key", key))
		return value, nil
	}
	if err := l.store.Set(ctx, key, data, l.ttl); err != nil {
		l.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

func (l *Listings) generation(key string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[key]
}

// Invalidate drops the cached listing for kind.
func (l *Listings) Invalidate(ctx context.Context, kind events.ContentKind) error {
	if l == nil || l.store == nil {
		return nil
	}
	key := ListingKey(kind)
	l.mu.Lock()
	l.generations[key]++
	l.mu.Unlock()
	return l.store.Delete(ctx, key)
}

// Subscribe wires invalidation to content_changed events.
func (l *Listings) Subscribe(dispatcher events.Dispatcher) {
	if dispatcher == nil || l == nil {
		return
	}
	dispatcher.Subscribe(events.EventContentChanged, l.handleContentChanged)
}

func (l *Listings) handleContentChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContentChangedPayload)
	if !ok {
		return nil
	}
	if err := l.Invalidate(ctx, payload.Kind); err != nil {
		return err
	}
	l.logger.Debug("listing cache invalidated",
		zap.String("kind", string(payload.Kind)),
		zap.String("action", string(payload.Action)),
	)
	return nil
}
