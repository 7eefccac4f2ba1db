package kmb

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Store is an append-only key-value store for upstream payloads, keyed by
// request URL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryStore is an in-memory Store. Entries live as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get returns the stored value for key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	return v, ok, nil
}

// Set stores a value.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Persistent memoizes a Fetcher in a Store with no expiry. Empty results
// are not stored, so a failed request is retried on the next render.
type Persistent struct {
	store  Store
	next   Fetcher
	logger *slog.Logger
}

// NewPersistent wraps next with a Store-backed cache.
func NewPersistent(store Store, next Fetcher, logger *slog.Logger) *Persistent {
	return &Persistent{store: store, next: next, logger: logger}
}

// Fetch returns the cached payload for url, fetching it on a miss.
func (p *Persistent) Fetch(ctx context.Context, url string) json.RawMessage {
	cached, ok, err := p.store.Get(ctx, url)
	if err != nil {
		p.logger.Warn("cache read failed", "url", url, "error", err)
	} else if ok {
		return cached
	}

	data := p.next.Fetch(ctx, url)
	if len(data) == 0 {
		return nil
	}
	if err := p.store.Set(ctx, url, data); err != nil {
		p.logger.Warn("cache write failed", "url", url, "error", err)
	}
	return data
}

// PassThrough never caches. Used for live ETAs.
type PassThrough struct {
	next Fetcher
}

// NewPassThrough wraps next without caching.
func NewPassThrough(next Fetcher) PassThrough {
	return PassThrough{next: next}
}

// Fetch always calls the wrapped Fetcher.
func (p PassThrough) Fetch(ctx context.Context, url string) json.RawMessage {
	return p.next.Fetch(ctx, url)
}
