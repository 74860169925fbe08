package adapter

import (
	"container/list"
	"context"
	"sync"
	"time"

	"navprep/internal/domain"
)

// MemoryCacheAdapter implements domain.Cache with an in-process map bounded
// by entry count. When the capacity is exceeded the least recently used
// entry is evicted. Expired entries are dropped lazily on access.
// Safe for concurrent use.
type MemoryCacheAdapter struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time // zero means no expiration
}

// NewMemoryCacheAdapter creates an in-memory cache bounded to capacity
// entries. A non-positive capacity defaults to 500.
func NewMemoryCacheAdapter(capacity int) *MemoryCacheAdapter {
	if capacity <= 0 {
		capacity = 500
	}
	return &MemoryCacheAdapter{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (m *MemoryCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.order.Remove(elem)
		delete(m.entries, key)
		return "", domain.ErrCacheMiss
	}
	m.order.MoveToFront(elem)
	return entry.value, nil
}

func (m *MemoryCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	if elem, ok := m.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		m.order.MoveToFront(elem)
		return nil
	}

	elem := m.order.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	m.entries[key] = elem

	if m.order.Len() > m.capacity {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).key)
		}
	}
	return nil
}

func (m *MemoryCacheAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.entries[key]; ok {
		m.order.Remove(elem)
		delete(m.entries, key)
	}
	return nil
}

func (m *MemoryCacheAdapter) Ping(ctx context.Context) error {
	return nil
}

// Len reports the current number of live entries, counting expired entries
// that have not been touched yet.
func (m *MemoryCacheAdapter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

var _ domain.Cache = (*MemoryCacheAdapter)(nil)
