// Package cache stores rendered chart output keyed by the inputs that produced it.
package cache

import (
	"container/list"
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxEntries bounds a Memory cache built without an explicit size.
const DefaultMaxEntries = 512

// Store is the cache contract used by the HTTP layer.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Key hashes the canonical parts of a request into a compact cache key.
func Key(prefix string, parts ...string) string {
	digest := xxhash.New()
	for _, part := range parts {
		_, _ = digest.WriteString(part)
		_, _ = digest.WriteString("\x00")
	}
	return prefix + ":" + strconv.FormatUint(digest.Sum64(), 16)
}

// Memory is an in-process Store used when no Redis address is configured. Entries
// expire after ttl (zero keeps them) and the least recently used entry is evicted
// once maxEntries is reached.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	order      *list.List
	items      map[string]*list.Element
	now        func() time.Time
}

type memoryEntry struct {
	key     string
	value   string
	expires time.Time
}

func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return "", false
	}
	entry := el.Value.(*memoryEntry)
	if m.expired(entry) {
		m.remove(el)
		return "", false
	}
	m.order.MoveToFront(el)
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expires time.Time
	if m.ttl > 0 {
		expires = m.now().Add(m.ttl)
	}

	if el, ok := m.items[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.value, entry.expires = value, expires
		m.order.MoveToFront(el)
		return nil
	}

	for m.order.Len() >= m.maxEntries {
		m.remove(m.order.Back())
	}
	m.items[key] = m.order.PushFront(&memoryEntry{key: key, value: value, expires: expires})
	return nil
}

// Len reports the number of cached entries, expired ones included until they are touched.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) expired(e *memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

func (m *Memory) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.items, el.Value.(*memoryEntry).key)
}
