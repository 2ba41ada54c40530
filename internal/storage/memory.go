package storage

import (
	"context"
	"sync"
)

// MemoryPutter stores blob content in-memory for development and tests.
type MemoryPutter struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemoryPutter creates an empty in-memory blob putter.
func NewMemoryPutter() *MemoryPutter {
	return &MemoryPutter{
		buckets: make(map[string]map[string][]byte),
	}
}

// Put records the object content, creating the bucket on first use.
func (m *MemoryPutter) Put(_ context.Context, bucket, object string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.buckets[bucket] == nil {
		m.buckets[bucket] = make(map[string][]byte)
	}
	m.buckets[bucket][object] = append([]byte(nil), data...)
	return nil
}

// Get returns the stored content for an object, if present.
func (m *MemoryPutter) Get(bucket, object string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.buckets[bucket][object]
	return data, ok
}

// Objects lists the object names in a bucket.
func (m *MemoryPutter) Objects(bucket string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.buckets[bucket]))
	for name := range m.buckets[bucket] {
		names = append(names, name)
	}
	return names
}
