package prefs

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

// MemoryStore keeps everything in process memory. Values do not survive a
// restart, but a single MemoryStore shared by several consumers behaves like
// a durable store for their purposes, which is how tests simulate restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	scalars map[string]map[string]string
	sets    map[string]map[string][]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scalars: make(map[string]map[string]string),
		sets:    make(map[string]map[string][]string),
	}
}

func (m *MemoryStore) GetString(_ context.Context, bucket, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.scalars[bucket][key]
	return v, ok, nil
}

func (m *MemoryStore) PutString(_ context.Context, bucket, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putScalar(bucket, key, value)
	return nil
}

func (m *MemoryStore) GetBool(_ context.Context, bucket, key string) (bool, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.scalars[bucket][key]
	if !ok {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, &TypeError{Bucket: bucket, Key: key, Want: "bool"}
	}
	return v, true, nil
}

func (m *MemoryStore) PutBool(_ context.Context, bucket, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putScalar(bucket, key, strconv.FormatBool(value))
	return nil
}

func (m *MemoryStore) GetStringSet(_ context.Context, bucket, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.sets[bucket][key]...), nil
}

func (m *MemoryStore) PutStringSet(_ context.Context, bucket, key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[bucket] == nil {
		m.sets[bucket] = make(map[string][]string)
	}
	m.sets[bucket][key] = dedupSorted(values)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, bucket string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.scalars[bucket], k)
		delete(m.sets[bucket], k)
	}
	return nil
}

func (m *MemoryStore) putScalar(bucket, key, value string) {
	if m.scalars[bucket] == nil {
		m.scalars[bucket] = make(map[string]string)
	}
	m.scalars[bucket][key] = value
}

func dedupSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
