package repository

import (
	"sync"
)

// KVStore is the persisted key-value contract the commerce documents live
// behind. Values are JSON-encoded strings, one document per key.
type KVStore interface {
	Get(key string) (val string, exists bool, err error)
	Set(key string, val string) (err error)
	Remove(key string) (err error)
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

func (m *MemoryStore) Get(key string) (val string, exists bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, exists = m.data[key]
	return
}

func (m *MemoryStore) Set(key string, val string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return
}

func (m *MemoryStore) Remove(key string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return
}
