package storage

import (
	"encoding/json"
	"sync"
)

// MemoryStore is a map-backed Store for tests and ephemeral runs. Values
// round-trip through JSON so behavior matches BoltStore.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Save(slot string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots[slot] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(slot string, v interface{}) error {
	s.mu.RLock()
	data, ok := s.slots[slot]
	s.mu.RUnlock()
	if !ok {
		return ErrSlotNotFound
	}
	return json.Unmarshal(data, v)
}

func (s *MemoryStore) Delete(slot string) error {
	s.mu.Lock()
	delete(s.slots, slot)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
