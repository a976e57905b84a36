package store

import (
	"context"
	"sync"
)

// MemorySlot keeps persisted blobs in process memory
type MemorySlot struct {
	blobs map[string][]byte
	mu    sync.RWMutex
}

// NewMemorySlot creates a new in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{
		blobs: make(map[string][]byte),
	}
}

// Get retrieves a blob by key
func (s *MemorySlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, exists := s.blobs[key]
	if !exists {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

// Put stores a blob
func (s *MemorySlot) Put(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}
