package persistence

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStorage keeps blobs in process. Used for development and tests.
type MemoryStorage struct {
	mu    sync.Mutex
	blobs map[string]Blob
	puts  int
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]Blob)}
}

func (m *MemoryStorage) Get(_ context.Context, namespace string) (Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[namespace]
	if !ok {
		return nil, ErrNamespaceNotFound
	}
	return copyBlob(blob), nil
}

func (m *MemoryStorage) Put(_ context.Context, namespace string, blob Blob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[namespace] = copyBlob(blob)
	m.puts++
	return nil
}

// Puts is the number of successful writes
func (m *MemoryStorage) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func copyBlob(in Blob) Blob {
	out := make(Blob, len(in))
	for k, v := range in {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
