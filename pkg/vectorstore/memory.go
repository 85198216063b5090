// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package vectorstore

import (
	"context"
	"sync"
)

func init() {
	Providers.Register("memory", func(_ context.Context, _ map[string]string) (Backend, error) {
		return NewMemoryBackend(), nil
	})
}

// MemoryBackend is a Backend that only tracks which collections have been
// provisioned. Used in tests and when no real vector store is configured.
type MemoryBackend struct {
	mu          sync.RWMutex
	collections map[string]struct{}
}

// NewMemoryBackend creates an empty memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		collections: make(map[string]struct{}),
	}
}

func (m *MemoryBackend) CreateCollection(ctx context.Context, collectionID string, dimensions int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collectionID] = struct{}{}
	return nil
}

func (m *MemoryBackend) DropCollection(ctx context.Context, collectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections, collectionID)
	return nil
}

func (m *MemoryBackend) HasCollection(ctx context.Context, collectionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.collections[collectionID]
	return exists, nil
}

func (m *MemoryBackend) Close(ctx context.Context) error {
	return nil
}
