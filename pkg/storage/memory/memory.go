// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package memory provides an in-memory CollectionStore used for tests and
// single-process deployments with no persistence requirements.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/langconnect/collections-gw/pkg/storage"
)

func init() {
	storage.Providers.Register("memory", func(_ context.Context, _ map[string]string) (storage.CollectionStore, error) {
		return New(), nil
	})
}

// Store is an in-memory collection store.
type Store struct {
	mu          sync.RWMutex
	collections map[uuid.UUID]*storage.Collection
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[uuid.UUID]*storage.Collection),
	}
}

// CreateCollection inserts a new collection.
func (s *Store) CreateCollection(ctx context.Context, c *storage.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[c.ID] = c.Clone()
	return nil
}

// GetCollection retrieves a collection by ID.
func (s *Store) GetCollection(ctx context.Context, id uuid.UUID) (*storage.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.collections[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return c.Clone(), nil
}

// ListCollections returns all collections ordered by creation time.
func (s *Store) ListCollections(ctx context.Context) ([]*storage.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateCollection overwrites an existing collection.
func (s *Store) UpdateCollection(ctx context.Context, c *storage.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[c.ID]; !exists {
		return storage.ErrNotFound
	}
	s.collections[c.ID] = c.Clone()
	return nil
}

// DeleteCollection removes a collection. Missing IDs are a no-op.
func (s *Store) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
