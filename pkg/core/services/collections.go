// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/langconnect/collections-gw/pkg/storage"
	"github.com/langconnect/collections-gw/pkg/vectorstore"
)

// MetadataOwnerKey is the metadata key carrying the owning identity.
const MetadataOwnerKey = "owner_id"

// DefaultOwner is the placeholder identity recorded on every collection
// until real authentication exists.
const DefaultOwner = "anonymous"

// CollectionsService coordinates collection lifecycle across the relational
// store and the vector backend. The relational row is the source of truth;
// the backend holds per-collection vector storage keyed by the collection UUID.
type CollectionsService struct {
	store      storage.CollectionStore
	backend    vectorstore.Backend
	owner      string
	dimensions int
}

// NewCollectionsService creates a CollectionsService.
func NewCollectionsService(store storage.CollectionStore, backend vectorstore.Backend, dimensions int) *CollectionsService {
	return &CollectionsService{
		store:      store,
		backend:    backend,
		owner:      DefaultOwner,
		dimensions: dimensions,
	}
}

// Create assigns a fresh UUID, stamps the owner identity into the metadata,
// inserts the row, and provisions backing vector storage. If provisioning
// fails the row is removed again so a retry can succeed.
func (s *CollectionsService) Create(ctx context.Context, name string, metadata map[string]interface{}) (*storage.Collection, error) {
	now := time.Now().UTC()
	col := &storage.Collection{
		ID:        uuid.New(),
		Name:      name,
		Metadata:  s.stampOwner(metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateCollection(ctx, col); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	if err := s.backend.CreateCollection(ctx, col.ID.String(), s.dimensions); err != nil {
		_ = s.store.DeleteCollection(ctx, col.ID)
		return nil, fmt.Errorf("provision vector backend: %w", err)
	}

	return col, nil
}

// List returns all collections.
func (s *CollectionsService) List(ctx context.Context) ([]*storage.Collection, error) {
	cols, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}

// Get returns a collection by ID. Returns storage.ErrNotFound if missing.
func (s *CollectionsService) Get(ctx context.Context, id uuid.UUID) (*storage.Collection, error) {
	return s.store.GetCollection(ctx, id)
}

// Update applies a partial update: a non-nil name renames the collection,
// a non-nil metadata map replaces the stored metadata wholesale (the owner
// identity is re-stamped). The UUID never changes.
// Returns storage.ErrNotFound if the collection is missing.
func (s *CollectionsService) Update(ctx context.Context, id uuid.UUID, name *string, metadata map[string]interface{}) (*storage.Collection, error) {
	col, err := s.store.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		col.Name = *name
	}
	if metadata != nil {
		col.Metadata = s.stampOwner(metadata)
	}
	col.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCollection(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// Delete removes the collection row and drops its backing vector storage.
// Deleting a missing collection is not an error.
func (s *CollectionsService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteCollection(ctx, id); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if err := s.backend.DropCollection(ctx, id.String()); err != nil {
		return fmt.Errorf("drop vector backend collection: %w", err)
	}
	return nil
}

// stampOwner copies the caller-supplied metadata and injects the owner
// identity. The input map is never mutated.
func (s *CollectionsService) stampOwner(metadata map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(metadata)+1)
	for k, v := range metadata {
		out[k] = v
	}
	out[MetadataOwnerKey] = s.owner
	return out
}
