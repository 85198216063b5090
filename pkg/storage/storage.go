// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage defines the collection record and the CollectionStore
// interface implemented by the relational backends.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/langconnect/collections-gw/pkg/provider"
)

// Providers is the registry of collection store implementations.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/langconnect/collections-gw/pkg/storage/postgres"
var Providers = provider.NewRegistry[CollectionStore]("collection_store")

// ErrNotFound is returned when a collection does not exist.
var ErrNotFound = errors.New("collection not found")

// Collection is a stored collection row.
type Collection struct {
	ID        uuid.UUID
	Name      string
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep-enough copy: the metadata map is copied so callers
// can mutate the result without affecting the stored record.
func (c *Collection) Clone() *Collection {
	cp := *c
	cp.Metadata = make(map[string]interface{}, len(c.Metadata))
	for k, v := range c.Metadata {
		cp.Metadata[k] = v
	}
	return &cp
}

// CollectionStore is the interface for relational collection storage.
type CollectionStore interface {
	// CreateCollection inserts a new collection row. The caller assigns the ID.
	CreateCollection(ctx context.Context, c *Collection) error

	// GetCollection retrieves a collection by ID. Returns ErrNotFound if the
	// ID does not exist.
	GetCollection(ctx context.Context, id uuid.UUID) (*Collection, error)

	// ListCollections returns all collections ordered by creation time.
	ListCollections(ctx context.Context) ([]*Collection, error)

	// UpdateCollection overwrites name, metadata, and updated_at for the row
	// with c.ID. Returns ErrNotFound if the ID does not exist.
	UpdateCollection(ctx context.Context, c *Collection) error

	// DeleteCollection removes a collection by ID. Deleting a missing
	// collection is not an error.
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	// Close releases any resources held by the store.
	Close() error
}
