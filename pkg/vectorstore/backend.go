// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package vectorstore defines the vector backend interface. Each API
// collection is provisioned as one collection in the backing vector store;
// embedding ingestion and similarity search are owned by other systems.
package vectorstore

import (
	"context"

	"github.com/langconnect/collections-gw/pkg/provider"
)

// Providers is the registry of vector backend implementations.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/langconnect/collections-gw/pkg/vectorstore/milvus"
var Providers = provider.NewRegistry[Backend]("vector_backend")

// Backend is the interface for vector store backends.
type Backend interface {
	// CreateCollection provisions backing storage for a collection
	// (e.g. a Milvus collection with a vector field of the given dimensions).
	CreateCollection(ctx context.Context, collectionID string, dimensions int) error

	// DropCollection removes a collection's backing storage and all its
	// vectors. Dropping a missing collection is not an error.
	DropCollection(ctx context.Context, collectionID string) error

	// HasCollection reports whether backing storage exists for a collection.
	HasCollection(ctx context.Context, collectionID string) (bool, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
