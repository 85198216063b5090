// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package milvus implements vectorstore.Backend using Milvus.
// One Milvus collection is created per API collection.
package milvus

import (
	"context"
	"fmt"
	"strings"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/langconnect/collections-gw/pkg/vectorstore"
)

const (
	fieldChunkID   = "chunk_id"
	fieldContent   = "content"
	fieldEmbedding = "embedding"

	maxContentLength = 65535
	maxChunkIDLength = 256
)

func init() {
	vectorstore.Providers.Register("milvus", func(ctx context.Context, params map[string]string) (vectorstore.Backend, error) {
		return NewBackend(ctx, params["address"])
	})
}

// Backend implements vectorstore.Backend using Milvus.
type Backend struct {
	client milvusclient.Client
}

// NewBackend connects to Milvus and returns a Backend.
func NewBackend(ctx context.Context, address string) (*Backend, error) {
	c, err := milvusclient.NewClient(ctx, milvusclient.Config{
		Address: address,
	})
	if err != nil {
		return nil, fmt.Errorf("milvus connect %s: %w", address, err)
	}
	return &Backend{client: c}, nil
}

// milvusName derives a Milvus collection name from a collection UUID.
// Milvus collection names must start with a letter or underscore and may
// not contain dashes, so the UUID is prefixed and de-dashed.
func milvusName(collectionID string) string {
	return "c_" + strings.ReplaceAll(collectionID, "-", "_")
}

// CreateCollection creates a Milvus collection, an HNSW index, and loads it.
func (b *Backend) CreateCollection(ctx context.Context, collectionID string, dimensions int) error {
	coll := milvusName(collectionID)

	schema := entity.NewSchema().
		WithName(coll).
		WithField(entity.NewField().
			WithName(fieldChunkID).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(int64(maxChunkIDLength)).
			WithIsPrimaryKey(true)).
		WithField(entity.NewField().
			WithName(fieldContent).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(int64(maxContentLength))).
		WithField(entity.NewField().
			WithName(fieldEmbedding).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(dimensions)))

	if err := b.client.CreateCollection(ctx, schema, 1); err != nil {
		return fmt.Errorf("create collection %s: %w", coll, err)
	}

	idx, err := entity.NewIndexHNSW(entity.COSINE, 16, 200)
	if err != nil {
		return fmt.Errorf("create HNSW index params: %w", err)
	}

	if err := b.client.CreateIndex(ctx, coll, fieldEmbedding, idx, false); err != nil {
		return fmt.Errorf("create index on %s: %w", coll, err)
	}

	if err := b.client.LoadCollection(ctx, coll, false); err != nil {
		return fmt.Errorf("load collection %s: %w", coll, err)
	}

	return nil
}

// DropCollection drops the Milvus collection for the given collection ID.
func (b *Backend) DropCollection(ctx context.Context, collectionID string) error {
	coll := milvusName(collectionID)

	exists, err := b.client.HasCollection(ctx, coll)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", coll, err)
	}
	if !exists {
		return nil
	}

	if err := b.client.DropCollection(ctx, coll); err != nil {
		return fmt.Errorf("drop collection %s: %w", coll, err)
	}
	return nil
}

// HasCollection reports whether the Milvus collection exists.
func (b *Backend) HasCollection(ctx context.Context, collectionID string) (bool, error) {
	exists, err := b.client.HasCollection(ctx, milvusName(collectionID))
	if err != nil {
		return false, fmt.Errorf("check collection %s: %w", milvusName(collectionID), err)
	}
	return exists, nil
}

// Close releases the Milvus client connection.
func (b *Backend) Close(ctx context.Context) error {
	return b.client.Close()
}
