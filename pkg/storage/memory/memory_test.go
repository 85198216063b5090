// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/langconnect/collections-gw/pkg/storage"
)

func makeCollection(name string) *storage.Collection {
	now := time.Now().UTC()
	return &storage.Collection{
		ID:        uuid.New(),
		Name:      name,
		Metadata:  map[string]interface{}{"owner_id": "anonymous"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetCollection(t *testing.T) {
	s := New()
	ctx := context.Background()

	col := makeCollection("docs")
	if err := s.CreateCollection(ctx, col); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	got, err := s.GetCollection(ctx, col.ID)
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if got.ID != col.ID {
		t.Errorf("expected ID %s, got %s", col.ID, got.ID)
	}
	if got.Name != "docs" {
		t.Errorf("expected name %q, got %q", "docs", got.Name)
	}
	if got.Metadata["owner_id"] != "anonymous" {
		t.Errorf("expected owner_id=anonymous, got %v", got.Metadata)
	}
}

func TestGetCollection_NotFound(t *testing.T) {
	s := New()

	_, err := s.GetCollection(context.Background(), uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCollection_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	col := makeCollection("docs")
	if err := s.CreateCollection(ctx, col); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	got, err := s.GetCollection(ctx, col.ID)
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	got.Metadata["mutated"] = true

	again, err := s.GetCollection(ctx, col.ID)
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if _, leaked := again.Metadata["mutated"]; leaked {
		t.Error("mutation of a returned collection leaked into the store")
	}
}

func TestListCollections(t *testing.T) {
	s := New()
	ctx := context.Background()

	empty, err := s.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list, got %d entries", len(empty))
	}

	base := time.Now().UTC()
	for i, name := range []string{"one", "two", "three"} {
		col := makeCollection(name)
		col.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := s.CreateCollection(ctx, col); err != nil {
			t.Fatalf("CreateCollection %q: %v", name, err)
		}
	}

	got, err := s.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Name)
		}
	}
}

func TestUpdateCollection(t *testing.T) {
	s := New()
	ctx := context.Background()

	col := makeCollection("before")
	if err := s.CreateCollection(ctx, col); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	col.Name = "after"
	col.Metadata = map[string]interface{}{"owner_id": "anonymous", "x": "y"}
	if err := s.UpdateCollection(ctx, col); err != nil {
		t.Fatalf("UpdateCollection: %v", err)
	}

	got, err := s.GetCollection(ctx, col.ID)
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if got.Name != "after" {
		t.Errorf("expected name %q, got %q", "after", got.Name)
	}
	if got.Metadata["x"] != "y" {
		t.Errorf("expected metadata x=y, got %v", got.Metadata)
	}
}

func TestUpdateCollection_NotFound(t *testing.T) {
	s := New()

	err := s.UpdateCollection(context.Background(), makeCollection("ghost"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCollection_Idempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	col := makeCollection("doomed")
	if err := s.CreateCollection(ctx, col); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	if err := s.DeleteCollection(ctx, col.ID); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	if _, err := s.GetCollection(ctx, col.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op
	if err := s.DeleteCollection(ctx, col.ID); err != nil {
		t.Errorf("second DeleteCollection: %v", err)
	}
}
