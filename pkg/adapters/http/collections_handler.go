// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/langconnect/collections-gw/pkg/core/schema"
	"github.com/langconnect/collections-gw/pkg/storage"
)

// handleCreateCollection handles POST /collections
func (h *Handler) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	// Parse request body
	var req schema.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to parse create collection request", "error", err)
		h.writeError(w, http.StatusUnprocessableEntity, "invalid_request", "Failed to parse request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}

	col, err := h.collections.Create(r.Context(), req.Name, req.Metadata)
	if err != nil {
		h.logger.Error("Failed to create collection", "error", err, "name", req.Name)
		h.writeError(w, http.StatusInternalServerError, "creation_error", err.Error())
		return
	}

	h.logger.Info("Collection created", "collection_id", col.ID, "name", col.Name)

	writeJSON(w, http.StatusCreated, convertToSchemaCollection(col))
}

// handleListCollections handles GET /collections
func (h *Handler) handleListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := h.collections.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list collections", "error", err)
		h.writeError(w, http.StatusInternalServerError, "list_error", err.Error())
		return
	}

	// Always a JSON array, never null
	out := make([]schema.Collection, 0, len(cols))
	for _, col := range cols {
		out = append(out, convertToSchemaCollection(col))
	}

	writeJSON(w, http.StatusOK, out)
}

// handleGetCollection handles GET /collections/{id}
func (h *Handler) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.collectionID(w, r)
	if !ok {
		return
	}

	col, err := h.collections.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "collection_not_found",
			fmt.Sprintf("Collection %q not found", id))
		return
	}
	if err != nil {
		h.logger.Error("Failed to get collection", "error", err, "collection_id", id)
		h.writeError(w, http.StatusInternalServerError, "get_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, convertToSchemaCollection(col))
}

// handleUpdateCollection handles PATCH /collections/{id}
func (h *Handler) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.collectionID(w, r)
	if !ok {
		return
	}

	// Parse request body
	var req schema.UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to parse update collection request", "error", err)
		h.writeError(w, http.StatusUnprocessableEntity, "invalid_request", "Failed to parse request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}

	col, err := h.collections.Update(r.Context(), id, req.Name, req.Metadata)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "collection_not_found",
			fmt.Sprintf("Collection %q not found", id))
		return
	}
	if err != nil {
		h.logger.Error("Failed to update collection", "error", err, "collection_id", id)
		h.writeError(w, http.StatusInternalServerError, "update_error", err.Error())
		return
	}

	h.logger.Info("Collection updated", "collection_id", col.ID, "name", col.Name)

	writeJSON(w, http.StatusOK, convertToSchemaCollection(col))
}

// handleDeleteCollection handles DELETE /collections/{id}
func (h *Handler) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.collectionID(w, r)
	if !ok {
		return
	}

	// Deletion is idempotent: a missing collection still yields 204.
	if err := h.collections.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete collection", "error", err, "collection_id", id)
		h.writeError(w, http.StatusInternalServerError, "deletion_error", err.Error())
		return
	}

	h.logger.Info("Collection deleted", "collection_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// collectionID extracts and validates the {id} path segment. On failure it
// writes a 422 response and returns ok=false.
func (h *Handler) collectionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid_identifier",
			fmt.Sprintf("Collection ID %q is not a valid UUID", raw))
		return uuid.UUID{}, false
	}
	return id, true
}

func convertToSchemaCollection(col *storage.Collection) schema.Collection {
	return schema.Collection{
		UUID:     col.ID.String(),
		Name:     col.Name,
		Metadata: col.Metadata,
	}
}
