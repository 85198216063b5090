// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/langconnect/collections-gw/pkg/core/schema"
	"github.com/langconnect/collections-gw/pkg/core/services"
	"github.com/langconnect/collections-gw/pkg/observability/logging"
)

// Handler implements the HTTP adapter
type Handler struct {
	collections *services.CollectionsService
	logger      *logging.Logger
	mux         *http.ServeMux
}

// New creates a new HTTP handler
func New(collections *services.CollectionsService, logger *logging.Logger) *Handler {
	h := &Handler{
		collections: collections,
		logger:      logger,
		mux:         http.NewServeMux(),
	}

	// Register routes
	h.mux.HandleFunc("GET /health", h.handleHealth)

	// Collections API
	h.mux.HandleFunc("POST /collections", h.handleCreateCollection)
	h.mux.HandleFunc("GET /collections", h.handleListCollections)
	h.mux.HandleFunc("GET /collections/{id}", h.handleGetCollection)
	h.mux.HandleFunc("PATCH /collections/{id}", h.handleUpdateCollection)
	h.mux.HandleFunc("DELETE /collections/{id}", h.handleDeleteCollection)

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Log request
	h.logger.Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	// Serve
	h.mux.ServeHTTP(w, r)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, schema.ErrorResponse{
		Error: schema.ErrorDetail{
			Type:    errType,
			Message: message,
		},
	})
}
