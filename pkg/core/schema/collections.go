// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"strings"
)

// Collection is the wire representation of a collection.
type Collection struct {
	UUID     string                 `json:"uuid"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
}

// CreateCollectionRequest represents a request to create a collection.
type CreateCollectionRequest struct {
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks the request for required fields.
func (r *CreateCollectionRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateCollectionRequest represents a request to rename a collection
// and/or replace its metadata. Omitted fields are left untouched.
type UpdateCollectionRequest struct {
	Name     *string                `json:"name,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks the request for invalid field values.
func (r *UpdateCollectionRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

// ErrorResponse is the JSON error envelope returned by all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable type and human-readable message.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
