// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlite provides a SQLite-backed CollectionStore for single-node
// deployments that want persistence without running PostgreSQL. It uses the
// cgo-free modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/langconnect/collections-gw/pkg/storage"

	_ "modernc.org/sqlite"
)

func init() {
	storage.Providers.Register("sqlite", func(_ context.Context, params map[string]string) (storage.CollectionStore, error) {
		return New(params["path"])
	})
}

// Store is a SQLite-backed collection store.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store at the given file path. Use ":memory:"
// for an ephemeral database.
func New(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// The driver serializes access to a single connection; the sqlite file
	// cannot be written concurrently anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("sqlite create tables: %w", err)
	}
	return nil
}

// CreateCollection inserts a new collection row.
func (s *Store) CreateCollection(ctx context.Context, c *storage.Collection) error {
	metaJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (id, name, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID.String(), c.Name, string(metaJSON),
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
		c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// GetCollection retrieves a collection by ID.
func (s *Store) GetCollection(ctx context.Context, id uuid.UUID) (*storage.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, metadata, created_at, updated_at
		 FROM collections WHERE id = ?`, id.String())

	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return c, nil
}

// ListCollections returns all collections ordered by creation time.
func (s *Store) ListCollections(ctx context.Context) ([]*storage.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, metadata, created_at, updated_at
		 FROM collections ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	out := make([]*storage.Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCollection overwrites name, metadata, and updated_at for the row.
func (s *Store) UpdateCollection(ctx context.Context, c *storage.Collection) error {
	metaJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE collections SET name=?, metadata=?, updated_at=? WHERE id=?`,
		c.Name, string(metaJSON),
		c.UpdatedAt.UTC().Format(time.RFC3339Nano), c.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteCollection removes a collection. Missing IDs are a no-op.
func (s *Store) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanCollection(row scannable) (*storage.Collection, error) {
	var (
		c                      storage.Collection
		idStr, metaStr         string
		createdStr, updatedStr string
	)
	if err := row.Scan(&idStr, &c.Name, &metaStr, &createdStr, &updatedStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	c.ID = id

	if err := json.Unmarshal([]byte(metaStr), &c.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}

	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedStr); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &c, nil
}
