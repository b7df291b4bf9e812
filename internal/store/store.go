package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS carts (
	cart_key   TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Store persists serialized carts in Postgres, one row per cart key.
// It backs the server-session flavour of the cart persistence boundary.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to the database and ensures the carts table exists
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure carts table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// Load retrieves a cart payload. A missing row is not an error.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM carts WHERE cart_key = $1", key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load cart %s: %w", key, err)
	}
	return payload, true, nil
}

// Save upserts a cart payload
func (s *Store) Save(ctx context.Context, key, payload string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO carts (cart_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (cart_key) DO UPDATE SET payload = $2, updated_at = NOW()`,
		key, payload)
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", key, err)
	}
	return nil
}

// Remove deletes a cart row. Deleting an absent row is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM carts WHERE cart_key = $1", key)
	if err != nil {
		return fmt.Errorf("failed to remove cart %s: %w", key, err)
	}
	return nil
}
