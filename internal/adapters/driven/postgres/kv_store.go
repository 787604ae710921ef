package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore implements driven.KeyValueStore on the kv_entries table.
// Keys are stored with the configured prefix so several sites can share a database.
type KeyValueStore struct {
	db     *sql.DB
	prefix string
}

// NewKeyValueStore creates a new KeyValueStore
func NewKeyValueStore(db *sql.DB, prefix string) *KeyValueStore {
	return &KeyValueStore{db: db, prefix: prefix}
}

// Get retrieves the value stored under key
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, s.prefix+key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.prefix+key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Deleting a missing key is not an error.
func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, s.prefix+key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys under this store's prefix, without the prefix
func (s *KeyValueStore) Keys(ctx context.Context) ([]string, error) {
	query := `
		SELECT substr(key, $1) FROM kv_entries
		WHERE starts_with(key, $2)
		ORDER BY key
	`

	rows, err := s.db.QueryContext(ctx, query, len(s.prefix)+1, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Ping checks if the database is reachable
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
