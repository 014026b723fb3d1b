package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	createKVTable = `CREATE TABLE IF NOT EXISTS storefront_kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        "updatedAt" TIMESTAMPTZ NOT NULL DEFAULT now()
    )`
	getKVQuery    = `SELECT value FROM storefront_kv WHERE key = $1`
	upsertKVQuery = `INSERT INTO storefront_kv (key, value, "updatedAt") VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, "updatedAt" = now()`
	deleteKVQuery = `DELETE FROM storefront_kv WHERE key = ANY($1)`
)

// PostgresStore keeps keys in the storefront_kv table.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the kv table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createKVTable); err != nil {
		return fmt.Errorf("create storefront_kv: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, getKVQuery, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertKVQuery, key, string(value)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, deleteKVQuery, pq.Array(keys)); err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}
	return nil
}
