package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS kv_documents (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps documents in a kv_documents table. It uses pgx
// directly, one row per key.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore ensures the kv_documents table exists. The store takes
// ownership of the pool and closes it on Close.
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("create kv_documents: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx,
		`SELECT value::text FROM kv_documents WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %q: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO kv_documents (key, value, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
