package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type document struct {
	bun.BaseModel `bun:"table:documents"`

	Key       string    `bun:"doc_key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// SQLiteStore keeps documents in a single SQLite table via bun.
type SQLiteStore struct {
	DB *bun.DB
}

// OpenSQLite opens (or creates) the database at dsn and ensures the
// documents table exists. Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and SQLite serialises writers anyway.
	sqldb.SetMaxOpenConns(1)

	s := &SQLiteStore{DB: bun.NewDB(sqldb, sqlitedialect.New())}
	if _, err := s.DB.NewCreateTable().
		Model((*document)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		s.DB.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc document
	err := s.DB.NewSelect().
		Model(&doc).
		Where("doc_key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select document %q: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	doc := &document{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.DB.NewInsert().
		Model(doc).
		On("CONFLICT (doc_key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert document %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
