// Package store provides the key-value document stores the repository
// persists its JSON documents into. A value is always replaced whole.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is a flat key-value blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
