package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
// Callers treat it as "empty ledger", never as a failure.
var ErrNotFound = errors.New("store: key not found")

// Store is the opaque key-value stage store. Each key holds one JSON
// document (a serialized sequence of stage records).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
