package repositories

import (
	"context"
	"errors"
)

// ErrStateNotFound is returned when no record exists under a key.
var ErrStateNotFound = errors.New("state record not found")

// StateRepository stores client state records as opaque JSON values keyed by
// namespace. Writes replace the previous value; the last writer wins.
type StateRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
