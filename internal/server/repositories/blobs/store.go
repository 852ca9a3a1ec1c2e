// Package blobs stores opaque values under string keys. The users
// collection repository keeps its whole serialized collection in one blob.
package blobs

import (
	"context"
	"errors"
)

// ErrConflict is returned by Update when the value kept changing under it.
var ErrConflict = errors.New("concurrent update conflict")

// Store is a minimal key-value store.
type Store interface {
	// Get returns the value under key, or nil and no error when the key is
	// absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value. It does not
	// guard against concurrent writers; the users collection writes through
	// Update and Set is left for seeding and test setup.
	Set(ctx context.Context, key string, value []byte) error

	// Update atomically replaces the value under key with fn(current).
	// current is nil when the key is absent. When fn returns an error
	// nothing is written and that error is returned unchanged. fn may be
	// called more than once by stores that retry on conflict.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}
