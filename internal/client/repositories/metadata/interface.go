// Package metadata is the client's local key/value store. It backs the
// persisted access token and any other small values the console keeps
// between runs.
package metadata

import (
	"context"
)

// Repository stores opaque byte values under string keys.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
