// Package kv is the key/value store behind every piece of persisted client
// state: token, preferences, planning snapshot and assistant conversation.
package kv

import "context"

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
