// Package storage declares the key-value contract every storage backend
// implements. The rest of the application never sees anything richer than
// string keys and serialized string values.
package storage

import "context"

// KeyValueStore is the narrow persistence contract of the application.
// Implementations must make Set durable before returning so that every
// write is committed before the caller's next instruction.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)

	Set(ctx context.Context, key, value string) error

	Remove(ctx context.Context, key string) error

	Ping(ctx context.Context) error

	Close() error
}
