// Package memorystorage provides an ephemeral key-value storage backend.
// It reuses the jsondb cache without a backing file, so nothing survives
// the process. Used for tests and for runs without a storage path.
package memorystorage

import (
	"context"

	"github.com/patric-chuzhbe/localtodo/internal/db/jsondb"
)

type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: map[string]string{},
		},
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
