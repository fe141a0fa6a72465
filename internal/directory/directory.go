// Package directory implements the user directory: the full list of
// registered accounts, persisted as one serialized blob under a single
// store key.
package directory

import (
	"context"
	"encoding/json"

	"github.com/patric-chuzhbe/localtodo/internal/logger"
	"github.com/patric-chuzhbe/localtodo/internal/models"
	"github.com/patric-chuzhbe/localtodo/internal/user"
)

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Directory provides CRUD access to the list of accounts stored under
// the "users" key.
type Directory struct {
	db keyValueStore
}

// New creates a Directory over the given key-value store.
func New(db keyValueStore) *Directory {
	return &Directory{db: db}
}

// LoadAll deserializes the stored account list. An absent or unparsable
// entry is treated as an empty directory: corrupt state degrades to
// "nobody registered yet" instead of failing.
func (d *Directory) LoadAll(ctx context.Context) ([]user.Account, error) {
	serialized, found, err := d.db.Get(ctx, models.UsersKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []user.Account{}, nil
	}

	var accounts []user.Account
	if err := json.Unmarshal([]byte(serialized), &accounts); err != nil {
		logger.Log.Debugln("unparsable accounts entry, treating as empty:", "error", err)

		return []user.Account{}, nil
	}

	for i := range accounts {
		if accounts[i].Todos == nil {
			accounts[i].Todos = []models.Todo{}
		}
	}

	return accounts, nil
}

// SaveAll serializes and overwrites the stored account list in a single
// synchronous write.
func (d *Directory) SaveAll(ctx context.Context, accounts []user.Account) error {
	serialized, err := json.Marshal(accounts)
	if err != nil {
		return err
	}

	return d.db.Set(ctx, models.UsersKey, string(serialized))
}

// FindByEmail returns the first account with exactly the given email.
// The match is case-sensitive; emails are unique by invariant, so the
// first match is the only one.
func FindByEmail(accounts []user.Account, email string) (*user.Account, bool) {
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], true
		}
	}

	return nil, false
}
