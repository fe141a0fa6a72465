// Package session tracks which account is currently logged in.
// The session is a full snapshot of the account taken at login time,
// stored under its own key next to the legacy token entry.
package session

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
	Remove(ctx context.Context, key string) error
}

// Session holds the "currently logged in" pointer over the key-value store.
type Session struct {
	db keyValueStore
}

// New creates a Session holder over the given key-value store.
func New(db keyValueStore) *Session {
	return &Session{db: db}
}

// Set stores a full snapshot of the account as the current session and
// writes the account's email under the legacy token key.
func (s *Session) Set(ctx context.Context, account *user.Account) error {
	serialized, err := json.Marshal(account)
	if err != nil {
		return err
	}

	if err := s.db.Set(ctx, models.TokenKey, account.Email); err != nil {
		return err
	}

	return s.db.Set(ctx, models.CurrentUserKey, string(serialized))
}

// Current returns the snapshot of the logged-in account, if any.
// An absent or unparsable session entry means nobody is logged in.
// The snapshot is a copy frozen at login time; callers needing fresh
// todos must reload the account from the directory by email.
func (s *Session) Current(ctx context.Context) (*user.Account, bool, error) {
	serialized, found, err := s.db.Get(ctx, models.CurrentUserKey)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var account user.Account
	if err := json.Unmarshal([]byte(serialized), &account); err != nil {
		logger.Log.Debugln("unparsable session entry, treating as logged out:", "error", err)

		return nil, false, nil
	}
	if account.Todos == nil {
		account.Todos = []models.Todo{}
	}

	return &account, true, nil
}

// Clear removes the session and the legacy token entry.
// It is idempotent: clearing an absent session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.db.Remove(ctx, models.CurrentUserKey); err != nil {
		return err
	}

	return s.db.Remove(ctx, models.TokenKey)
}
