// Package todo implements the per-account todo operations for the
// currently logged-in user: list, add, edit, and delete.
package todo

import (
	"context"
	"strings"
	"time"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/localtodo/internal/directory"
	"github.com/patric-chuzhbe/localtodo/internal/models"
	"github.com/patric-chuzhbe/localtodo/internal/user"
)

type accountsKeeper interface {
	LoadAll(ctx context.Context) ([]user.Account, error)
	SaveAll(ctx context.Context, accounts []user.Account) error
}

type sessionReader interface {
	Current(ctx context.Context) (*user.Account, bool, error)
}

// Service operates on the working copy of the logged-in account's todos.
// The copy is loaded once at construction from the directory entry
// matching the session's email, not from the login-time snapshot, so it
// is fresh relative to the directory state.
type Service struct {
	accounts accountsKeeper
	email    string
	todos    []models.Todo
	lastID   int64
}

// New builds a todo service for the active session.
// Returns models.ErrNoActiveSession when nobody is logged in.
func New(ctx context.Context, accounts accountsKeeper, session sessionReader) (*Service, error) {
	current, found, err := session.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrNoActiveSession
	}

	service := &Service{
		accounts: accounts,
		email:    current.Email,
		todos:    []models.Todo{},
	}

	allAccounts, err := accounts.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if account, ok := directory.FindByEmail(allAccounts, current.Email); ok {
		service.todos = append(service.todos, account.Todos...)
	}

	for _, item := range service.todos {
		if item.ID > service.lastID {
			service.lastID = item.ID
		}
	}

	return service, nil
}

// List returns the working copy of the todo list, newest first.
func (s *Service) List() []models.Todo {
	return append([]models.Todo{}, s.todos...)
}

// AddOrUpdate inserts a new todo or, when editID names an existing todo,
// replaces that todo's text in place, preserving its ID and position.
// An editID of zero means "no edit in progress". A stale editID falls
// through to a plain insert. Blank or whitespace-only text is a no-op.
// The updated list is persisted into the matching directory account.
func (s *Service) AddOrUpdate(ctx context.Context, text string, editID int64) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if editID != 0 {
		for i := range s.todos {
			if s.todos[i].ID == editID {
				s.todos[i].Text = trimmed

				return s.persist(ctx)
			}
		}
	}

	s.todos = append(
		[]models.Todo{{ID: s.nextID(), Text: trimmed}},
		s.todos...,
	)

	return s.persist(ctx)
}

// Delete removes the todo with the given ID and persists the list.
// A missing ID is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.todos = funk.Filter(s.todos, func(item models.Todo) bool {
		return item.ID != id
	}).([]models.Todo)

	return s.persist(ctx)
}

// Edit looks up the todo with the given ID for populating an edit form.
// The caller is responsible for guarding against a stale ID.
func (s *Service) Edit(id int64) (models.Todo, bool) {
	match := funk.Find(s.todos, func(item models.Todo) bool {
		return item.ID == id
	})
	if match == nil {
		return models.Todo{}, false
	}

	return match.(models.Todo), true
}

func (s *Service) persist(ctx context.Context) error {
	accounts, err := s.accounts.LoadAll(ctx)
	if err != nil {
		return err
	}

	updated := funk.Map(accounts, func(account user.Account) user.Account {
		if account.Email == s.email {
			account.Todos = append([]models.Todo{}, s.todos...)
		}

		return account
	}).([]user.Account)

	return s.accounts.SaveAll(ctx, updated)
}

// nextID issues creation-time IDs in Unix milliseconds, bumped past the
// last issued value so rapid successive inserts never collide.
func (s *Service) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	return id
}
