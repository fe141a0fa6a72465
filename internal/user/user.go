// Package user defines the account model used throughout the application,
// particularly for authentication and per-account todo storage.
package user

import "github.com/patric-chuzhbe/localtodo/internal/models"

// Account represents a registered user record.
// The email is the unique identifier, compared case-sensitively.
// Passwords are stored as plain text: the store lives on the user's own
// machine and hashing is explicitly out of scope.
type Account struct {
	// Name is the display name shown after login.
	Name string `json:"name"`

	// Email is the unique identifier of the account.
	Email string `json:"email"`

	// Password is the plaintext password, minimum 6 characters.
	Password string `json:"password"`

	// Todos is the account's todo list, newest first.
	// It is always non-nil once the account has been loaded or created.
	Todos []models.Todo `json:"todos"`
}
