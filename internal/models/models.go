package models

import (
	"errors"
	"sort"
	"strings"
)

// Store keys under which the application state is persisted.
const (
	UsersKey       = "users"
	CurrentUserKey = "currentUser"
	TokenKey       = "token"
	ThemeKey       = "theme"
)

// Todo is a single list item belonging to an account.
// The ID is the creation time in Unix milliseconds, kept strictly
// monotonic within a process.
type Todo struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// SignupRequest carries the raw signup form values.
// The tags drive the go-playground validation; the messages shown to the
// caller are mapped per field by the auth package.
type SignupRequest struct {
	Name            string `json:"name" validate:"trimmed_required"`
	Email           string `json:"email" validate:"simple_email"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// ValidationErrors maps a form field name to a human readable message.
type ValidationErrors map[string]string

// Error implements the error interface by joining the field messages
// in field-name order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(v))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}

	return strings.Join(parts, "; ")
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeFile
	StorageTypeMemory
)

// ErrInvalidCredentials is returned when no account matches the supplied
// email and password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNoActiveSession is returned when a todo service is requested
// while nobody is logged in.
var ErrNoActiveSession = errors.New("no active session")
