// Package auth validates credentials against the user directory and
// manages session transitions: signup, login, and logout.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/localtodo/internal/directory"
	"github.com/patric-chuzhbe/localtodo/internal/models"
	"github.com/patric-chuzhbe/localtodo/internal/user"
)

type accountsKeeper interface {
	LoadAll(ctx context.Context) ([]user.Account, error)
	SaveAll(ctx context.Context, accounts []user.Account) error
}

type sessionKeeper interface {
	Set(ctx context.Context, account *user.Account) error
	Clear(ctx context.Context) error
}

// Auth handles account registration and credential-based login over the
// user directory, keeping the session holder in step.
type Auth struct {
	accounts accountsKeeper
	session  sessionKeeper
	validate *validator.Validate
}

var simpleEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// signupErrorKeys maps validated struct fields to the form field names
// reported to the caller.
var signupErrorKeys = map[string]string{
	"Name":            "name",
	"Email":           "email",
	"Password":        "password",
	"ConfirmPassword": "confirmPassword",
}

// signupErrorMessages holds the fixed per-field messages of the signup form.
var signupErrorMessages = map[string]string{
	"Name":            "Name required",
	"Email":           "Valid email required",
	"Password":        "Min 6 characters",
	"ConfirmPassword": "Passwords do not match",
}

func validateTrimmedRequired(fieldLevel validator.FieldLevel) bool {
	return strings.TrimSpace(fieldLevel.Field().String()) != ""
}

func validateSimpleEmail(fieldLevel validator.FieldLevel) bool {
	return simpleEmailPattern.MatchString(fieldLevel.Field().String())
}

// New creates an Auth service over the given directory and session holder.
func New(accounts accountsKeeper, session sessionKeeper) (*Auth, error) {
	validate := validator.New()

	err := validate.RegisterValidation("trimmed_required", validateTrimmedRequired)
	if err != nil {
		return nil, err
	}

	err = validate.RegisterValidation("simple_email", validateSimpleEmail)
	if err != nil {
		return nil, err
	}

	return &Auth{
		accounts: accounts,
		session:  session,
		validate: validate,
	}, nil
}

// Signup registers a new account.
// All field validations are evaluated together and returned at once as a
// models.ValidationErrors value; nothing is persisted on failure. An email
// already present in the directory is a distinct failure branch reported
// as a single "email" error. The caller is expected to log in afterwards.
func (a *Auth) Signup(ctx context.Context, request models.SignupRequest) error {
	if err := a.validate.Struct(request); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return err
		}

		result := models.ValidationErrors{}
		for _, fieldError := range fieldErrors {
			field := fieldError.StructField()
			result[signupErrorKeys[field]] = signupErrorMessages[field]
		}

		return result
	}

	accounts, err := a.accounts.LoadAll(ctx)
	if err != nil {
		return err
	}

	if _, exists := directory.FindByEmail(accounts, request.Email); exists {
		return models.ValidationErrors{"email": "Email already registered"}
	}

	accounts = append(accounts, user.Account{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		Todos:    []models.Todo{},
	})

	return a.accounts.SaveAll(ctx, accounts)
}

// Login looks up an account whose email and password both exactly match.
// On success it stores a full snapshot of the account as the current
// session and returns the account. On no match it returns
// models.ErrInvalidCredentials and leaves any prior session untouched.
func (a *Auth) Login(ctx context.Context, email, password string) (*user.Account, error) {
	accounts, err := a.accounts.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	match := funk.Find(accounts, func(account user.Account) bool {
		return account.Email == email && account.Password == password
	})
	if match == nil {
		return nil, models.ErrInvalidCredentials
	}

	account := match.(user.Account)
	if err := a.session.Set(ctx, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// Logout clears the current session. It is idempotent: logging out with
// no session established is not an error.
func (a *Auth) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}
