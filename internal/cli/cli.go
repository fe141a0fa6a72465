// Package cli implements the interactive presentation layer: a readline
// loop translating commands into auth, todo, and theme service calls.
// It owns the add/edit submit state: "edit <id>" switches the next
// "add" into an in-place update of that todo.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/patric-chuzhbe/localtodo/internal/auth"
	"github.com/patric-chuzhbe/localtodo/internal/directory"
	"github.com/patric-chuzhbe/localtodo/internal/models"
	"github.com/patric-chuzhbe/localtodo/internal/session"
	"github.com/patric-chuzhbe/localtodo/internal/theme"
	"github.com/patric-chuzhbe/localtodo/internal/todo"
)

const helpText = `Commands:
  signup <name> <email> <password> <confirm>  register a new account
  login <email> <password>                    log in and load your todos
  logout                                      log out
  whoami                                      show the logged-in account
  list                                        show your todos, newest first
  add <text>                                  add a todo (or submit a pending edit)
  edit <id>                                   start editing the given todo
  delete <id>                                 delete the given todo
  theme                                       toggle dark/light theme
  help                                        show this help
  exit                                        quit`

// CLI drives the interactive loop over the application services.
type CLI struct {
	rl       *readline.Instance
	auth     *auth.Auth
	accounts *directory.Directory
	session  *session.Session
	theme    *theme.Theme

	todos       *todo.Service
	currentName string
	editID      int64
}

// New creates the CLI over the given services.
func New(
	authService *auth.Auth,
	accounts *directory.Directory,
	currentSession *session.Session,
	themeService *theme.Theme,
) (*CLI, error) {
	rl, err := readline.New("> ")
	if err != nil {
		return nil, err
	}

	return &CLI{
		rl:       rl,
		auth:     authService,
		accounts: accounts,
		session:  currentSession,
		theme:    themeService,
	}, nil
}

// Run resumes a persisted session, if any, and processes commands until
// EOF or an exit command.
func (c *CLI) Run(ctx context.Context) error {
	defer c.rl.Close()

	if _, found, err := c.session.Current(ctx); err == nil && found {
		if err := c.startSession(ctx); err != nil {
			fmt.Println("could not resume the saved session:", err)
		}
	}

	for {
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		command, rest := splitCommand(line)
		if command == "exit" || command == "quit" {
			return nil
		}

		c.executeCommand(ctx, command, rest)
	}
}

func splitCommand(line string) (command, rest string) {
	parts := strings.SplitN(line, " ", 2)
	command = parts[0]
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}

	return
}

func (c *CLI) executeCommand(ctx context.Context, command, rest string) {
	var err error

	switch command {
	case "help":
		fmt.Println(helpText)
	case "signup":
		err = c.handleSignup(ctx, rest)
	case "login":
		err = c.handleLogin(ctx, rest)
	case "logout":
		err = c.handleLogout(ctx)
	case "whoami":
		c.handleWhoami()
	case "list":
		err = c.handleList()
	case "add":
		err = c.handleAdd(ctx, rest)
	case "edit":
		err = c.handleEdit(rest)
	case "delete":
		err = c.handleDelete(ctx, rest)
	case "theme":
		err = c.handleTheme(ctx)
	default:
		fmt.Printf("unknown command %q, try `help`\n", command)
	}

	if err != nil {
		fmt.Println(err)
	}
}

// startSession loads the todo working copy for the active session and
// switches the prompt to the account's display name.
func (c *CLI) startSession(ctx context.Context) error {
	todos, err := todo.New(ctx, c.accounts, c.session)
	if err != nil {
		return err
	}

	current, _, err := c.session.Current(ctx)
	if err != nil {
		return err
	}

	c.todos = todos
	c.currentName = current.Name
	c.editID = 0
	c.rl.SetPrompt(current.Email + "> ")

	return nil
}

func (c *CLI) endSession() {
	c.todos = nil
	c.currentName = ""
	c.editID = 0
	c.rl.SetPrompt("> ")
}

func (c *CLI) handleSignup(ctx context.Context, rest string) error {
	args := strings.Fields(rest)
	if len(args) != 4 {
		return errors.New("usage: signup <name> <email> <password> <confirm>")
	}

	err := c.auth.Signup(ctx, models.SignupRequest{
		Name:            args[0],
		Email:           args[1],
		Password:        args[2],
		ConfirmPassword: args[3],
	})

	var validationErrors models.ValidationErrors
	if errors.As(err, &validationErrors) {
		for field, message := range validationErrors {
			fmt.Printf("%s: %s\n", field, message)
		}

		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println("account created, you can now login")

	return nil
}

func (c *CLI) handleLogin(ctx context.Context, rest string) error {
	args := strings.Fields(rest)
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}

	account, err := c.auth.Login(ctx, args[0], args[1])
	if errors.Is(err, models.ErrInvalidCredentials) {
		fmt.Println("Invalid email or password")

		return nil
	}
	if err != nil {
		return err
	}

	if err := c.startSession(ctx); err != nil {
		return err
	}

	fmt.Printf("Welcome, %s\n", account.Name)

	return nil
}

func (c *CLI) handleLogout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}

	c.endSession()
	fmt.Println("logged out")

	return nil
}

func (c *CLI) handleWhoami() {
	if c.todos == nil {
		fmt.Println("not logged in")

		return
	}

	fmt.Println(c.currentName)
}

func (c *CLI) requireSession() error {
	if c.todos == nil {
		return errors.New("please login first")
	}

	return nil
}

func (c *CLI) handleList() error {
	if err := c.requireSession(); err != nil {
		return err
	}

	items := c.todos.List()
	if len(items) == 0 {
		fmt.Println("no todos yet")

		return nil
	}

	for _, item := range items {
		fmt.Printf("%d\t%s\n", item.ID, item.Text)
	}

	return nil
}

func (c *CLI) handleAdd(ctx context.Context, rest string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	err := c.todos.AddOrUpdate(ctx, rest, c.editID)
	c.editID = 0

	return err
}

func (c *CLI) handleEdit(rest string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return errors.New("usage: edit <id>")
	}

	item, found := c.todos.Edit(id)
	if !found {
		fmt.Println("no todo with that id")

		return nil
	}

	c.editID = item.ID
	fmt.Printf("editing %d (%q), submit the new text with: add <text>\n", item.ID, item.Text)

	return nil
}

func (c *CLI) handleDelete(ctx context.Context, rest string) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return errors.New("usage: delete <id>")
	}

	return c.todos.Delete(ctx, id)
}

func (c *CLI) handleTheme(ctx context.Context) error {
	next, err := c.theme.Toggle(ctx)
	if err != nil {
		return err
	}

	fmt.Println("theme is now", next)

	return nil
}
