// Package theme persists the presentation theme choice.
package theme

import (
	"context"

	"github.com/patric-chuzhbe/localtodo/internal/models"
)

// Recognized theme values. Anything else stored falls back to Dark.
const (
	Dark  = "dark"
	Light = "light"
)

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Theme reads and toggles the persisted theme value.
type Theme struct {
	db keyValueStore
}

func New(db keyValueStore) *Theme {
	return &Theme{db: db}
}

// Current returns the persisted theme, defaulting to Dark when absent
// or unrecognized.
func (t *Theme) Current(ctx context.Context) (string, error) {
	value, found, err := t.db.Get(ctx, models.ThemeKey)
	if err != nil {
		return "", err
	}
	if !found || (value != Dark && value != Light) {
		return Dark, nil
	}

	return value, nil
}

// Toggle switches between dark and light, persists the new value, and
// returns it.
func (t *Theme) Toggle(ctx context.Context) (string, error) {
	current, err := t.Current(ctx)
	if err != nil {
		return "", err
	}

	next := Dark
	if current == Dark {
		next = Light
	}

	if err := t.db.Set(ctx, models.ThemeKey, next); err != nil {
		return "", err
	}

	return next, nil
}
