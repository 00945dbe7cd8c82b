// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     preferences
// Description: Persistent view preferences, independent of the calculator
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package preferences stores view preferences such as the theme. It knows
// nothing about the calculator; views read both and keep them apart.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTheme is returned for theme names other than light and dark.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnknownBackend is returned by Open for unsupported store backends.
	ErrUnknownBackend = errors.New("unknown preferences backend")
)

// Theme is the visual theme of a calculator view.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool {
	return t == ThemeDark
}

// Preferences holds everything a store persists.
type Preferences struct {
	DarkMode bool `json:"darkMode" yaml:"darkMode"`
}

// Default returns the preferences used when nothing has been stored.
func Default() Preferences {
	return Preferences{DarkMode: false}
}

// Theme returns the theme selected by p.
func (p Preferences) Theme() Theme {
	if p.DarkMode {
		return ThemeDark
	}
	return ThemeLight
}

// WithTheme returns a copy of p using theme t.
func (p Preferences) WithTheme(t Theme) Preferences {
	p.DarkMode = t.Dark()
	return p
}

// Store persists Preferences. Loading from an empty store returns Default.
type Store interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendJSON, BackendYAML:
		if path == "" {
			path = defaultFilePath(backend)
		}
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(SQLiteConfig{Path: path})
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Toggle flips the stored theme and returns the new one.
func Toggle(ctx context.Context, s Store) (Theme, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	theme := p.Theme().Toggle()
	if err := s.Save(ctx, p.WithTheme(theme)); err != nil {
		return "", err
	}
	return theme, nil
}

// SetTheme stores theme t.
func SetTheme(ctx context.Context, s Store, t Theme) error {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, p.WithTheme(t))
}
