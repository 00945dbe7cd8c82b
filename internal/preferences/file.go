// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     preferences
// Description: File-backed preference store (JSON or YAML)
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps preferences in a single file. Files ending in .yaml or
// .yml are written as YAML, everything else as JSON.
type FileStore struct {
	path string
	yaml bool
	mu   sync.Mutex
}

// DefaultPath returns the preference file used when none is configured.
func DefaultPath() string {
	return defaultFilePath(BackendJSON)
}

// defaultFilePath returns the default file for a file backend, with the
// extension selecting its format.
func defaultFilePath(backend string) string {
	name := "preferences.json"
	if strings.ToLower(backend) == BackendYAML {
		name = "preferences.yaml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mdwcalc", name)
	}
	return filepath.Join(home, ".mdwcalc", name)
}

// NewFileStore returns a store for path. The file is created on first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath()
	}
	ext := strings.ToLower(filepath.Ext(path))
	return &FileStore{
		path: path,
		yaml: ext == ".yaml" || ext == ".yml",
	}, nil
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the preference file. A missing or unreadable file yields the
// defaults.
func (s *FileStore) Load(ctx context.Context) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Preferences{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	p := Default()
	if s.yaml {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes p to the preference file.
func (s *FileStore) Save(ctx context.Context, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if s.yaml {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
