// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     preferences
// Description: In-process preference store
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package preferences

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	prefs Preferences
}

// NewMemoryStore returns a store holding the defaults.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: Default()}
}

// Load returns the held preferences.
func (s *MemoryStore) Load(ctx context.Context) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs, ctx.Err()
}

// Save replaces the held preferences.
func (s *MemoryStore) Save(ctx context.Context, p Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
