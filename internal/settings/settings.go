// Package settings owns the process-wide user preferences and their
// persistence through a key-value store.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// Key is the namespace the settings record is saved under.
const Key = "expense-tracker-settings"

type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	defaults core.Settings
	current  core.Settings
	rev      uint64
}

// New returns a store holding defaults until Load or Update is called.
func New(kv storage.KV, defaults core.Settings) *Store {
	return &Store{
		kv:       kv,
		defaults: defaults,
		current:  defaults,
	}
}

// Load replaces the current settings with the saved record, if one exists.
// Fields missing from the record keep their default values. A record that
// fails validation is rejected and the current settings stay in place.
func (s *Store) Load(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}

	loaded := s.defaults
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return false, fmt.Errorf("decode settings: %w", err)
	}
	loaded.Currency = core.NormalizeCurrency(loaded.Currency)
	if err := loaded.Validate(); err != nil {
		return false, fmt.Errorf("saved settings: %w", err)
	}

	s.mu.Lock()
	s.current = loaded
	s.rev++
	s.mu.Unlock()
	return true, nil
}

func (s *Store) Current() core.Settings {
	cur, _ := s.Snapshot()
	return cur
}

// Snapshot returns the settings with the revision they were read at.
func (s *Store) Snapshot() (core.Settings, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.rev
}

// Update merges patch into the current settings. Invalid results are
// rejected without changing anything.
func (s *Store) Update(patch core.SettingsPatch) (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.Apply(s.current)
	if err := next.Validate(); err != nil {
		return s.current, err
	}
	s.current = next
	s.rev++
	return next, nil
}

// Save writes the current settings as flat JSON.
func (s *Store) Save(ctx context.Context) error {
	raw, err := json.Marshal(s.Current())
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Put(ctx, Key, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Reset restores the defaults and forgets the saved record.
func (s *Store) Reset(ctx context.Context) (core.Settings, error) {
	s.mu.Lock()
	s.current = s.defaults
	s.rev++
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, Key); err != nil {
		return s.defaults, fmt.Errorf("reset settings: %w", err)
	}
	return s.defaults, nil
}

func (s *Store) Defaults() core.Settings {
	return s.defaults
}
