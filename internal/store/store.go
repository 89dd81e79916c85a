// Package store holds the canonical, ordered expense collection.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"expensetracker/internal/core"
)

const maxIDAttempts = 8

// Store keeps expenses newest-created-first. Readers always receive copies.
type Store struct {
	mu    sync.Mutex
	items []core.Expense
	rev   uint64
	newID func() string
}

type Option func(*Store)

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func New(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates the input, assigns a fresh ID and inserts the expense at the
// head of the collection.
func (s *Store) Add(_ context.Context, in core.ExpenseInput) (core.Expense, error) {
	if err := in.Validate(); err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.freshID()
	if err != nil {
		return core.Expense{}, err
	}
	e := in.WithID(id)

	items := make([]core.Expense, 0, len(s.items)+1)
	items = append(items, e)
	s.items = append(items, s.items...)
	s.rev++
	return e, nil
}

// Update merges patch into the expense with the given ID. The merged record
// is validated before it replaces the old one; on any error the collection is
// left unchanged.
func (s *Store) Update(_ context.Context, id string, patch core.ExpensePatch) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("update %q: %w", id, core.ErrNotFound)
	}

	updated := patch.Apply(s.items[i])
	if err := updated.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.items[i] = updated
	s.rev++
	return updated, nil
}

// Delete removes the expense with the given ID. A missing ID is reported as
// core.ErrNotFound and nothing changes.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, core.ErrNotFound)
	}

	items := make([]core.Expense, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	s.items = append(items, s.items[i+1:]...)
	s.rev++
	return nil
}

func (s *Store) Get(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("get %q: %w", id, core.ErrNotFound)
	}
	return s.items[i], nil
}

// List returns a copy of the collection, newest first.
func (s *Store) List(_ context.Context) []core.Expense {
	items, _ := s.Snapshot()
	return items
}

// Snapshot returns a copy of the collection together with the revision it
// was taken at.
func (s *Store) Snapshot() ([]core.Expense, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), s.rev
}

// Replace swaps the whole collection, e.g. with records from a data source.
// Order is kept as given. Invalid records or duplicate IDs reject the batch.
func (s *Store) Replace(_ context.Context, expenses []core.Expense) error {
	seen := make(map[string]struct{}, len(expenses))
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("record %d (%q): %w", i, e.ID, core.ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Expense(nil), expenses...)
	s.rev++
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Revision increases by one on every successful mutation.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique expense id")
}
