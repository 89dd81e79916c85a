package services

import (
	"context"
	"fmt"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/notify"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

const (
	MsgExpenseAdded    = "Expense added successfully"
	MsgExpenseUpdated  = "Expense updated successfully"
	MsgExpenseDeleted  = "Expense deleted successfully"
	MsgSettingsUpdated = "Settings updated successfully"
	MsgSettingsReset   = "Settings reset to defaults"
)

// ExpenseSource supplies an initial expense collection.
type ExpenseSource interface {
	Expenses(ctx context.Context) ([]core.Expense, error)
}

// ExpenseService applies mutations to the expense collection and the
// settings, then announces them. A failed announcement is logged and never
// fails the mutation.
type ExpenseService struct {
	store    *store.Store
	settings *settings.Store
	notifier notify.Notifier
	logger   *log.Logger
}

func NewExpenseService(st *store.Store, set *settings.Store, notifier notify.Notifier, logger *log.Logger) *ExpenseService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &ExpenseService{
		store:    st,
		settings: set,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentExpense),
	}
}

// Seed replaces the collection with the records from src.
func (s *ExpenseService) Seed(ctx context.Context, src ExpenseSource) (int, error) {
	expenses, err := src.Expenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch expenses: %w", err)
	}
	if err := s.store.Replace(ctx, expenses); err != nil {
		return 0, fmt.Errorf("seed store: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense collection seeded",
		log.FieldOperation, log.OpSeed,
		log.FieldCount, len(expenses),
		log.FieldRevision, s.store.Revision())
	return len(expenses), nil
}

func (s *ExpenseService) List(ctx context.Context, f aggregate.Filter) []core.Expense {
	all := s.store.List(ctx)
	if f.IsEmpty() {
		return all
	}
	return f.Apply(all)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.Get(ctx, id)
}

func (s *ExpenseService) Add(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	e, err := s.store.Add(ctx, in)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense added",
		log.NewFields().WithOperation(log.OpCreate).WithExpense(e).ToSlice()...)
	s.announce(ctx, notify.NewEvent(notify.KindExpenseAdded, MsgExpenseAdded, e.ID))
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, patch core.ExpensePatch) (core.Expense, error) {
	e, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense updated",
		log.NewFields().WithOperation(log.OpUpdate).WithExpense(e).ToSlice()...)
	s.announce(ctx, notify.NewEvent(notify.KindExpenseUpdated, MsgExpenseUpdated, e.ID))
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id)
	s.announce(ctx, notify.NewEvent(notify.KindExpenseDeleted, MsgExpenseDeleted, id))
	return nil
}

// Count reports the collection size and its revision.
func (s *ExpenseService) Count() (int, uint64) {
	return s.store.Len(), s.store.Revision()
}

func (s *ExpenseService) Settings() core.Settings {
	return s.settings.Current()
}

// UpdateSettings merges patch into the settings and saves them. The new
// settings stay in effect even if saving fails.
func (s *ExpenseService) UpdateSettings(ctx context.Context, patch core.SettingsPatch) (core.Settings, error) {
	next, err := s.settings.Update(patch)
	if err != nil {
		return next, fmt.Errorf("update settings: %w", err)
	}

	if err := s.settings.Save(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save settings",
			log.NewFields().WithOperation(log.OpSave).WithError(err).WithErrorType(log.ErrorTypeDatabase).ToSlice()...)
	}

	s.logger.InfoContext(ctx, "Settings updated",
		log.NewFields().WithOperation(log.OpUpdate).WithSettings(next).ToSlice()...)
	s.announce(ctx, notify.NewEvent(notify.KindSettingsUpdated, MsgSettingsUpdated, ""))
	return next, nil
}

func (s *ExpenseService) ResetSettings(ctx context.Context) (core.Settings, error) {
	def, err := s.settings.Reset(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete saved settings",
			log.NewFields().WithOperation(log.OpReset).WithError(err).WithErrorType(log.ErrorTypeDatabase).ToSlice()...)
	}

	s.logger.InfoContext(ctx, "Settings reset",
		log.NewFields().WithOperation(log.OpReset).WithSettings(def).ToSlice()...)
	s.announce(ctx, notify.NewEvent(notify.KindSettingsReset, MsgSettingsReset, ""))
	return def, nil
}

func (s *ExpenseService) announce(ctx context.Context, e notify.Event) {
	if err := s.notifier.Notify(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "Failed to deliver notification",
			log.NewFields().WithOperation(log.OpPublish).WithError(err).WithErrorType(log.ErrorTypeNetwork).ToSlice()...)
	}
}
