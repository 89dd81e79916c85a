// Package notify delivers user-facing notifications about expense and
// settings changes. Delivery is advisory: a failed notification never
// rolls back the change it describes.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"expensetracker/internal/log"
)

type Kind string

const (
	KindExpenseAdded    Kind = "expense.added"
	KindExpenseUpdated  Kind = "expense.updated"
	KindExpenseDeleted  Kind = "expense.deleted"
	KindSettingsUpdated Kind = "settings.updated"
	KindSettingsReset   Kind = "settings.reset"
)

// Event is a single notification.
type Event struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ExpenseID string    `json:"expenseId,omitempty"`
	At        time.Time `json:"at"`
}

func NewEvent(kind Kind, message, expenseID string) Event {
	return Event{
		Kind:      kind,
		Message:   message,
		ExpenseID: expenseID,
		At:        time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EventFromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// LogNotifier writes every event to the structured log.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent(log.ComponentNotify)}
}

func (n *LogNotifier) Notify(ctx context.Context, e Event) error {
	n.logger.InfoContext(ctx, e.Message,
		log.FieldEvent, string(e.Kind),
		log.FieldExpenseID, e.ExpenseID)
	return nil
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
