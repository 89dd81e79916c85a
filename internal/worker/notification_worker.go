// Package worker processes notifications published by the expense tracker.
package worker

import (
	"context"
	"sync"

	"expensetracker/internal/log"
	"expensetracker/internal/notify"
)

const defaultFeedSize = 50

// NotificationWorker logs every notification and keeps a short feed of the
// most recent ones, newest first.
type NotificationWorker struct {
	mu       sync.Mutex
	feed     []notify.Event
	feedSize int
	counts   map[notify.Kind]int
	logger   *log.Logger
}

func NewNotificationWorker(feedSize int, logger *log.Logger) *NotificationWorker {
	if feedSize < 1 {
		feedSize = defaultFeedSize
	}
	return &NotificationWorker{
		feedSize: feedSize,
		counts:   make(map[notify.Kind]int),
		logger:   logger.WithComponent(log.ComponentNotify),
	}
}

// HandleEvent processes a single notification from AMQP.
func (w *NotificationWorker) HandleEvent(ctx context.Context, e notify.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	w.feed = append([]notify.Event{e}, w.feed...)
	if len(w.feed) > w.feedSize {
		w.feed = w.feed[:w.feedSize]
	}
	w.counts[e.Kind]++
	w.mu.Unlock()

	w.logger.InfoContext(ctx, e.Message,
		log.FieldEvent, string(e.Kind),
		log.FieldExpenseID, e.ExpenseID,
		"published_at", e.At)
	return nil
}

// Recent returns a copy of the feed, newest first.
func (w *NotificationWorker) Recent() []notify.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]notify.Event(nil), w.feed...)
}

// Count reports how many events of kind have been handled.
func (w *NotificationWorker) Count(kind notify.Kind) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counts[kind]
}
