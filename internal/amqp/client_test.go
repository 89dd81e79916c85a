package amqp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"expensetracker/internal/log"
	"expensetracker/internal/notify"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{70, 30 * time.Second}, // no overflow
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection error", errors.New("connection refused"), true},
		{"closed connection error", errors.New("connection closed"), true},
		{"EOF error", errors.New("unexpected EOF"), true},
		{"broken pipe error", errors.New("broken pipe"), true},
		{"amqp closed", fmt.Errorf("consume: %w", amqp091.ErrClosed), true},
		{"other error", errors.New("some other error"), false},
		{"validation error", errors.New("invalid input"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isConnectionError(tt.err)
			if result != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

type ackRecord struct {
	tag     uint64
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	records []ackRecord
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, ackRecord{tag: tag, ack: true})
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, ackRecord{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func delivery(ack amqp091.Acknowledger, tag uint64, body string) amqp091.Delivery {
	return amqp091.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: []byte(body)}
}

func TestConsumeAcksNacksAndRequeues(t *testing.T) {
	ack := &fakeAcknowledger{}
	msgs := make(chan amqp091.Delivery, 3)
	msgs <- delivery(ack, 1, `{"kind":"expense.added","message":"Expense added successfully","expenseId":"exp1"}`)
	msgs <- delivery(ack, 2, `not json`)
	msgs <- delivery(ack, 3, `{"kind":"expense.deleted","message":"Expense deleted successfully","expenseId":"boom"}`)
	close(msgs)

	var handled []notify.Event
	handler := func(_ context.Context, e notify.Event) error {
		handled = append(handled, e)
		if e.ExpenseID == "boom" {
			return errors.New("handler failed")
		}
		return nil
	}

	c := NewConsumer("amqp://localhost/", "x", "k", "q", log.Nop())
	err := c.consume(context.Background(), msgs, handler)

	if !errors.Is(err, ErrDeliveriesClosed) {
		t.Fatalf("consume() error = %v, want ErrDeliveriesClosed", err)
	}
	if len(handled) != 2 {
		t.Fatalf("handled %d events, want 2", len(handled))
	}
	want := []ackRecord{
		{tag: 1, ack: true},
		{tag: 2, requeue: false},
		{tag: 3, requeue: true},
	}
	if len(ack.records) != len(want) {
		t.Fatalf("ack records = %+v", ack.records)
	}
	for i, r := range want {
		if ack.records[i] != r {
			t.Errorf("record %d = %+v, want %+v", i, ack.records[i], r)
		}
	}
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConsumer("amqp://localhost/", "x", "k", "q", log.Nop())
	err := c.consume(ctx, make(chan amqp091.Delivery), func(context.Context, notify.Event) error { return nil })

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("consume() error = %v, want context.Canceled", err)
	}
}

func TestCloseWithoutConnection(t *testing.T) {
	c := NewConsumer("amqp://localhost/", "x", "k", "q", log.Nop())
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
