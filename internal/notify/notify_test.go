package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/log"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp091.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Notify(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestEventJSON(t *testing.T) {
	e := Event{
		Kind:      KindExpenseAdded,
		Message:   "Expense added successfully",
		ExpenseID: "exp1",
		At:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := e.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"expense.added","message":"Expense added successfully","expenseId":"exp1","at":"2024-01-01T12:00:00Z"}`, string(raw))

	back, err := EventFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, e, back)

	_, err = EventFromJSON([]byte(`{"kind":`))
	assert.Error(t, err)
}

func TestLogNotifierWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(log.New(log.Config{Output: &buf}))

	require.NoError(t, n.Notify(context.Background(), NewEvent(KindExpenseDeleted, "Expense deleted successfully", "exp2")))

	out := buf.String()
	assert.Contains(t, out, "Expense deleted successfully")
	assert.Contains(t, out, "event=expense.deleted")
	assert.Contains(t, out, "expense_id=exp2")
	assert.Contains(t, out, "component=notify")
}

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("broker down")}
	m := Multi{ok, nil, bad}

	err := m.Notify(context.Background(), NewEvent(KindSettingsUpdated, "Settings updated successfully", ""))

	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, bad.events, 1)
	assert.NoError(t, Multi{ok}.Notify(context.Background(), Event{}))
}

func TestAMQPPublisherPublishesJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "expense_tracker", "expense.events", log.Nop())
	e := NewEvent(KindExpenseUpdated, "Expense updated successfully", "exp1")

	require.NoError(t, p.Notify(context.Background(), e))

	require.Len(t, ch.msgs, 1)
	msg := ch.msgs[0]
	assert.Equal(t, "expense_tracker", ch.exchange)
	assert.Equal(t, "expense.events", ch.key)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, string(KindExpenseUpdated), msg.Type)

	back, err := EventFromJSON(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "exp1", back.ExpenseID)
}

func TestAMQPPublisherErrors(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newAMQPPublisher(ch, "x", "k", log.Nop())

	err := p.Notify(context.Background(), Event{Kind: KindExpenseAdded})
	assert.ErrorContains(t, err, "publish event")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Notify(ctx, Event{}), context.Canceled)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.ErrorIs(t, p.Notify(context.Background(), Event{}), ErrPublisherClosed)
}
