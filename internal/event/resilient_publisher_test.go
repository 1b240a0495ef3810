package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBus fails while shouldFail returns true for the 1-based call number
type flakyBus struct {
	mu           sync.Mutex
	calls        []Event
	times        []time.Time
	shouldFail   func(call int) bool
	publishDelay time.Duration
}

func (b *flakyBus) Publish(ctx context.Context, event Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, event)
	b.times = append(b.times, time.Now())
	n := len(b.calls)
	b.mu.Unlock()

	if b.publishDelay > 0 {
		time.Sleep(b.publishDelay)
	}
	if b.shouldFail != nil && b.shouldFail(n) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *flakyBus) Times() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.times...)
}

func deadLetterLines(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func balanceEvent() Event {
	return NewBalanceUpdatedEvent("user-1", decimal.NewFromInt(900), decimal.NewFromInt(-100), "round-1:stake")
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), balanceEvent()))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.CallCount())
	assert.Empty(t, deadLetterLines(t, path))
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(call int) bool { return call == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	ev := balanceEvent()
	rp.PublishWithRetry(context.Background(), ev)

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 10*time.Millisecond)

	bus.mu.Lock()
	assert.Equal(t, ev.ID, bus.calls[1].ID, "retries must reuse the event ID")
	bus.mu.Unlock()
	assert.Empty(t, deadLetterLines(t, path))
}

func TestResilientPublisher_RetryExhaustionWritesDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	ev := balanceEvent()
	rp.PublishWithRetry(context.Background(), ev)

	// initial + 3 retries
	assert.Eventually(t, func() bool { return bus.CallCount() >= 4 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := deadLetterLines(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, ev.ID, entries[0].Event.ID)
	assert.Equal(t, BalanceUpdated, entries[0].Event.Type)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, "bus unavailable", entries[0].LastError)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		shutdown:   make(chan struct{}),
	}
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	rp.deadLetter = dl

	// No worker is running, so the queue fills after two entries
	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), balanceEvent())
	}

	assert.Len(t, deadLetterLines(t, path), 3)
	require.NoError(t, dl.Close())
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(call int) bool { return call <= 2 }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), balanceEvent())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	// 3 initial attempts + 2 drained retries
	assert.Equal(t, 5, bus.CallCount())
	assert.Empty(t, deadLetterLines(t, path))
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{shouldFail: func(call int) bool { return call < 4 }}

	base := 60 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), balanceEvent())
	assert.Eventually(t, func() bool { return bus.CallCount() >= 4 }, 2*time.Second, 10*time.Millisecond)

	times := bus.Times()
	first := times[1].Sub(times[0])
	second := times[2].Sub(times[1])
	assert.GreaterOrEqual(t, first, base)
	assert.GreaterOrEqual(t, second, 2*base)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(2*time.Second, 0))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(2*time.Second, 1))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(2*time.Second, 3))
}
