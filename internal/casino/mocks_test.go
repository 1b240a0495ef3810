package casino

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// MockLedger implements repository.Ledger for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedger) Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount, reference)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedger) Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount, reference)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedger) RecordBet(ctx context.Context, entry *domain.BetLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockResolver implements probability.Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, game domain.GameType, userID string, maxPayout, balance decimal.Decimal) domain.Resolution {
	args := m.Called(ctx, game, userID, maxPayout, balance)
	return args.Get(0).(domain.Resolution)
}

// recordingBus keeps every published event
type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(_ context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(event.Type, event.Handler) {}

func (b *recordingBus) ofType(t event.Type) []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []event.Event
	for _, e := range b.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// memLedger is an in-memory ledger honouring reference idempotency
type memLedger struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	applied  map[string]bool
	bets     map[string]domain.BetLogEntry
}

func newMemLedger(balances map[string]decimal.Decimal) *memLedger {
	return &memLedger{
		balances: balances,
		applied:  make(map[string]bool),
		bets:     make(map[string]domain.BetLogEntry),
	}
}

func (l *memLedger) GetBalance(_ context.Context, userID string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[userID]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}
	return bal, nil
}

func (l *memLedger) Debit(_ context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.balances[userID]
	if l.applied[reference] {
		return bal, nil
	}
	if bal.LessThan(amount) {
		return bal, domain.ErrInsufficientBalance
	}
	l.applied[reference] = true
	l.balances[userID] = bal.Sub(amount)
	return l.balances[userID], nil
}

func (l *memLedger) Credit(_ context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.applied[reference] {
		l.applied[reference] = true
		l.balances[userID] = l.balances[userID].Add(amount)
	}
	return l.balances[userID], nil
}

func (l *memLedger) RecordBet(_ context.Context, entry *domain.BetLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.bets[entry.RoundID.String()]; !ok {
		l.bets[entry.RoundID.String()] = *entry
	}
	return nil
}

// forcedSettings holds one pending forced outcome per user and game
type forcedSettings struct {
	mu        sync.Mutex
	mode      domain.ForcedMode
	remaining int
}

func (f *forcedSettings) GetWinRates(context.Context, string, domain.GameType) (domain.WinRates, error) {
	return domain.WinRates{}, nil
}

func (f *forcedSettings) ConsumeForcedOutcome(context.Context, string, domain.GameType) (domain.ForcedMode, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.remaining <= 0 {
		return "", false, nil
	}
	f.remaining--
	return f.mode, true, nil
}

func (f *forcedSettings) left() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remaining
}

// scriptedSource replays fixed draws, then defers to a seeded source
type scriptedSource struct {
	ints   []int
	floats []float64
	rest   rng.Source
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return s.rest.IntN(n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return s.rest.Float64()
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
