package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockRepository) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockRepository) ListTransactions(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockRepository) ResolveTransaction(ctx context.Context, id uuid.UUID, status domain.TransactionStatus, resolvedBy, note string) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, id, status, resolvedBy, note)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// capturingBus records published events
type capturingBus struct {
	events []event.Event
}

func (b *capturingBus) Publish(_ context.Context, evt event.Event) error {
	b.events = append(b.events, evt)
	return nil
}

func (b *capturingBus) Subscribe(event.Type, event.Handler) {}

func (b *capturingBus) types() []event.Type {
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRequestDeposit(t *testing.T) {
	repo := new(MockRepository)
	bus := &capturingBus{}
	svc := NewService(repo, bus)
	ctx := context.Background()

	repo.On("GetBalance", ctx, "alice").Return(dec("5"), nil)
	repo.On("CreateTransaction", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Kind == domain.TransactionDeposit && tx.Status == domain.TransactionPending && tx.Amount.Equal(dec("20.50"))
	})).Return(nil)

	tx, err := svc.RequestDeposit(ctx, "alice", dec("20.50"), "birthday")

	require.NoError(t, err)
	assert.Equal(t, "alice", tx.UserID)
	assert.Equal(t, []event.Type{event.TransactionCreated}, bus.types())
	repo.AssertExpectations(t)
}

func TestRequestWithdrawal_ChecksBalance(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()
	repo.On("GetBalance", ctx, "bob").Return(dec("10"), nil)

	_, err := svc.RequestWithdrawal(ctx, "bob", dec("10.01"), "")

	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	repo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestRequest_InvalidAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"sub-cent", "1.001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, nil)

			_, err := svc.RequestDeposit(context.Background(), "u", dec(tt.amount), "")
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
			_, err = svc.RequestWithdrawal(context.Background(), "u", dec(tt.amount), "")
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
			repo.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
		})
	}
}

func TestRequestDeposit_UnknownUser(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()
	repo.On("GetBalance", ctx, "ghost").Return(decimal.Zero, domain.ErrUserNotFound)

	_, err := svc.RequestDeposit(ctx, "ghost", dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestApprove_PublishesResolutionAndBalance(t *testing.T) {
	repo := new(MockRepository)
	bus := &capturingBus{}
	svc := NewService(repo, bus)
	ctx := context.Background()

	id := uuid.New()
	now := time.Now()
	resolved := &domain.Transaction{
		ID: id, UserID: "carol", Kind: domain.TransactionWithdrawal, Amount: dec("30"),
		Status: domain.TransactionApproved, ResolvedAt: &now, ResolvedBy: "ops",
	}
	repo.On("ResolveTransaction", ctx, id, domain.TransactionApproved, "ops", "").Return(resolved, dec("70"), nil)

	tx, err := svc.Approve(ctx, id, "ops")

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionApproved, tx.Status)
	require.Equal(t, []event.Type{event.TransactionResolved, event.BalanceUpdated}, bus.types())

	p := bus.events[1].Payload.(event.BalanceUpdatedPayloadV1)
	assert.True(t, p.Delta.Equal(dec("-30")), "withdrawal delta is negative")
	assert.True(t, p.Balance.Equal(dec("70")))
	assert.Equal(t, "tx:"+id.String(), p.Reference)
}

func TestReject_ZeroDelta(t *testing.T) {
	repo := new(MockRepository)
	bus := &capturingBus{}
	svc := NewService(repo, bus)
	ctx := context.Background()

	id := uuid.New()
	resolved := &domain.Transaction{ID: id, UserID: "dan", Kind: domain.TransactionDeposit, Amount: dec("5"), Status: domain.TransactionRejected}
	repo.On("ResolveTransaction", ctx, id, domain.TransactionRejected, "ops", "no proof").Return(resolved, dec("1"), nil)

	_, err := svc.Reject(ctx, id, "ops", "no proof")

	require.NoError(t, err)
	p := bus.events[1].Payload.(event.BalanceUpdatedPayloadV1)
	assert.True(t, p.Delta.IsZero())
}

func TestResolve_Errors(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Approve(ctx, id, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("ResolveTransaction", ctx, id, domain.TransactionApproved, "ops", "").Return(nil, decimal.Zero, domain.ErrTransactionNotPending)
	_, err = svc.Approve(ctx, id, "ops")
	assert.ErrorIs(t, err, domain.ErrTransactionNotPending)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	_, err := svc.List(context.Background(), "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("ListTransactions", mock.Anything, domain.TransactionStatus("")).Return([]domain.Transaction{}, nil)
	_, err = svc.List(context.Background(), "")
	assert.NoError(t, err)
}
