// Package wallet handles deposit and withdrawal requests that an operator approves.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// Repository is the store surface the wallet needs
type Repository interface {
	repository.Wallet
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// Service defines wallet operations
type Service interface {
	RequestDeposit(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error)
	RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error)
	List(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	ListPending(ctx context.Context) ([]domain.Transaction, error)
	Approve(ctx context.Context, id uuid.UUID, admin string) (*domain.Transaction, error)
	Reject(ctx context.Context, id uuid.UUID, admin, note string) (*domain.Transaction, error)
}

type service struct {
	repo      Repository
	publisher event.Bus
}

// NewService creates a wallet service
func NewService(repo Repository, publisher event.Bus) Service {
	return &service{repo: repo, publisher: publisher}
}

// RequestDeposit records a pending deposit
func (s *service) RequestDeposit(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	if err := validateRequest(amount, note); err != nil {
		return nil, err
	}
	// confirms the user exists
	if _, err := s.repo.GetBalance(ctx, userID); err != nil {
		return nil, err
	}
	return s.create(ctx, userID, domain.TransactionDeposit, amount, note)
}

// RequestWithdrawal records a pending withdrawal. The balance is checked now and again
// on approval, since it can change in between.
func (s *service) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	if err := validateRequest(amount, note); err != nil {
		return nil, err
	}
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", domain.ErrInsufficientBalance, balance, amount)
	}
	return s.create(ctx, userID, domain.TransactionWithdrawal, amount, note)
}

func (s *service) create(ctx context.Context, userID string, kind domain.TransactionKind, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		Status:    domain.TransactionPending,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTransactionRequested,
		"transaction_id", tx.ID, "user_id", userID, "kind", kind, "amount", amount)
	s.publish(ctx, event.NewTransactionEvent(event.TransactionCreated, tx))
	return tx, nil
}

// List returns transactions with status; an empty status lists all
func (s *service) List(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	switch status {
	case "", domain.TransactionPending, domain.TransactionApproved, domain.TransactionRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.repo.ListTransactions(ctx, status)
}

// ListPending returns requests awaiting an operator
func (s *service) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, domain.TransactionPending)
}

// Approve applies the balance change and marks the request approved in one store transaction
func (s *service) Approve(ctx context.Context, id uuid.UUID, admin string) (*domain.Transaction, error) {
	return s.resolve(ctx, id, domain.TransactionApproved, admin, "")
}

// Reject closes the request without moving money
func (s *service) Reject(ctx context.Context, id uuid.UUID, admin, note string) (*domain.Transaction, error) {
	if len(note) > MaxNoteLength {
		return nil, fmt.Errorf("%w: note longer than %d", domain.ErrInvalidInput, MaxNoteLength)
	}
	return s.resolve(ctx, id, domain.TransactionRejected, admin, note)
}

func (s *service) resolve(ctx context.Context, id uuid.UUID, status domain.TransactionStatus, admin, note string) (*domain.Transaction, error) {
	if admin == "" {
		return nil, fmt.Errorf("%w: resolver name is required", domain.ErrInvalidInput)
	}

	tx, balance, err := s.repo.ResolveTransaction(ctx, id, status, admin, note)
	if err != nil {
		return nil, err
	}

	delta := decimal.Zero
	if status == domain.TransactionApproved {
		delta = tx.Amount
		if tx.Kind == domain.TransactionWithdrawal {
			delta = delta.Neg()
		}
	}

	logger.FromContext(ctx).Info(LogMsgTransactionResolved,
		"transaction_id", tx.ID, "status", status, "resolved_by", admin, "balance", balance)
	s.publish(ctx, event.NewTransactionEvent(event.TransactionResolved, tx))
	s.publish(ctx, event.NewBalanceUpdatedEvent(tx.UserID, balance, delta, tx.LedgerReference()))
	return tx, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func validateRequest(amount decimal.Decimal, note string) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(domain.MoneyPlaces)) {
		return fmt.Errorf("%w: at most %d decimal places", domain.ErrInvalidAmount, domain.MoneyPlaces)
	}
	if len(note) > MaxNoteLength {
		return fmt.Errorf("%w: note longer than %d", domain.ErrInvalidInput, MaxNoteLength)
	}
	return nil
}
