package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// Wallet stores deposit and withdrawal requests
type Wallet interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	// ResolveTransaction moves a pending request to status and, when approved, applies the
	// balance change under the same database transaction. Returns the balance afterwards.
	ResolveTransaction(ctx context.Context, id uuid.UUID, status domain.TransactionStatus, resolvedBy, note string) (*domain.Transaction, decimal.Decimal, error)
}
