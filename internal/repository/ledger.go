package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// Ledger is the single writer of balances. Every mutation carries a reference that
// is applied at most once; replaying a reference returns the current balance.
type Ledger interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	// Debit fails with domain.ErrInsufficientBalance and mutates nothing when funds are short
	Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error)
	// RecordBet appends the settlement record. A second record for the same round is a no-op.
	RecordBet(ctx context.Context, entry *domain.BetLogEntry) error
}

// BetLog reads the settlement history
type BetLog interface {
	GetRecentBets(ctx context.Context, userID string, limit int) ([]domain.BetLogEntry, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
