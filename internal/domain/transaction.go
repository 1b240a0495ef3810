package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes deposits from withdrawals
type TransactionKind string

const (
	TransactionDeposit    TransactionKind = "deposit"
	TransactionWithdrawal TransactionKind = "withdrawal"
)

// TransactionStatus is the approval state of a wallet request
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionApproved TransactionStatus = "approved"
	TransactionRejected TransactionStatus = "rejected"
)

// Transaction is a wallet request waiting for, or resolved by, an operator
type Transaction struct {
	ID         uuid.UUID         `json:"id"`
	UserID     string            `json:"user_id"`
	Kind       TransactionKind   `json:"kind"`
	Amount     decimal.Decimal   `json:"amount"`
	Status     TransactionStatus `json:"status"`
	Note       string            `json:"note,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	ResolvedAt *time.Time        `json:"resolved_at,omitempty"`
	ResolvedBy string            `json:"resolved_by,omitempty"`
}

// LedgerReference builds the idempotency key used when a transaction moves money
func (t Transaction) LedgerReference() string {
	return "tx:" + t.ID.String()
}
