package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

const transactionColumns = `transaction_id, user_id, kind, amount_cents, status, note, created_at, resolved_at, resolved_by`

// CreateTransaction stores a pending wallet request
func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (transaction_id, user_id, kind, amount_cents, status, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.UserID, string(t.Kind), toCents(t.Amount), string(t.Status), t.Note, t.CreatedAt.UTC())
	if err != nil {
		return wrap(ErrMsgFailedToInsertTransaction, err)
	}
	return nil
}

// GetTransaction returns one wallet request
func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetTransaction, err)
	}
	return t, nil
}

// ListTransactions returns requests with status, oldest first. An empty status lists all.
func (s *Store) ListTransactions(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE ?1 = '' OR status = ?1
		ORDER BY created_at`, string(status))
	if err != nil {
		return nil, wrap(ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, wrap(ErrMsgFailedToListTransactions, err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ResolveTransaction approves or rejects a pending request. Approval moves money under the
// same database transaction as the status change.
func (s *Store) ResolveTransaction(ctx context.Context, id uuid.UUID, status domain.TransactionStatus, resolvedBy, note string) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer repository.SafeRollback(ctx, tx)

	t, err := scanTransaction(tx.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, decimal.Zero, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, decimal.Zero, wrap(ErrMsgFailedToGetTransaction, err)
	}
	if t.Status != domain.TransactionPending {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", domain.ErrTransactionNotPending, t.Status)
	}

	var balance decimal.Decimal
	if status == domain.TransactionApproved {
		delta := toCents(t.Amount)
		if t.Kind == domain.TransactionWithdrawal {
			delta = -delta
		}
		if balance, err = applyDelta(ctx, tx.Tx, t.UserID, delta, t.LedgerReference()); err != nil {
			return nil, decimal.Zero, err
		}
	} else {
		var cents int64
		if err := tx.QueryRowContext(ctx, `SELECT balance_cents FROM users WHERE user_id = ?`, t.UserID).Scan(&cents); err != nil {
			return nil, decimal.Zero, wrap(ErrMsgFailedToGetUser, err)
		}
		balance = fromCents(cents)
	}

	t, err = scanTransaction(tx.QueryRowContext(ctx, `
		UPDATE transactions SET status = ?, resolved_at = ?, resolved_by = ?, note = ?
		WHERE transaction_id = ?
		RETURNING `+transactionColumns, string(status), time.Now().UTC(), resolvedBy, note, id.String()))
	if err != nil {
		return nil, decimal.Zero, wrap(ErrMsgFailedToResolveTransaction, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, wrap(ErrMsgFailedToCommitTransaction, err)
	}
	return t, balance, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t            domain.Transaction
		kind, status string
		cents        int64
		resolvedAt   sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.UserID, &kind, &cents, &status, &t.Note, &t.CreatedAt, &resolvedAt, &t.ResolvedBy); err != nil {
		return nil, err
	}
	t.Kind = domain.TransactionKind(kind)
	t.Status = domain.TransactionStatus(status)
	t.Amount = fromCents(cents)
	if resolvedAt.Valid {
		at := resolvedAt.Time
		t.ResolvedAt = &at
	}
	return &t, nil
}
