package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

const transactionColumns = `transaction_id, user_id, kind, amount::text, status, note, created_at, resolved_at, resolved_by`

// CreateTransaction stores a pending wallet request
func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO transactions (transaction_id, user_id, kind, amount, status, note, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`,
		t.ID, t.UserID, string(t.Kind), t.Amount.String(), string(t.Status), t.Note, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	return nil
}

// GetTransaction returns one wallet request
func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTransaction, err)
	}
	return t, nil
}

// ListTransactions returns requests with status, oldest first. An empty status lists all.
func (s *Store) ListTransactions(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE $1 = '' OR status = $1
		ORDER BY created_at`, string(status))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ResolveTransaction approves or rejects a pending request. Approval moves money under the
// same database transaction as the status change.
func (s *Store) ResolveTransaction(ctx context.Context, id uuid.UUID, status domain.TransactionStatus, resolvedBy, note string) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	t, err := scanTransaction(tx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, decimal.Zero, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToGetTransaction, err)
	}
	if t.Status != domain.TransactionPending {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", domain.ErrTransactionNotPending, t.Status)
	}

	var balance decimal.Decimal
	if status == domain.TransactionApproved {
		delta := t.Amount
		if t.Kind == domain.TransactionWithdrawal {
			delta = delta.Neg()
		}
		if balance, err = applyDelta(ctx, tx, t.UserID, delta, t.LedgerReference()); err != nil {
			return nil, decimal.Zero, err
		}
	} else {
		var text string
		if err := tx.QueryRow(ctx, `SELECT balance::text FROM users WHERE user_id = $1`, t.UserID).Scan(&text); err != nil {
			return nil, decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
		}
		if balance, err = parseAmount(text); err != nil {
			return nil, decimal.Zero, err
		}
	}

	t, err = scanTransaction(tx.QueryRow(ctx, `
		UPDATE transactions SET status = $2, resolved_at = NOW(), resolved_by = $3, note = $4
		WHERE transaction_id = $1
		RETURNING `+transactionColumns, id, string(status), resolvedBy, note))
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToResolveTransaction, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return t, balance, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t                    domain.Transaction
		kind, amount, status string
		resolvedAt           pgtype.Timestamptz
	)
	if err := row.Scan(&t.ID, &t.UserID, &kind, &amount, &status, &t.Note, &t.CreatedAt, &resolvedAt, &t.ResolvedBy); err != nil {
		return nil, err
	}
	t.Kind = domain.TransactionKind(kind)
	t.Status = domain.TransactionStatus(status)
	if resolvedAt.Valid {
		at := resolvedAt.Time
		t.ResolvedAt = &at
	}
	var err error
	if t.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	return &t, nil
}
