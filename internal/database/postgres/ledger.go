package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// GetBalance returns the current balance
func (s *Store) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var text string
	err := s.db.QueryRow(ctx, `SELECT balance::text FROM users WHERE user_id = $1`, userID).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return parseAmount(text)
}

// Debit subtracts amount unless the balance would go negative
func (s *Store) Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	return s.mutate(ctx, userID, amount.Neg(), reference)
}

// Credit adds amount
func (s *Store) Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	return s.mutate(ctx, userID, amount, reference)
}

func (s *Store) mutate(ctx context.Context, userID string, delta decimal.Decimal, reference string) (decimal.Decimal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := applyDelta(ctx, tx, userID, delta, reference)
	if err != nil {
		return decimal.Zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return balance, nil
}

// applyDelta locks the user's row, applies delta once per reference and appends the entry.
// A reference seen before returns the current balance untouched.
func applyDelta(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal, reference string) (decimal.Decimal, error) {
	var text string
	err := tx.QueryRow(ctx, `SELECT balance::text FROM users WHERE user_id = $1 FOR UPDATE`, userID).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToLockBalance, err)
	}
	balance, err := parseAmount(text)
	if err != nil {
		return decimal.Zero, err
	}

	var applied bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE reference = $1)`, reference).Scan(&applied); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToCheckReference, err)
	}
	if applied {
		return balance, nil
	}

	next := balance.Add(delta)
	if next.IsNegative() {
		return balance, fmt.Errorf("%w: balance %s, debit %s", domain.ErrInsufficientBalance, balance, delta.Neg())
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET balance = $2::numeric, updated_at = NOW() WHERE user_id = $1`,
		userID, next.String()); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO ledger_entries (user_id, reference, delta, balance_after) VALUES ($1, $2, $3::numeric, $4::numeric)`,
		userID, reference, delta.String(), next.String()); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToAppendEntry, err)
	}
	return next, nil
}

// RecordBet appends a settlement. The unique round_id makes a repeat a no-op.
func (s *Store) RecordBet(ctx context.Context, entry *domain.BetLogEntry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bet_log (bet_id, round_id, user_id, game, stake, won, outcome, payout, forced, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8::numeric, $9, $10)
		ON CONFLICT (round_id) DO NOTHING`,
		entry.ID, entry.RoundID, entry.UserID, string(entry.Game), entry.Stake.String(),
		entry.Won, string(entry.Outcome), entry.Payout.String(), entry.Forced, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordBet, err)
	}
	return nil
}

// GetRecentBets returns the user's latest settlements, newest first
func (s *Store) GetRecentBets(ctx context.Context, userID string, limit int) ([]domain.BetLogEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT bet_id, round_id, user_id, game, stake::text, won, outcome, payout::text, forced, created_at
		FROM bet_log WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBets, err)
	}
	defer rows.Close()

	var bets []domain.BetLogEntry
	for rows.Next() {
		var (
			b                 domain.BetLogEntry
			game, outcome     string
			stake, payoutText string
		)
		if err := rows.Scan(&b.ID, &b.RoundID, &b.UserID, &game, &stake, &b.Won, &outcome, &payoutText, &b.Forced, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBets, err)
		}
		b.Game = domain.GameType(game)
		b.Outcome = domain.OutcomeKind(outcome)
		if b.Stake, err = parseAmount(stake); err != nil {
			return nil, err
		}
		if b.Payout, err = parseAmount(payoutText); err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// GetLeaderboard ranks players by net winnings
func (s *Store) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.user_id, u.username, COUNT(*),
		       SUM(b.stake)::text, SUM(b.payout)::text, (SUM(b.payout) - SUM(b.stake))::text
		FROM bet_log b JOIN users u ON u.user_id = b.user_id
		GROUP BY b.user_id, u.username
		ORDER BY SUM(b.payout) - SUM(b.stake) DESC, u.username
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	defer rows.Close()

	var board []domain.LeaderboardEntry
	for rows.Next() {
		var (
			e                  domain.LeaderboardEntry
			wagered, paid, net string
		)
		if err := rows.Scan(&e.UserID, &e.Username, &e.Rounds, &wagered, &paid, &net); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
		}
		if e.Wagered, err = parseAmount(wagered); err != nil {
			return nil, err
		}
		if e.Paid, err = parseAmount(paid); err != nil {
			return nil, err
		}
		if e.Net, err = parseAmount(net); err != nil {
			return nil, err
		}
		board = append(board, e)
	}
	return board, rows.Err()
}
