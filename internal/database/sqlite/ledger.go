package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// GetBalance returns the current balance
func (s *Store) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx, `SELECT balance_cents FROM users WHERE user_id = ?`, userID).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, domain.ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, wrap(ErrMsgFailedToGetUser, err)
	}
	return fromCents(cents), nil
}

// Debit subtracts amount unless the balance would go negative
func (s *Store) Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	return s.mutate(ctx, userID, -toCents(amount), reference)
}

// Credit adds amount
func (s *Store) Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error) {
	return s.mutate(ctx, userID, toCents(amount), reference)
}

func (s *Store) mutate(ctx context.Context, userID string, delta int64, reference string) (decimal.Decimal, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := applyDelta(ctx, tx.Tx, userID, delta, reference)
	if err != nil {
		return decimal.Zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, wrap(ErrMsgFailedToCommitTransaction, err)
	}
	return balance, nil
}

// applyDelta applies delta once per reference. The single connection makes the
// read-check-write sequence exclusive.
func applyDelta(ctx context.Context, tx *sql.Tx, userID string, delta int64, reference string) (decimal.Decimal, error) {
	var balance int64
	err := tx.QueryRowContext(ctx, `SELECT balance_cents FROM users WHERE user_id = ?`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, domain.ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, wrap(ErrMsgFailedToLockBalance, err)
	}

	var applied bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE reference = ?)`, reference).Scan(&applied); err != nil {
		return decimal.Zero, wrap(ErrMsgFailedToCheckReference, err)
	}
	if applied {
		return fromCents(balance), nil
	}

	next := balance + delta
	if next < 0 {
		return fromCents(balance), fmt.Errorf("%w: balance %s, debit %s",
			domain.ErrInsufficientBalance, fromCents(balance), fromCents(-delta))
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET balance_cents = ?, updated_at = ? WHERE user_id = ?`,
		next, time.Now().UTC(), userID); err != nil {
		return decimal.Zero, wrap(ErrMsgFailedToUpdateBalance, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (user_id, reference, delta_cents, balance_after_cents, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, reference, delta, next, time.Now().UTC()); err != nil {
		return decimal.Zero, wrap(ErrMsgFailedToAppendEntry, err)
	}
	return fromCents(next), nil
}

// RecordBet appends a settlement. The unique round_id makes a repeat a no-op.
func (s *Store) RecordBet(ctx context.Context, e *domain.BetLogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bet_log (bet_id, round_id, user_id, game, stake_cents, won, outcome, payout_cents, forced, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (round_id) DO NOTHING`,
		e.ID.String(), e.RoundID.String(), e.UserID, string(e.Game), toCents(e.Stake),
		e.Won, string(e.Outcome), toCents(e.Payout), e.Forced, e.CreatedAt.UTC())
	if err != nil {
		return wrap(ErrMsgFailedToRecordBet, err)
	}
	return nil
}

// GetRecentBets returns the user's latest settlements, newest first
func (s *Store) GetRecentBets(ctx context.Context, userID string, limit int) ([]domain.BetLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT bet_id, round_id, user_id, game, stake_cents, won, outcome, payout_cents, forced, created_at
		FROM bet_log WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetBets, err)
	}
	defer rows.Close()

	var bets []domain.BetLogEntry
	for rows.Next() {
		var (
			b              domain.BetLogEntry
			game, outcome  string
			stake, payoutC int64
		)
		if err := rows.Scan(&b.ID, &b.RoundID, &b.UserID, &game, &stake, &b.Won, &outcome, &payoutC, &b.Forced, &b.CreatedAt); err != nil {
			return nil, wrap(ErrMsgFailedToGetBets, err)
		}
		b.Game = domain.GameType(game)
		b.Outcome = domain.OutcomeKind(outcome)
		b.Stake = fromCents(stake)
		b.Payout = fromCents(payoutC)
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// GetLeaderboard ranks players by net winnings
func (s *Store) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.user_id, u.username, COUNT(*), SUM(b.stake_cents), SUM(b.payout_cents),
		       SUM(b.payout_cents) - SUM(b.stake_cents) AS net
		FROM bet_log b JOIN users u ON u.user_id = b.user_id
		GROUP BY b.user_id, u.username
		ORDER BY net DESC, u.username
		LIMIT ?`, limit)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetLeaderboard, err)
	}
	defer rows.Close()

	var board []domain.LeaderboardEntry
	for rows.Next() {
		var (
			e                  domain.LeaderboardEntry
			wagered, paid, net int64
		)
		if err := rows.Scan(&e.UserID, &e.Username, &e.Rounds, &wagered, &paid, &net); err != nil {
			return nil, wrap(ErrMsgFailedToGetLeaderboard, err)
		}
		e.Wagered = fromCents(wagered)
		e.Paid = fromCents(paid)
		e.Net = fromCents(net)
		board = append(board, e)
	}
	return board, rows.Err()
}
