package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// GetWinRates loads every layer that applies to (user, game) in one query
func (s *Store) GetWinRates(ctx context.Context, userID string, game domain.GameType) (domain.WinRates, error) {
	rows, err := s.db.Query(ctx, `
		SELECT scope, probability FROM win_rates
		WHERE scope = 'global'
		   OR (scope = 'game' AND game = $1)
		   OR (scope = 'user' AND game = $1 AND user_id = $2)`,
		string(game), userID)
	if err != nil {
		return domain.WinRates{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetWinRates, err)
	}
	defer rows.Close()

	var rates domain.WinRates
	for rows.Next() {
		var (
			scope string
			p     float64
		)
		if err := rows.Scan(&scope, &p); err != nil {
			return domain.WinRates{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetWinRates, err)
		}
		v := p
		switch domain.RateScope(scope) {
		case domain.ScopeGlobal:
			rates.Global = &v
		case domain.ScopeGame:
			rates.Game = &v
		case domain.ScopeUser:
			rates.User = &v
		}
	}
	return rates, rows.Err()
}

// ConsumeForcedOutcome takes one pending forced round. The remaining > 0 guard in the
// same statement makes concurrent consumers take distinct rounds.
func (s *Store) ConsumeForcedOutcome(ctx context.Context, userID string, game domain.GameType) (domain.ForcedMode, bool, error) {
	var mode string
	err := s.db.QueryRow(ctx, `
		UPDATE forced_outcomes SET remaining = remaining - 1, updated_at = NOW()
		WHERE user_id = $1 AND game = $2 AND remaining > 0
		RETURNING mode`, userID, string(game)).Scan(&mode)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgFailedToConsumeForced, err)
	}
	return domain.ForcedMode(mode), true, nil
}

// UpsertWinRate stores one layer
func (s *Store) UpsertWinRate(ctx context.Context, o domain.WinRateOverride) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO win_rates (scope, game, user_id, probability, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (scope, game, user_id) DO UPDATE
		SET probability = EXCLUDED.probability, updated_at = NOW()`,
		string(o.Scope), string(o.Game), o.UserID, o.Probability)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertWinRate, err)
	}
	return nil
}

// DeleteWinRate removes one layer. Removing a missing layer is not an error.
func (s *Store) DeleteWinRate(ctx context.Context, scope domain.RateScope, game domain.GameType, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM win_rates WHERE scope = $1 AND game = $2 AND user_id = $3`,
		string(scope), string(game), userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteWinRate, err)
	}
	return nil
}

// ListWinRates returns every stored layer
func (s *Store) ListWinRates(ctx context.Context) ([]domain.WinRateOverride, error) {
	rows, err := s.db.Query(ctx, `
		SELECT scope, game, user_id, probability, updated_at FROM win_rates
		ORDER BY scope, game, user_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWinRates, err)
	}
	defer rows.Close()

	var out []domain.WinRateOverride
	for rows.Next() {
		var (
			o           domain.WinRateOverride
			scope, game string
		)
		if err := rows.Scan(&scope, &game, &o.UserID, &o.Probability, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWinRates, err)
		}
		o.Scope = domain.RateScope(scope)
		o.Game = domain.GameType(game)
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpsertForcedOutcome replaces the pending forced rounds for (user, game)
func (s *Store) UpsertForcedOutcome(ctx context.Context, f domain.ForcedOutcome) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO forced_outcomes (user_id, game, mode, remaining, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, game) DO UPDATE
		SET mode = EXCLUDED.mode, remaining = EXCLUDED.remaining, updated_at = NOW()`,
		f.UserID, string(f.Game), string(f.Mode), f.Remaining)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertForced, err)
	}
	return nil
}

// DeleteForcedOutcome clears pending forced rounds for (user, game)
func (s *Store) DeleteForcedOutcome(ctx context.Context, userID string, game domain.GameType) error {
	_, err := s.db.Exec(ctx, `DELETE FROM forced_outcomes WHERE user_id = $1 AND game = $2`, userID, string(game))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteForced, err)
	}
	return nil
}

// ListForcedOutcomes returns forced outcomes that still have rounds left
func (s *Store) ListForcedOutcomes(ctx context.Context) ([]domain.ForcedOutcome, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, game, mode, remaining, updated_at FROM forced_outcomes
		WHERE remaining > 0 ORDER BY user_id, game`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListForced, err)
	}
	defer rows.Close()

	var out []domain.ForcedOutcome
	for rows.Next() {
		var (
			f          domain.ForcedOutcome
			game, mode string
		)
		if err := rows.Scan(&f.UserID, &game, &mode, &f.Remaining, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListForced, err)
		}
		f.Game = domain.GameType(game)
		f.Mode = domain.ForcedMode(mode)
		out = append(out, f)
	}
	return out, rows.Err()
}
