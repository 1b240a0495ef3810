package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// GetWinRates loads every layer that applies to (user, game) in one query
func (s *Store) GetWinRates(ctx context.Context, userID string, game domain.GameType) (domain.WinRates, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scope, probability FROM win_rates
		WHERE scope = 'global'
		   OR (scope = 'game' AND game = ?1)
		   OR (scope = 'user' AND game = ?1 AND user_id = ?2)`,
		string(game), userID)
	if err != nil {
		return domain.WinRates{}, wrap(ErrMsgFailedToGetWinRates, err)
	}
	defer rows.Close()

	var rates domain.WinRates
	for rows.Next() {
		var (
			scope string
			p     float64
		)
		if err := rows.Scan(&scope, &p); err != nil {
			return domain.WinRates{}, wrap(ErrMsgFailedToGetWinRates, err)
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

// ConsumeForcedOutcome takes one pending forced round with a guarded UPDATE ... RETURNING
func (s *Store) ConsumeForcedOutcome(ctx context.Context, userID string, game domain.GameType) (domain.ForcedMode, bool, error) {
	var mode string
	err := s.db.QueryRowContext(ctx, `
		UPDATE forced_outcomes SET remaining = remaining - 1, updated_at = ?
		WHERE user_id = ? AND game = ? AND remaining > 0
		RETURNING mode`, time.Now().UTC(), userID, string(game)).Scan(&mode)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap(ErrMsgFailedToConsumeForced, err)
	}
	return domain.ForcedMode(mode), true, nil
}

// UpsertWinRate stores one layer
func (s *Store) UpsertWinRate(ctx context.Context, o domain.WinRateOverride) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO win_rates (scope, game, user_id, probability, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (scope, game, user_id) DO UPDATE
		SET probability = excluded.probability, updated_at = excluded.updated_at`,
		string(o.Scope), string(o.Game), o.UserID, o.Probability, time.Now().UTC())
	if err != nil {
		return wrap(ErrMsgFailedToUpsertWinRate, err)
	}
	return nil
}

// DeleteWinRate removes one layer
func (s *Store) DeleteWinRate(ctx context.Context, scope domain.RateScope, game domain.GameType, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM win_rates WHERE scope = ? AND game = ? AND user_id = ?`,
		string(scope), string(game), userID)
	if err != nil {
		return wrap(ErrMsgFailedToDeleteWinRate, err)
	}
	return nil
}

// ListWinRates returns every stored layer
func (s *Store) ListWinRates(ctx context.Context) ([]domain.WinRateOverride, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scope, game, user_id, probability, updated_at FROM win_rates
		ORDER BY scope, game, user_id`)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListWinRates, err)
	}
	defer rows.Close()

	var out []domain.WinRateOverride
	for rows.Next() {
		var (
			o           domain.WinRateOverride
			scope, game string
		)
		if err := rows.Scan(&scope, &game, &o.UserID, &o.Probability, &o.UpdatedAt); err != nil {
			return nil, wrap(ErrMsgFailedToListWinRates, err)
		}
		o.Scope = domain.RateScope(scope)
		o.Game = domain.GameType(game)
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpsertForcedOutcome replaces the pending forced rounds for (user, game)
func (s *Store) UpsertForcedOutcome(ctx context.Context, f domain.ForcedOutcome) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO forced_outcomes (user_id, game, mode, remaining, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, game) DO UPDATE
		SET mode = excluded.mode, remaining = excluded.remaining, updated_at = excluded.updated_at`,
		f.UserID, string(f.Game), string(f.Mode), f.Remaining, time.Now().UTC())
	if err != nil {
		return wrap(ErrMsgFailedToUpsertForced, err)
	}
	return nil
}

// DeleteForcedOutcome clears pending forced rounds for (user, game)
func (s *Store) DeleteForcedOutcome(ctx context.Context, userID string, game domain.GameType) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM forced_outcomes WHERE user_id = ? AND game = ?`, userID, string(game))
	if err != nil {
		return wrap(ErrMsgFailedToDeleteForced, err)
	}
	return nil
}

// ListForcedOutcomes returns forced outcomes that still have rounds left
func (s *Store) ListForcedOutcomes(ctx context.Context) ([]domain.ForcedOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, game, mode, remaining, updated_at FROM forced_outcomes
		WHERE remaining > 0 ORDER BY user_id, game`)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListForced, err)
	}
	defer rows.Close()

	var out []domain.ForcedOutcome
	for rows.Next() {
		var (
			f          domain.ForcedOutcome
			game, mode string
		)
		if err := rows.Scan(&f.UserID, &game, &mode, &f.Remaining, &f.UpdatedAt); err != nil {
			return nil, wrap(ErrMsgFailedToListForced, err)
		}
		f.Game = domain.GameType(game)
		f.Mode = domain.ForcedMode(mode)
		out = append(out, f)
	}
	return out, rows.Err()
}
