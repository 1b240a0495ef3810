// Package settings lets operators manage win rate overrides and forced outcomes.
package settings

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// Repository is the store surface the settings service needs
type Repository interface {
	repository.Settings
	GetUserByID(ctx context.Context, userID string) (*domain.Profile, error)
}

// Service defines the operator settings API
type Service interface {
	SetWinRate(ctx context.Context, override domain.WinRateOverride) (*domain.WinRateOverride, error)
	ClearWinRate(ctx context.Context, scope domain.RateScope, game domain.GameType, userID string) error
	ListWinRates(ctx context.Context) ([]domain.WinRateOverride, error)

	SetForcedOutcome(ctx context.Context, forced domain.ForcedOutcome) (*domain.ForcedOutcome, error)
	ClearForcedOutcome(ctx context.Context, userID string, game domain.GameType) error
	ListForcedOutcomes(ctx context.Context) ([]domain.ForcedOutcome, error)
}

type service struct {
	repo      Repository
	publisher event.Bus
}

// NewService creates a settings service
func NewService(repo Repository, publisher event.Bus) Service {
	return &service{repo: repo, publisher: publisher}
}

// SetWinRate stores one layer after normalizing its key for the scope
func (s *service) SetWinRate(ctx context.Context, o domain.WinRateOverride) (*domain.WinRateOverride, error) {
	if math.IsNaN(o.Probability) || o.Probability < 0 || o.Probability > 1 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidProbability, o.Probability)
	}
	game, userID, err := normalizeKey(o.Scope, o.Game, o.UserID)
	if err != nil {
		return nil, err
	}
	o.Game, o.UserID = game, userID

	if err := s.repo.UpsertWinRate(ctx, o); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgWinRateSet,
		"scope", o.Scope, "game", o.Game, "user_id", o.UserID, "probability", o.Probability)
	s.publish(ctx, event.NewSettingsUpdatedEvent(event.SettingsKindWinRate, o.Scope, o.Game, o.UserID))
	return &o, nil
}

// ClearWinRate removes one layer so the next one down applies
func (s *service) ClearWinRate(ctx context.Context, scope domain.RateScope, game domain.GameType, userID string) error {
	game, userID, err := normalizeKey(scope, game, userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteWinRate(ctx, scope, game, userID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgWinRateCleared, "scope", scope, "game", game, "user_id", userID)
	s.publish(ctx, event.NewSettingsUpdatedEvent(event.SettingsKindWinRate, scope, game, userID))
	return nil
}

func (s *service) ListWinRates(ctx context.Context) ([]domain.WinRateOverride, error) {
	return s.repo.ListWinRates(ctx)
}

// SetForcedOutcome replaces the pending forced rounds for (user, game)
func (s *service) SetForcedOutcome(ctx context.Context, f domain.ForcedOutcome) (*domain.ForcedOutcome, error) {
	if !f.Game.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedGame, f.Game)
	}
	if f.Mode != domain.ForceWin && f.Mode != domain.ForceLoss {
		return nil, fmt.Errorf("%w: mode %q", domain.ErrInvalidForcedOutcome, f.Mode)
	}
	if f.Remaining < 1 || f.Remaining > MaxForcedRounds {
		return nil, fmt.Errorf("%w: count must be 1-%d", domain.ErrInvalidForcedOutcome, MaxForcedRounds)
	}
	if _, err := s.repo.GetUserByID(ctx, f.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertForcedOutcome(ctx, f); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgForcedOutcomeSet,
		"user_id", f.UserID, "game", f.Game, "mode", f.Mode, "remaining", f.Remaining)
	s.publish(ctx, event.NewSettingsUpdatedEvent(event.SettingsKindForcedOutcome, domain.ScopeUser, f.Game, f.UserID))
	return &f, nil
}

// ClearForcedOutcome drops any pending forced rounds for (user, game)
func (s *service) ClearForcedOutcome(ctx context.Context, userID string, game domain.GameType) error {
	if !game.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedGame, game)
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidForcedOutcome)
	}
	if err := s.repo.DeleteForcedOutcome(ctx, userID, game); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgForcedOutcomeClear, "user_id", userID, "game", game)
	s.publish(ctx, event.NewSettingsUpdatedEvent(event.SettingsKindForcedOutcome, domain.ScopeUser, game, userID))
	return nil
}

func (s *service) ListForcedOutcomes(ctx context.Context) ([]domain.ForcedOutcome, error) {
	return s.repo.ListForcedOutcomes(ctx)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// normalizeKey checks that scope names exactly the key parts it uses and blanks the rest
func normalizeKey(scope domain.RateScope, game domain.GameType, userID string) (domain.GameType, string, error) {
	switch scope {
	case domain.ScopeGlobal:
		return "", "", nil
	case domain.ScopeGame:
		if !game.Valid() {
			return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedGame, game)
		}
		return game, "", nil
	case domain.ScopeUser:
		if !game.Valid() {
			return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedGame, game)
		}
		if userID == "" {
			return "", "", fmt.Errorf("%w: user scope needs a user id", domain.ErrInvalidInput)
		}
		return game, userID, nil
	}
	return "", "", fmt.Errorf("%w: unknown scope %q", domain.ErrInvalidInput, scope)
}
