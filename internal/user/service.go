// Package user registers players and serves their profiles, history and rankings.
package user

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// Repository is the store surface the user service needs
type Repository interface {
	repository.User
	repository.BetLog
	Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (decimal.Decimal, error)
}

// Service defines the interface for player accounts
type Service interface {
	Register(ctx context.Context, username string) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	RecentBets(ctx context.Context, userID string, limit int) ([]domain.BetLogEntry, error)
	CacheStats() CacheStats
}

type service struct {
	repo            Repository
	publisher       event.Bus
	startingCredits decimal.Decimal
	cache           *identityCache
}

// NewService creates a user service. New players receive startingCredits.
func NewService(repo Repository, publisher event.Bus, startingCredits decimal.Decimal, cacheConfig CacheConfig) Service {
	return &service{
		repo:            repo,
		publisher:       publisher,
		startingCredits: startingCredits,
		cache:           newIdentityCache(cacheConfig),
	}
}

// Register creates a profile and grants the starting credits
func (s *service) Register(ctx context.Context, username string) (*domain.Profile, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:   uuid.NewString(),
		Username: username,
	}
	if err := s.repo.CreateUser(ctx, profile); err != nil {
		return nil, err
	}
	s.cache.Set(profile.Username, profile.UserID)

	if s.startingCredits.IsPositive() {
		ref := domain.RefPrefixSignup + profile.UserID
		balance, err := s.repo.Credit(ctx, profile.UserID, s.startingCredits, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to grant starting credits: %w", err)
		}
		profile.Balance = balance
		s.publish(ctx, event.NewBalanceUpdatedEvent(profile.UserID, balance, s.startingCredits, ref))
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered, "user_id", profile.UserID, "username", profile.Username)
	return profile, nil
}

// GetProfile returns a profile with its current balance
func (s *service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetUserByID(ctx, userID)
}

// GetProfileByUsername resolves the username through the identity cache, then reads the
// profile fresh so the balance is current
func (s *service) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	username = strings.TrimSpace(username)
	if id, ok := s.cache.Get(username); ok {
		p, err := s.repo.GetUserByID(ctx, id)
		if err == nil {
			return p, nil
		}
		s.cache.Invalidate(username)
	}

	p, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	s.cache.Set(p.Username, p.UserID)
	return p, nil
}

// Leaderboard ranks players by net winnings
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.repo.GetLeaderboard(ctx, clampLimit(limit))
}

// RecentBets returns the player's latest settlements, newest first
func (s *service) RecentBets(ctx context.Context, userID string, limit int) ([]domain.BetLogEntry, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetRecentBets(ctx, userID, clampLimit(limit))
}

func (s *service) CacheStats() CacheStats {
	return s.cache.GetStats()
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func validateUsername(username string) error {
	n := len([]rune(username))
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return fmt.Errorf("%w: username may only contain letters, digits, '_' and '-'", domain.ErrInvalidInput)
		}
	}
	return nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
