package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// CreateUser inserts a profile with a zero balance
func (s *Store) CreateUser(ctx context.Context, profile *domain.Profile) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (user_id, username) VALUES ($1, $2)
		RETURNING created_at, updated_at`,
		profile.UserID, profile.Username).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrUserAlreadyExists, profile.Username)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}
	return nil
}

// GetUserByID returns a profile with its current balance
func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.getUser(ctx, `WHERE user_id = $1`, userID, ErrMsgFailedToGetUser)
}

// GetUserByUsername returns a profile by its unique username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return s.getUser(ctx, `WHERE username = $1`, username, ErrMsgFailedToGetUserByUsername)
}

func (s *Store) getUser(ctx context.Context, where, arg, errMsg string) (*domain.Profile, error) {
	var (
		p       domain.Profile
		balance string
	)
	err := s.db.QueryRow(ctx,
		`SELECT user_id, username, balance::text, created_at, updated_at FROM users `+where, arg).
		Scan(&p.UserID, &p.Username, &balance, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	if p.Balance, err = parseAmount(balance); err != nil {
		return nil, err
	}
	return &p, nil
}
