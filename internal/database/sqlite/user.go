package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// CreateUser inserts a profile with a zero balance
func (s *Store) CreateUser(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, username, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		profile.UserID, profile.Username, now, now)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrUserAlreadyExists, profile.Username)
	}
	if err != nil {
		return wrap(ErrMsgFailedToInsertUser, err)
	}
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return nil
}

// GetUserByID returns a profile with its current balance
func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.getUser(ctx, `WHERE user_id = ?`, userID)
}

// GetUserByUsername returns a profile by its unique username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return s.getUser(ctx, `WHERE username = ?`, username)
}

func (s *Store) getUser(ctx context.Context, where, arg string) (*domain.Profile, error) {
	var (
		p     domain.Profile
		cents int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, balance_cents, created_at, updated_at FROM users `+where, arg).
		Scan(&p.UserID, &p.Username, &cents, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetUser, err)
	}
	p.Balance = fromCents(cents)
	return &p, nil
}
