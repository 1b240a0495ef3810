package repository

import (
	"context"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// User defines the interface for player profiles
type User interface {
	// CreateUser inserts a profile with a zero balance
	CreateUser(ctx context.Context, profile *domain.Profile) error
	GetUserByID(ctx context.Context, userID string) (*domain.Profile, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.Profile, error)
}
