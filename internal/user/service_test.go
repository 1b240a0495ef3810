package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
)

func newTestService(credits string) (*service, *MockRepository, *MockBus) {
	repo := new(MockRepository)
	bus := new(MockBus)
	svc := NewService(repo, bus, decimal.RequireFromString(credits), CacheConfig{Size: 10}).(*service)
	return svc, repo, bus
}

func TestRegister_GrantsStartingCredits(t *testing.T) {
	svc, repo, bus := newTestService("1000")
	ctx := context.Background()

	repo.On("CreateUser", ctx, mock.MatchedBy(func(p *domain.Profile) bool { return p.Username == "alice" })).Return(nil)
	repo.On("Credit", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(1000))
	}), mock.MatchedBy(func(ref string) bool {
		return strings.HasPrefix(ref, domain.RefPrefixSignup)
	})).Return(decimal.NewFromInt(1000), nil)
	bus.On("Publish", ctx, mock.MatchedBy(func(e event.Event) bool { return e.Type == event.BalanceUpdated })).Return(nil)

	p, err := svc.Register(ctx, "  alice ")

	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.NotEmpty(t, p.UserID)
	assert.True(t, p.Balance.Equal(decimal.NewFromInt(1000)))

	ref := repo.Calls[1].Arguments.String(3)
	assert.Equal(t, domain.RefPrefixSignup+p.UserID, ref)
	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestRegister_ZeroCreditsSkipsLedger(t *testing.T) {
	svc, repo, bus := newTestService("0")
	ctx := context.Background()
	repo.On("CreateUser", ctx, mock.Anything).Return(nil)

	p, err := svc.Register(ctx, "bob")

	require.NoError(t, err)
	assert.True(t, p.Balance.IsZero())
	repo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRegister_InvalidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{"too short", "ab"},
		{"too long", strings.Repeat("x", MaxUsernameLength+1)},
		{"blank", "   "},
		{"space inside", "al ice"},
		{"symbol", "alice!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService("10")
			_, err := svc.Register(context.Background(), tt.username)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, repo, _ := newTestService("10")
	ctx := context.Background()
	repo.On("CreateUser", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, "alice")

	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfileByUsername_UsesIdentityCache(t *testing.T) {
	svc, repo, _ := newTestService("0")
	ctx := context.Background()
	profile := &domain.Profile{UserID: "u-1", Username: "carol", Balance: decimal.NewFromInt(5)}

	repo.On("GetUserByUsername", ctx, "carol").Return(profile, nil).Once()
	repo.On("GetUserByID", ctx, "u-1").Return(profile, nil).Once()

	first, err := svc.GetProfileByUsername(ctx, "carol")
	require.NoError(t, err)
	second, err := svc.GetProfileByUsername(ctx, "Carol")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), svc.CacheStats().Hits)
	repo.AssertExpectations(t)
}

func TestGetProfileByUsername_StaleCacheEntry(t *testing.T) {
	svc, repo, _ := newTestService("0")
	ctx := context.Background()
	svc.cache.Set("dave", "gone")

	fresh := &domain.Profile{UserID: "u-2", Username: "dave"}
	repo.On("GetUserByID", ctx, "gone").Return(nil, domain.ErrUserNotFound)
	repo.On("GetUserByUsername", ctx, "dave").Return(fresh, nil)

	p, err := svc.GetProfileByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, "u-2", p.UserID)

	id, ok := svc.cache.Get("dave")
	assert.True(t, ok)
	assert.Equal(t, "u-2", id)
}

func TestLeaderboard_ClampsLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultListLimit},
		{-3, DefaultListLimit},
		{25, 25},
		{1000, MaxListLimit},
	}
	for _, tt := range tests {
		svc, repo, _ := newTestService("0")
		repo.On("GetLeaderboard", mock.Anything, tt.want).Return([]domain.LeaderboardEntry{}, nil)

		_, err := svc.Leaderboard(context.Background(), tt.in)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	}
}

func TestRecentBets_UnknownUser(t *testing.T) {
	svc, repo, _ := newTestService("0")
	ctx := context.Background()
	repo.On("GetUserByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.RecentBets(ctx, "ghost", 5)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	repo.AssertNotCalled(t, "GetRecentBets", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_CreditFailure(t *testing.T) {
	svc, repo, _ := newTestService("50")
	ctx := context.Background()
	repo.On("CreateUser", ctx, mock.Anything).Return(nil)
	repo.On("Credit", ctx, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, errors.New("db down"))

	_, err := svc.Register(ctx, "erin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting credits")
}
