package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/user"
)

func roundResult(args mock.Arguments) (*domain.Round, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

// MockCasinoService mocks casino.Service
type MockCasinoService struct {
	mock.Mock
}

func (m *MockCasinoService) SpinSlots(ctx context.Context, userID string, stake decimal.Decimal) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, stake))
}

func (m *MockCasinoService) SpinRoulette(ctx context.Context, userID string, stake decimal.Decimal, bet domain.RouletteBet) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, stake, bet))
}

func (m *MockCasinoService) DropPlinko(ctx context.Context, userID string, stake decimal.Decimal, params domain.PlinkoParams) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, stake, params))
}

func (m *MockCasinoService) StartBlackjack(ctx context.Context, userID string, stake decimal.Decimal) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, stake))
}

func (m *MockCasinoService) BlackjackAction(ctx context.Context, userID string, roundID uuid.UUID, action domain.BlackjackAction) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, roundID, action))
}

func (m *MockCasinoService) StartMines(ctx context.Context, userID string, stake decimal.Decimal, gridSize, mines int) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, stake, gridSize, mines))
}

func (m *MockCasinoService) RevealTile(ctx context.Context, userID string, roundID uuid.UUID, tile int) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, roundID, tile))
}

func (m *MockCasinoService) CashOutMines(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, roundID))
}

func (m *MockCasinoService) GetRound(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error) {
	return roundResult(m.Called(ctx, userID, roundID))
}

func (m *MockCasinoService) Catalog() *catalog.Catalog {
	return m.Called().Get(0).(*catalog.Catalog)
}

func (m *MockCasinoService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockUserService mocks user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockUserService) RecentBets(ctx context.Context, userID string, limit int) ([]domain.BetLogEntry, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.BetLogEntry), args.Error(1)
}

func (m *MockUserService) CacheStats() user.CacheStats {
	return m.Called().Get(0).(user.CacheStats)
}

// MockSettingsService mocks settings.Service
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) SetWinRate(ctx context.Context, o domain.WinRateOverride) (*domain.WinRateOverride, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WinRateOverride), args.Error(1)
}

func (m *MockSettingsService) ClearWinRate(ctx context.Context, scope domain.RateScope, game domain.GameType, userID string) error {
	return m.Called(ctx, scope, game, userID).Error(0)
}

func (m *MockSettingsService) ListWinRates(ctx context.Context) ([]domain.WinRateOverride, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WinRateOverride), args.Error(1)
}

func (m *MockSettingsService) SetForcedOutcome(ctx context.Context, f domain.ForcedOutcome) (*domain.ForcedOutcome, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForcedOutcome), args.Error(1)
}

func (m *MockSettingsService) ClearForcedOutcome(ctx context.Context, userID string, game domain.GameType) error {
	return m.Called(ctx, userID, game).Error(0)
}

func (m *MockSettingsService) ListForcedOutcomes(ctx context.Context) ([]domain.ForcedOutcome, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ForcedOutcome), args.Error(1)
}

// MockWalletService mocks wallet.Service
type MockWalletService struct {
	mock.Mock
}

func txResult(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWalletService) RequestDeposit(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	return txResult(m.Called(ctx, userID, amount, note))
}

func (m *MockWalletService) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	return txResult(m.Called(ctx, userID, amount, note))
}

func (m *MockWalletService) List(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockWalletService) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockWalletService) Approve(ctx context.Context, id uuid.UUID, admin string) (*domain.Transaction, error) {
	return txResult(m.Called(ctx, id, admin))
}

func (m *MockWalletService) Reject(ctx context.Context, id uuid.UUID, admin, note string) (*domain.Transaction, error) {
	return txResult(m.Called(ctx, id, admin, note))
}
