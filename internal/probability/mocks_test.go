package probability

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

type MockSettingsReader struct {
	mock.Mock
}

func (m *MockSettingsReader) GetWinRates(ctx context.Context, userID string, game domain.GameType) (domain.WinRates, error) {
	args := m.Called(ctx, userID, game)
	return args.Get(0).(domain.WinRates), args.Error(1)
}

func (m *MockSettingsReader) ConsumeForcedOutcome(ctx context.Context, userID string, game domain.GameType) (domain.ForcedMode, bool, error) {
	args := m.Called(ctx, userID, game)
	return args.Get(0).(domain.ForcedMode), args.Bool(1), args.Error(2)
}

// fixedSource returns the same float forever
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }
func (f fixedSource) IntN(int) int     { return 0 }

func ptr(f float64) *float64 { return &f }
