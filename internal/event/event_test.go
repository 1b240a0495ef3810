package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(RoundSettled, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	bus.Subscribe(BalanceUpdated, func(ctx context.Context, e Event) error {
		t.Fatal("wrong handler invoked")
		return nil
	})

	ev := New(RoundSettled, "payload")
	require.NoError(t, bus.Publish(context.Background(), ev))

	require.Len(t, got, 1)
	assert.Equal(t, ev.ID, got[0].ID)
	assert.Equal(t, EventSchemaVersion, got[0].Version)
}

func TestMemoryBus_HandlerErrorsAreAggregated(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(RoundSettled, func(context.Context, Event) error { calls++; return errors.New("boom") })
	bus.Subscribe(RoundSettled, func(context.Context, Event) error { calls++; return nil })

	err := bus.Publish(context.Background(), New(RoundSettled, nil))
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "a failing handler must not stop the others")
}

func TestSubscribeAll(t *testing.T) {
	bus := NewMemoryBus()
	seen := map[Type]int{}
	SubscribeAll(bus, func(_ context.Context, e Event) error {
		seen[e.Type]++
		return nil
	})

	for _, typ := range AllTypes {
		require.NoError(t, bus.Publish(context.Background(), New(typ, nil)))
	}
	assert.Len(t, seen, len(AllTypes))
}

func TestUserScope(t *testing.T) {
	entry := domain.BetLogEntry{
		RoundID: uuid.New(),
		UserID:  "user-7",
		Game:    domain.GameRoulette,
		Stake:   decimal.NewFromInt(10),
		Outcome: domain.OutcomeWin,
		Payout:  decimal.NewFromInt(20),
	}

	assert.Equal(t, "user-7", NewRoundSettledEvent(entry).UserScope())
	assert.Equal(t, "user-1", NewBalanceUpdatedEvent("user-1", decimal.Zero, decimal.Zero, "x").UserScope())
	assert.Empty(t, NewSettingsUpdatedEvent(SettingsKindForcedOutcome, domain.ScopeUser, "", "user-1").UserScope())

	// Payloads that went through a stream come back as maps
	raw, err := json.Marshal(NewRoundSettledEvent(entry))
	require.NoError(t, err)
	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "user-7", decoded.UserScope())
}

func TestDecodePayload(t *testing.T) {
	typed := RoundSettledPayloadV1{RoundID: "r1", UserID: "u1", Payout: decimal.RequireFromString("250")}
	got, err := DecodePayload[RoundSettledPayloadV1](typed)
	require.NoError(t, err)
	assert.Equal(t, typed, got)

	asMap := map[string]interface{}{"round_id": "r2", "user_id": "u2", "payout": "12.5", "outcome": "win"}
	got, err = DecodePayload[RoundSettledPayloadV1](asMap)
	require.NoError(t, err)
	assert.Equal(t, "r2", got.RoundID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Payout))
	assert.Equal(t, domain.OutcomeWin, got.Outcome)
}
