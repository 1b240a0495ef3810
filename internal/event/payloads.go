package event

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// BalanceUpdatedPayloadV1 is published after every committed balance mutation
type BalanceUpdatedPayloadV1 struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Delta     decimal.Decimal `json:"delta"`
	Reference string          `json:"reference"`
}

// SettingsUpdatedPayloadV1 is published when an operator changes win rates or forced outcomes.
// UserID is empty for global and per-game changes.
type SettingsUpdatedPayloadV1 struct {
	Kind   string           `json:"kind"` // "win_rate" or "forced_outcome"
	Scope  domain.RateScope `json:"scope,omitempty"`
	Game   domain.GameType  `json:"game,omitempty"`
	UserID string           `json:"user_id,omitempty"`
}

// Settings change kinds
const (
	SettingsKindWinRate       = "win_rate"
	SettingsKindForcedOutcome = "forced_outcome"
)

// RoundSettledPayloadV1 is published once per settled round
type RoundSettledPayloadV1 struct {
	RoundID string             `json:"round_id"`
	UserID  string             `json:"user_id"`
	Game    domain.GameType    `json:"game"`
	Stake   decimal.Decimal    `json:"stake"`
	Outcome domain.OutcomeKind `json:"outcome"`
	Payout  decimal.Decimal    `json:"payout"`
	Forced  bool               `json:"forced"`
}

// RoundContactSupportPayloadV1 is published when a round could not be recorded
type RoundContactSupportPayloadV1 struct {
	RoundID string          `json:"round_id"`
	UserID  string          `json:"user_id"`
	Game    domain.GameType `json:"game"`
	Stage   string          `json:"stage"`
}

// TransactionPayloadV1 is published when a wallet request is created or resolved
type TransactionPayloadV1 struct {
	TransactionID string                   `json:"transaction_id"`
	UserID        string                   `json:"user_id"`
	Kind          domain.TransactionKind   `json:"kind"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        domain.TransactionStatus `json:"status"`
}

// NewBalanceUpdatedEvent creates a balance.updated event
func NewBalanceUpdatedEvent(userID string, balance, delta decimal.Decimal, reference string) Event {
	return New(BalanceUpdated, BalanceUpdatedPayloadV1{
		UserID:    userID,
		Balance:   balance,
		Delta:     delta,
		Reference: reference,
	})
}

// NewSettingsUpdatedEvent creates a settings.updated event
func NewSettingsUpdatedEvent(kind string, scope domain.RateScope, game domain.GameType, userID string) Event {
	return New(SettingsUpdated, SettingsUpdatedPayloadV1{
		Kind:   kind,
		Scope:  scope,
		Game:   game,
		UserID: userID,
	})
}

// NewRoundSettledEvent creates a round.settled event from a settlement record
func NewRoundSettledEvent(entry domain.BetLogEntry) Event {
	return New(RoundSettled, RoundSettledPayloadV1{
		RoundID: entry.RoundID.String(),
		UserID:  entry.UserID,
		Game:    entry.Game,
		Stake:   entry.Stake,
		Outcome: entry.Outcome,
		Payout:  entry.Payout,
		Forced:  entry.Forced,
	})
}

// NewRoundContactSupportEvent creates a round.contact_support event
func NewRoundContactSupportEvent(round *domain.Round, stage string) Event {
	return New(RoundContactSupport, RoundContactSupportPayloadV1{
		RoundID: round.ID.String(),
		UserID:  round.UserID,
		Game:    round.Game,
		Stage:   stage,
	})
}

// NewTransactionEvent creates a transaction.created or transaction.resolved event
func NewTransactionEvent(eventType Type, tx *domain.Transaction) Event {
	return New(eventType, TransactionPayloadV1{
		TransactionID: tx.ID.String(),
		UserID:        tx.UserID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Status:        tx.Status,
	})
}

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// In-process payloads are already typed; payloads read back from a stream arrive as maps.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// UserScope returns the user an event belongs to, or "" when it is for everyone
func (e Event) UserScope() string {
	switch p := e.Payload.(type) {
	case BalanceUpdatedPayloadV1:
		return p.UserID
	case RoundSettledPayloadV1:
		return p.UserID
	case RoundContactSupportPayloadV1:
		return p.UserID
	case TransactionPayloadV1:
		return p.UserID
	case SettingsUpdatedPayloadV1:
		return ""
	case map[string]interface{}:
		if e.Type == SettingsUpdated {
			return ""
		}
		if id, ok := p["user_id"].(string); ok {
			return id
		}
	}
	return ""
}
