package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameType identifies one of the casino games
type GameType string

const (
	GameSlots     GameType = "slots"
	GameRoulette  GameType = "roulette"
	GameBlackjack GameType = "blackjack"
	GameMines     GameType = "mines"
	GamePlinko    GameType = "plinko"
)

// AllGames lists every supported game in display order
var AllGames = []GameType{GameSlots, GameRoulette, GameBlackjack, GameMines, GamePlinko}

// Valid reports whether g is a supported game
func (g GameType) Valid() bool {
	for _, game := range AllGames {
		if g == game {
			return true
		}
	}
	return false
}

// OutcomeKind is the realized result of a settled round
type OutcomeKind string

const (
	OutcomeWin  OutcomeKind = "win"
	OutcomeLoss OutcomeKind = "loss"
	OutcomePush OutcomeKind = "push" // stake returned, neither win nor loss
)

// OutcomeDecision is computed once per bet before any visible randomness is generated.
// Game mechanics are adjusted to match it, never the other way round.
type OutcomeDecision struct {
	Won              bool            `json:"won"`
	PayoutMultiplier decimal.Decimal `json:"payout_multiplier"`
	Forced           bool            `json:"forced"`
}

// RateSource names the layer that produced an effective probability
type RateSource string

const (
	SourceForced   RateSource = "forced"
	SourceUser     RateSource = "user"
	SourceGame     RateSource = "game"
	SourceGlobal   RateSource = "global"
	SourceFallback RateSource = "fallback"
)

// Resolution is the output of the probability resolver for one bet
type Resolution struct {
	Probability float64    `json:"probability"`
	ForceWin    bool       `json:"force_win"`
	ForceLoss   bool       `json:"force_loss"`
	Source      RateSource `json:"source"`
	Governed    bool       `json:"governed"`
}

// Bet is created when a player commits to a round
type Bet struct {
	ID       uuid.UUID       `json:"id"`
	UserID   string          `json:"user_id"`
	Game     GameType        `json:"game"`
	Stake    decimal.Decimal `json:"stake"`
	PlacedAt time.Time       `json:"placed_at"`
}

// RoundStatus tracks a round through its lifecycle
type RoundStatus string

const (
	RoundIdle           RoundStatus = "idle"
	RoundInProgress     RoundStatus = "in_progress"
	RoundSettled        RoundStatus = "settled"
	RoundContactSupport RoundStatus = "contact_support"
)

// Round is the value object handed to callers for a single game round.
// Exactly one of the game state pointers is set.
type Round struct {
	ID        uuid.UUID       `json:"round_id"`
	UserID    string          `json:"user_id"`
	Game      GameType        `json:"game"`
	Stake     decimal.Decimal `json:"stake"`
	Status    RoundStatus     `json:"status"`
	Outcome   OutcomeKind     `json:"outcome,omitempty"`
	Payout    decimal.Decimal `json:"payout"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	SettledAt *time.Time      `json:"settled_at,omitempty"`

	Slots     *SlotsState     `json:"slots,omitempty"`
	Roulette  *RouletteState  `json:"roulette,omitempty"`
	Blackjack *BlackjackState `json:"blackjack,omitempty"`
	Mines     *MinesState     `json:"mines,omitempty"`
	Plinko    *PlinkoState    `json:"plinko,omitempty"`
}

// BetLogEntry is the append-only settlement record
type BetLogEntry struct {
	ID        uuid.UUID       `json:"id"`
	RoundID   uuid.UUID       `json:"round_id"`
	UserID    string          `json:"user_id"`
	Game      GameType        `json:"game"`
	Stake     decimal.Decimal `json:"stake"`
	Won       bool            `json:"won"`
	Outcome   OutcomeKind     `json:"outcome"`
	Payout    decimal.Decimal `json:"payout"`
	Forced    bool            `json:"forced"`
	CreatedAt time.Time       `json:"created_at"`
}
