package domain

// Card is a playing card
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String returns a short form like "♠A"
func (c Card) String() string {
	return c.Suit + c.Rank
}

// Value returns the hard value of the card, aces count 1
func (c Card) Value() int {
	switch c.Rank {
	case "A":
		return 1
	case "J", "Q", "K", "10":
		return 10
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	}
	return 0
}

// HandValue returns the best total of a hand and whether it is soft
func HandValue(cards []Card) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.Rank == "A" {
			aces++
		}
	}
	if aces > 0 && total+10 <= 21 {
		return total + 10, true
	}
	return total, false
}

// IsNatural reports whether a two-card hand is a blackjack
func IsNatural(cards []Card) bool {
	if len(cards) != 2 {
		return false
	}
	total, _ := HandValue(cards)
	return total == 21
}

// BlackjackAction is a player move
type BlackjackAction string

const (
	BlackjackHit    BlackjackAction = "hit"
	BlackjackStand  BlackjackAction = "stand"
	BlackjackDouble BlackjackAction = "double"
)

// BlackjackPhase is the sub-state of an in-progress hand
type BlackjackPhase string

const (
	PhasePlayerTurn BlackjackPhase = "player_turn"
	PhaseDealerTurn BlackjackPhase = "dealer_turn"
	PhaseFinished   BlackjackPhase = "finished"
)

// BlackjackState is the dealt cards of one hand
type BlackjackState struct {
	PlayerCards []Card         `json:"player_cards"`
	DealerCards []Card         `json:"dealer_cards"`
	PlayerTotal int            `json:"player_total"`
	DealerTotal int            `json:"dealer_total"`
	Doubled     bool           `json:"doubled"`
	Natural     bool           `json:"natural"`
	Phase       BlackjackPhase `json:"phase"`
}

// Visible hides the dealer's hole card until the player's turn is over
func (s BlackjackState) Visible() BlackjackState {
	if s.Phase != PhasePlayerTurn || len(s.DealerCards) < 2 {
		return s
	}
	out := s
	out.DealerCards = []Card{s.DealerCards[0]}
	out.DealerTotal, _ = HandValue(out.DealerCards)
	return out
}
