package casino

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
)

// activeRound is the server-side state of a round that is still being played
type activeRound struct {
	round      *domain.Round
	lifecycle  *fsm.FSM
	resolution domain.Resolution
	decision   domain.OutcomeDecision
	baseStake  decimal.Decimal
	// published is the read-only copy GetRound serves, guarded by registry.mu
	published *domain.Round
}

// registry holds in-progress rounds, plus recently finished ones so they stay queryable
type registry struct {
	mu       sync.RWMutex
	active   map[uuid.UUID]*activeRound
	finished *lru.Cache[uuid.UUID, *domain.Round]
}

func newRegistry(finishedSize int) *registry {
	if finishedSize <= 0 {
		finishedSize = DefaultFinishedRoundCache
	}
	finished, _ := lru.New[uuid.UUID, *domain.Round](finishedSize)
	return &registry{
		active:   make(map[uuid.UUID]*activeRound),
		finished: finished,
	}
}

func (r *registry) activate(ar *activeRound) {
	published := snapshot(ar.round)
	r.mu.Lock()
	defer r.mu.Unlock()
	ar.published = published
	r.active[ar.round.ID] = ar
	metrics.ActiveRounds.WithLabelValues(string(ar.round.Game)).Inc()
}

// finish moves a round out of play. The stored snapshot is never mutated again.
func (r *registry) finish(round *domain.Round) {
	snap := snapshot(round)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[round.ID]; ok {
		delete(r.active, round.ID)
		metrics.ActiveRounds.WithLabelValues(string(round.Game)).Dec()
	}
	r.finished.Add(round.ID, snap)
}

// publish refreshes the copy readers see. The caller must hold the round's lock.
func (r *registry) publish(id uuid.UUID) {
	r.mu.RLock()
	ar, ok := r.active[id]
	r.mu.RUnlock()
	if !ok {
		return
	}
	published := snapshot(ar.round)
	r.mu.Lock()
	ar.published = published
	r.mu.Unlock()
}

func (r *registry) getActive(id uuid.UUID) (*activeRound, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ar, ok := r.active[id]; ok {
		return ar, nil
	}
	if _, ok := r.finished.Get(id); ok {
		return nil, domain.ErrRoundNotActive
	}
	return nil, domain.ErrRoundNotFound
}

// lookup returns a snapshot of any known round. It never reads live round
// state, so it is safe to call without the round's lock.
func (r *registry) lookup(id uuid.UUID) (*domain.Round, bool) {
	r.mu.RLock()
	var published *domain.Round
	if ar, ok := r.active[id]; ok {
		published = ar.published
	}
	r.mu.RUnlock()
	if published != nil {
		return snapshot(published), true
	}
	if round, ok := r.finished.Get(id); ok {
		return snapshot(round), true
	}
	return nil, false
}

func (r *registry) activeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}

// snapshot deep-copies a round for callers. The dealer hole card stays hidden and
// the mine layout is never copied out.
func snapshot(round *domain.Round) *domain.Round {
	out := *round
	if round.SettledAt != nil {
		t := *round.SettledAt
		out.SettledAt = &t
	}
	if round.Slots != nil {
		s := *round.Slots
		out.Slots = &s
	}
	if round.Roulette != nil {
		s := *round.Roulette
		if s.Bet.Selection != nil {
			sel := *s.Bet.Selection
			s.Bet.Selection = &sel
		}
		out.Roulette = &s
	}
	if round.Plinko != nil {
		s := *round.Plinko
		s.Path = append([]int(nil), round.Plinko.Path...)
		out.Plinko = &s
	}
	if round.Blackjack != nil {
		s := round.Blackjack.Visible()
		s.PlayerCards = append([]domain.Card(nil), s.PlayerCards...)
		s.DealerCards = append([]domain.Card(nil), s.DealerCards...)
		out.Blackjack = &s
	}
	if round.Mines != nil {
		s := *round.Mines
		s.Revealed = append([]int(nil), round.Mines.Revealed...)
		s.MinePositions = append([]int(nil), round.Mines.MinePositions...)
		if round.Mines.HitMine != nil {
			hit := *round.Mines.HitMine
			s.HitMine = &hit
		}
		s.Layout = nil
		s.MaxSafeReveals = 0
		out.Mines = &s
	}
	return &out
}
