// Package casino runs game rounds: it takes the stake, asks the resolver for the outcome,
// lets a game engine produce matching visuals and settles the result on the ledger.
package casino

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/concurrency"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/games"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
	"github.com/osse101/BrandishCasino_Go/internal/payout"
	"github.com/osse101/BrandishCasino_Go/internal/probability"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// Service defines the casino round operations.
// Every method that moved money returns the round alongside ErrLedgerWriteFailure so the
// caller can show the round ID to support.
type Service interface {
	SpinSlots(ctx context.Context, userID string, stake decimal.Decimal) (*domain.Round, error)
	SpinRoulette(ctx context.Context, userID string, stake decimal.Decimal, bet domain.RouletteBet) (*domain.Round, error)
	DropPlinko(ctx context.Context, userID string, stake decimal.Decimal, params domain.PlinkoParams) (*domain.Round, error)

	StartBlackjack(ctx context.Context, userID string, stake decimal.Decimal) (*domain.Round, error)
	BlackjackAction(ctx context.Context, userID string, roundID uuid.UUID, action domain.BlackjackAction) (*domain.Round, error)

	StartMines(ctx context.Context, userID string, stake decimal.Decimal, gridSize, mines int) (*domain.Round, error)
	RevealTile(ctx context.Context, userID string, roundID uuid.UUID, tile int) (*domain.Round, error)
	CashOutMines(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error)

	GetRound(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error)
	Catalog() *catalog.Catalog
	Shutdown(ctx context.Context) error
}

// Config holds round limits and timeouts
type Config struct {
	MinBet                decimal.Decimal
	MaxBet                decimal.Decimal // zero means no upper limit
	LedgerTimeout         time.Duration
	MinesInstantLossShare float64
	FinishedRoundCache    int
}

type service struct {
	ledger    repository.Ledger
	resolver  probability.Resolver
	catalog   *catalog.Catalog
	publisher event.Bus
	rng       rng.Source
	config    Config

	slots     *games.SlotsEngine
	roulette  *games.RouletteEngine
	blackjack *games.BlackjackEngine
	mines     *games.MinesEngine
	plinko    *games.PlinkoEngine

	rounds *registry
	locks  *concurrency.LockManager

	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewService creates the casino service. publisher is normally the resilient publisher.
func NewService(
	ledger repository.Ledger,
	resolver probability.Resolver,
	cat *catalog.Catalog,
	publisher event.Bus,
	src rng.Source,
	config Config,
) Service {
	if config.LedgerTimeout <= 0 {
		config.LedgerTimeout = DefaultLedgerTimeout
	}
	if src == nil {
		src = rng.Default()
	}
	return &service{
		ledger:    ledger,
		resolver:  resolver,
		catalog:   cat,
		publisher: publisher,
		rng:       src,
		config:    config,
		slots:     games.NewSlotsEngine(cat.Slots),
		roulette:  games.NewRouletteEngine(cat),
		blackjack: games.NewBlackjackEngine(cat.Blackjack),
		mines:     games.NewMinesEngine(cat.Mines, config.MinesInstantLossShare),
		plinko:    games.NewPlinkoEngine(cat),
		rounds:    newRegistry(config.FinishedRoundCache),
		locks:     concurrency.NewLockManager(),
		shutdown:  make(chan struct{}),
	}
}

func (s *service) Catalog() *catalog.Catalog {
	return s.catalog
}

// GetRound returns a round the user owns, active or recently finished
func (s *service) GetRound(ctx context.Context, userID string, roundID uuid.UUID) (*domain.Round, error) {
	round, ok := s.rounds.lookup(roundID)
	if !ok {
		return nil, domain.ErrRoundNotFound
	}
	if round.UserID != userID {
		return nil, domain.ErrRoundOwnership
	}
	return round, nil
}

// Shutdown stops new rounds and waits for in-flight operations
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.shutdown)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// begin registers an in-flight operation, refusing new work once shutdown started
func (s *service) begin() (func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrShuttingDown
	}
	s.wg.Add(1)
	return s.wg.Done, nil
}

func (s *service) validateStake(stake decimal.Decimal) error {
	if !stake.IsPositive() {
		return fmt.Errorf("%w: stake must be positive", domain.ErrInvalidBetParameters)
	}
	if !stake.Equal(stake.Round(domain.MoneyPlaces)) {
		return fmt.Errorf("%w: stake has more than %d decimal places", domain.ErrInvalidBetParameters, domain.MoneyPlaces)
	}
	if stake.LessThan(s.config.MinBet) {
		return fmt.Errorf("%w: minimum bet is %s", domain.ErrInvalidBetParameters, s.config.MinBet)
	}
	if s.config.MaxBet.IsPositive() && stake.GreaterThan(s.config.MaxBet) {
		return fmt.Errorf("%w: maximum bet is %s", domain.ErrInvalidBetParameters, s.config.MaxBet)
	}
	return nil
}

// open takes the stake and draws the outcome decision. Game parameters must already be
// validated. On a ledger failure the returned round is in contact_support.
func (s *service) open(ctx context.Context, userID string, game domain.GameType, stake, maxMultiplier decimal.Decimal) (*activeRound, error) {
	log := logger.FromContext(ctx)

	if err := s.validateStake(stake); err != nil {
		return nil, err
	}

	balanceCtx, cancel := context.WithTimeout(ctx, s.config.LedgerTimeout)
	balance, err := s.ledger.GetBalance(balanceCtx, userID)
	cancel()
	if err != nil {
		log.Warn(LogMsgBalanceLookupError, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	if balance.LessThan(stake) {
		return nil, fmt.Errorf("%w: balance %s, stake %s", domain.ErrInsufficientBalance, balance, stake)
	}

	round := &domain.Round{
		ID:        uuid.New(),
		UserID:    userID,
		Game:      game,
		Stake:     stake,
		Status:    domain.RoundIdle,
		Payout:    decimal.Zero,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
	ar := &activeRound{
		round:     round,
		lifecycle: newLifecycle(round),
		baseStake: stake,
	}

	reference := round.ID.String() + domain.RefSuffixStake
	after, err := s.withLedgerRetry(ctx, StageDebit, func(callCtx context.Context) (decimal.Decimal, error) {
		return s.ledger.Debit(callCtx, userID, stake, reference)
	})
	if errors.Is(err, domain.ErrInsufficientBalance) {
		return nil, err
	}
	if err != nil {
		return ar, s.fail(ctx, ar, StageDebit, err)
	}

	if err := transition(ctx, ar.lifecycle, eventStart); err != nil {
		log.Error(LogMsgLifecycleFailed, "round_id", round.ID, "error", err)
	}
	round.Balance = after
	s.publish(ctx, event.NewBalanceUpdatedEvent(userID, after, stake.Neg(), reference))

	// A forced outcome is consumed only once the stake is actually taken.
	res := s.resolver.Resolve(ctx, game, userID, payout.MaxPayout(stake, maxMultiplier), balance)
	ar.resolution = res
	ar.decision = probability.Decide(res, s.rng)

	log.Info(LogMsgRoundOpened,
		"round_id", round.ID,
		"user_id", userID,
		"game", game,
		"stake", stake.String(),
		"source", res.Source,
		"governed", res.Governed)
	return ar, nil
}

// settle is the single commit point of a round: credit the payout, record the bet, publish
func (s *service) settle(ctx context.Context, ar *activeRound, kind domain.OutcomeKind, multiplier decimal.Decimal) (*domain.Round, error) {
	round := ar.round
	amount := payout.Payout(round.Stake, kind, multiplier)
	round.Outcome = kind
	round.Payout = amount

	reference := round.ID.String() + domain.RefSuffixPayout
	if amount.IsPositive() {
		after, err := s.withLedgerRetry(ctx, StageCredit, func(callCtx context.Context) (decimal.Decimal, error) {
			return s.ledger.Credit(callCtx, round.UserID, amount, reference)
		})
		if err != nil {
			return snapshot(round), s.fail(ctx, ar, StageCredit, err)
		}
		round.Balance = after
	}

	now := time.Now().UTC()
	entry := domain.BetLogEntry{
		ID:        uuid.New(),
		RoundID:   round.ID,
		UserID:    round.UserID,
		Game:      round.Game,
		Stake:     round.Stake,
		Won:       kind == domain.OutcomeWin,
		Outcome:   kind,
		Payout:    amount,
		Forced:    ar.decision.Forced,
		CreatedAt: now,
	}
	if _, err := s.withLedgerRetry(ctx, StageRecordBet, func(callCtx context.Context) (decimal.Decimal, error) {
		return decimal.Zero, s.ledger.RecordBet(callCtx, &entry)
	}); err != nil {
		return snapshot(round), s.fail(ctx, ar, StageRecordBet, err)
	}

	if err := transition(ctx, ar.lifecycle, eventSettle); err != nil {
		logger.FromContext(ctx).Error(LogMsgLifecycleFailed, "round_id", round.ID, "error", err)
	}
	round.SettledAt = &now
	s.rounds.finish(round)

	s.publish(ctx, event.NewRoundSettledEvent(entry))
	if amount.IsPositive() {
		s.publish(ctx, event.NewBalanceUpdatedEvent(round.UserID, round.Balance, amount, reference))
	}

	logger.FromContext(ctx).Info(LogMsgRoundSettled,
		"round_id", round.ID,
		"user_id", round.UserID,
		"game", round.Game,
		"outcome", kind,
		"stake", round.Stake.String(),
		"payout", amount.String(),
		"forced", ar.decision.Forced)
	return snapshot(round), nil
}

// fail parks a round in contact_support after the ledger retry was exhausted
func (s *service) fail(ctx context.Context, ar *activeRound, stage string, cause error) error {
	round := ar.round
	metrics.LedgerFailures.WithLabelValues(stage).Inc()

	if err := transition(ctx, ar.lifecycle, eventFail); err != nil {
		logger.FromContext(ctx).Error(LogMsgLifecycleFailed, "round_id", round.ID, "error", err)
	}
	s.rounds.finish(round)
	s.publish(ctx, event.NewRoundContactSupportEvent(round, stage))

	logger.FromContext(ctx).Error(LogMsgContactSupport,
		"round_id", round.ID,
		"user_id", round.UserID,
		"game", round.Game,
		"stage", stage,
		"error", cause)
	return fmt.Errorf("%w: round %s: %s: %v", domain.ErrLedgerWriteFailure, round.ID, stage, cause)
}

// withLedgerRetry runs a ledger write under its own timeout and retries it once.
// Writes carry references, so a retry after an unknown outcome is applied at most once.
// The call is detached from ctx cancellation: a client going away must not abort a settlement.
func (s *service) withLedgerRetry(ctx context.Context, stage string, write func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error) {
	base := context.WithoutCancel(ctx)

	var lastErr error
	for attempt := 1; attempt <= ledgerAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(base, s.config.LedgerTimeout)
		after, err := write(callCtx)
		cancel()
		if err == nil {
			return after, nil
		}
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return decimal.Zero, err
		}
		lastErr = err
		if attempt < ledgerAttempts {
			logger.FromContext(ctx).Warn(LogMsgLedgerRetry, "stage", stage, "attempt", attempt, "error", err)
		}
	}
	return decimal.Zero, lastErr
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "event_id", evt.ID, "error", err)
	}
}

// owned returns an active round of the given game that belongs to userID
func (s *service) owned(userID string, roundID uuid.UUID, game domain.GameType) (*activeRound, error) {
	ar, err := s.rounds.getActive(roundID)
	if err != nil {
		if round, ok := s.rounds.lookup(roundID); ok && round.UserID != userID {
			return nil, domain.ErrRoundOwnership
		}
		return nil, err
	}
	if ar.round.UserID != userID {
		return nil, domain.ErrRoundOwnership
	}
	if ar.round.Game != game {
		return nil, fmt.Errorf("%w: round %s is a %s round", domain.ErrInvalidBetParameters, roundID, ar.round.Game)
	}
	return ar, nil
}

// act serializes an action on one round and forgets its lock once the round is over
func (s *service) act(roundID uuid.UUID, fn func() (*domain.Round, error)) (*domain.Round, error) {
	var out *domain.Round
	err := s.locks.WithLock(roundID.String(), func() error {
		var err error
		out, err = fn()
		s.rounds.publish(roundID)
		return err
	})
	if out != nil && out.Status != domain.RoundInProgress {
		s.locks.Forget(roundID.String())
	}
	return out, err
}

// view returns the caller's copy of a round that may be nil
func view(ar *activeRound) *domain.Round {
	if ar == nil {
		return nil
	}
	return snapshot(ar.round)
}
