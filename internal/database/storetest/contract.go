// Package storetest holds the behaviour every repository.Store backend must share.
// Backend packages run it from their own tests.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// Factory returns an empty, migrated store
type Factory func(t *testing.T) repository.Store

// Run executes the contract against stores made by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Ledger", func(t *testing.T) { testLedger(t, newStore(t)) })
	t.Run("ConcurrentDebits", func(t *testing.T) { testConcurrentDebits(t, newStore(t)) })
	t.Run("BetLog", func(t *testing.T) { testBetLog(t, newStore(t)) })
	t.Run("WinRates", func(t *testing.T) { testWinRates(t, newStore(t)) })
	t.Run("ForcedOutcomes", func(t *testing.T) { testForcedOutcomes(t, newStore(t)) })
	t.Run("Wallet", func(t *testing.T) { testWallet(t, newStore(t)) })
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createUser(t *testing.T, store repository.Store, username string, balance string) string {
	t.Helper()
	ctx := context.Background()
	p := &domain.Profile{UserID: uuid.NewString(), Username: username}
	require.NoError(t, store.CreateUser(ctx, p))
	if balance != "" {
		_, err := store.Credit(ctx, p.UserID, dec(balance), domain.RefPrefixSignup+p.UserID)
		require.NoError(t, err)
	}
	return p.UserID
}

func testUsers(t *testing.T, store repository.Store) {
	ctx := context.Background()
	id := createUser(t, store, "alice", "")

	err := store.CreateUser(ctx, &domain.Profile{UserID: uuid.NewString(), Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	byID, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.True(t, byID.Balance.IsZero())

	byName, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.UserID)

	_, err = store.GetUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func testLedger(t *testing.T, store repository.Store) {
	ctx := context.Background()
	id := createUser(t, store, "bob", "100")

	bal, err := store.Credit(ctx, id, dec("100"), domain.RefPrefixSignup+id)
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("100")), "replayed reference must not credit twice")

	bal, err = store.Debit(ctx, id, dec("30.25"), "round-1:stake")
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("69.75")))

	bal, err = store.Debit(ctx, id, dec("30.25"), "round-1:stake")
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("69.75")), "replayed debit returns the current balance")

	_, err = store.Debit(ctx, id, dec("69.76"), "round-2:stake")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	bal, err = store.GetBalance(ctx, id)
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("69.75")), "a rejected debit mutates nothing")

	_, err = store.Debit(ctx, id, dec("1"), "round-2:stake")
	require.NoError(t, err, "a rejected reference was never applied")

	_, err = store.Credit(ctx, uuid.NewString(), dec("1"), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = store.GetBalance(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func testConcurrentDebits(t *testing.T, store repository.Store) {
	ctx := context.Background()
	id := createUser(t, store, "carol", "70")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Debit(ctx, id, dec("10"), uuid.NewString()+":stake")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 7, succeeded)
	bal, err := store.GetBalance(ctx, id)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func testBetLog(t *testing.T, store repository.Store) {
	ctx := context.Background()
	winner := createUser(t, store, "dave", "")
	loser := createUser(t, store, "erin", "")

	now := time.Now().UTC().Truncate(time.Millisecond)
	record := func(userID string, stake, payout string, outcome domain.OutcomeKind, at time.Time) uuid.UUID {
		entry := &domain.BetLogEntry{
			ID:        uuid.New(),
			RoundID:   uuid.New(),
			UserID:    userID,
			Game:      domain.GameSlots,
			Stake:     dec(stake),
			Won:       outcome == domain.OutcomeWin,
			Outcome:   outcome,
			Payout:    dec(payout),
			CreatedAt: at,
		}
		require.NoError(t, store.RecordBet(ctx, entry))
		dup := *entry
		dup.ID = uuid.New()
		dup.Payout = dec("999")
		require.NoError(t, store.RecordBet(ctx, &dup), "a second record for the round is a no-op")
		return entry.RoundID
	}

	record(winner, "10", "25", domain.OutcomeWin, now.Add(-time.Minute))
	latest := record(winner, "10", "0", domain.OutcomeLoss, now)
	record(loser, "50", "0", domain.OutcomeLoss, now)

	bets, err := store.GetRecentBets(ctx, winner, 10)
	require.NoError(t, err)
	require.Len(t, bets, 2)
	assert.Equal(t, latest, bets[0].RoundID)
	assert.True(t, bets[1].Payout.Equal(dec("25")))

	limited, err := store.GetRecentBets(ctx, winner, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	board, err := store.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "dave", board[0].Username)
	assert.Equal(t, 2, board[0].Rounds)
	assert.True(t, board[0].Net.Equal(dec("5")))
	assert.True(t, board[1].Net.Equal(dec("-50")))
}

func testWinRates(t *testing.T, store repository.Store) {
	ctx := context.Background()
	id := createUser(t, store, "frank", "")

	rates, err := store.GetWinRates(ctx, id, domain.GameSlots)
	require.NoError(t, err)
	assert.Nil(t, rates.Global)
	assert.Nil(t, rates.Game)
	assert.Nil(t, rates.User)

	require.NoError(t, store.UpsertWinRate(ctx, domain.WinRateOverride{Scope: domain.ScopeGlobal, Probability: 0.4}))
	require.NoError(t, store.UpsertWinRate(ctx, domain.WinRateOverride{Scope: domain.ScopeGame, Game: domain.GameSlots, Probability: 0.3}))
	require.NoError(t, store.UpsertWinRate(ctx, domain.WinRateOverride{Scope: domain.ScopeUser, Game: domain.GameSlots, UserID: id, Probability: 0.2}))
	require.NoError(t, store.UpsertWinRate(ctx, domain.WinRateOverride{Scope: domain.ScopeUser, Game: domain.GameSlots, UserID: id, Probability: 0.9}))

	rates, err = store.GetWinRates(ctx, id, domain.GameSlots)
	require.NoError(t, err)
	require.NotNil(t, rates.User)
	assert.Equal(t, 0.9, *rates.User)
	assert.Equal(t, 0.3, *rates.Game)
	assert.Equal(t, 0.4, *rates.Global)

	other, err := store.GetWinRates(ctx, id, domain.GameRoulette)
	require.NoError(t, err)
	assert.Nil(t, other.User)
	assert.Nil(t, other.Game)
	require.NotNil(t, other.Global)

	list, err := store.ListWinRates(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, store.DeleteWinRate(ctx, domain.ScopeUser, domain.GameSlots, id))
	require.NoError(t, store.DeleteWinRate(ctx, domain.ScopeUser, domain.GameSlots, id))
	rates, err = store.GetWinRates(ctx, id, domain.GameSlots)
	require.NoError(t, err)
	assert.Nil(t, rates.User)
}

func testForcedOutcomes(t *testing.T, store repository.Store) {
	ctx := context.Background()
	id := createUser(t, store, "grace", "")

	_, ok, err := store.ConsumeForcedOutcome(ctx, id, domain.GameMines)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.UpsertForcedOutcome(ctx, domain.ForcedOutcome{UserID: id, Game: domain.GameMines, Mode: domain.ForceWin, Remaining: 3}))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		consumed int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mode, ok, err := store.ConsumeForcedOutcome(ctx, id, domain.GameMines)
			assert.NoError(t, err)
			if ok {
				assert.Equal(t, domain.ForceWin, mode)
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, consumed, "each forced round is consumed exactly once")

	list, err := store.ListForcedOutcomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, store.UpsertForcedOutcome(ctx, domain.ForcedOutcome{UserID: id, Game: domain.GameMines, Mode: domain.ForceLoss, Remaining: 1}))
	list, err = store.ListForcedOutcomes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ForceLoss, list[0].Mode)

	require.NoError(t, store.DeleteForcedOutcome(ctx, id, domain.GameMines))
	_, ok, err = store.ConsumeForcedOutcome(ctx, id, domain.GameMines)
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTransaction(userID string, kind domain.TransactionKind, amount string) *domain.Transaction {
	return &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Amount:    dec(amount),
		Status:    domain.TransactionPending,
		CreatedAt: time.Now().UTC(),
	}
}

func testWallet(t *testing.T, store repository.Store) {
	ctx := context.Background()
	id := createUser(t, store, "heidi", "50")

	deposit := newTransaction(id, domain.TransactionDeposit, "25.50")
	require.NoError(t, store.CreateTransaction(ctx, deposit))

	pending, err := store.ListTransactions(ctx, domain.TransactionPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Amount.Equal(dec("25.50")))

	resolved, bal, err := store.ResolveTransaction(ctx, deposit.ID, domain.TransactionApproved, "admin", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionApproved, resolved.Status)
	assert.Equal(t, "admin", resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.True(t, bal.Equal(dec("75.50")))

	_, _, err = store.ResolveTransaction(ctx, deposit.ID, domain.TransactionApproved, "admin", "")
	assert.ErrorIs(t, err, domain.ErrTransactionNotPending)

	big := newTransaction(id, domain.TransactionWithdrawal, "100")
	require.NoError(t, store.CreateTransaction(ctx, big))
	_, _, err = store.ResolveTransaction(ctx, big.ID, domain.TransactionApproved, "admin", "")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	stored, err := store.GetTransaction(ctx, big.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPending, stored.Status, "a failed approval leaves the request pending")

	rejected, bal, err := store.ResolveTransaction(ctx, big.ID, domain.TransactionRejected, "admin", "too large")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionRejected, rejected.Status)
	assert.Equal(t, "too large", rejected.Note)
	assert.True(t, bal.Equal(dec("75.50")))

	withdrawal := newTransaction(id, domain.TransactionWithdrawal, "0.50")
	require.NoError(t, store.CreateTransaction(ctx, withdrawal))
	_, bal, err = store.ResolveTransaction(ctx, withdrawal.ID, domain.TransactionApproved, "admin", "")
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("75")))

	_, err = store.GetTransaction(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	all, err := store.ListTransactions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
