package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func settledRound(game domain.GameType) *domain.Round {
	return &domain.Round{
		ID:      uuid.New(),
		UserID:  "u1",
		Game:    game,
		Stake:   decimal.NewFromInt(100),
		Status:  domain.RoundSettled,
		Outcome: domain.OutcomeWin,
		Payout:  decimal.NewFromInt(250),
	}
}

func TestHandleSlotsSpin(t *testing.T) {
	t.Run("settled round", func(t *testing.T) {
		svc := new(MockCasinoService)
		h := NewGameHandler(svc)
		round := settledRound(domain.GameSlots)
		svc.On("SpinSlots", mock.Anything, "u1", decEq("100")).Return(round, nil)

		w := httptest.NewRecorder()
		h.HandleSlotsSpin(w, postJSON("/api/v1/games/slots/spin", `{"user_id":"u1","stake":"100"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.Round
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, round.ID, got.ID)
		assert.True(t, got.Payout.Equal(decimal.NewFromInt(250)))
		svc.AssertExpectations(t)
	})

	t.Run("stake with too many decimals", func(t *testing.T) {
		svc := new(MockCasinoService)
		w := httptest.NewRecorder()
		NewGameHandler(svc).HandleSlotsSpin(w, postJSON("/", `{"user_id":"u1","stake":"1.001"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"stake"`)
		svc.AssertNotCalled(t, "SpinSlots", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewGameHandler(new(MockCasinoService)).HandleSlotsSpin(w, postJSON("/", `{`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		svc := new(MockCasinoService)
		svc.On("SpinSlots", mock.Anything, "u1", mock.Anything).
			Return(nil, fmt.Errorf("%w: balance 5", domain.ErrInsufficientBalance))

		w := httptest.NewRecorder()
		NewGameHandler(svc).HandleSlotsSpin(w, postJSON("/", `{"user_id":"u1","stake":"10"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientBalanceErr)
	})

	t.Run("ledger failure returns the round", func(t *testing.T) {
		svc := new(MockCasinoService)
		round := settledRound(domain.GameSlots)
		round.Status = domain.RoundContactSupport
		svc.On("SpinSlots", mock.Anything, "u1", mock.Anything).Return(round, domain.ErrLedgerWriteFailure)

		w := httptest.NewRecorder()
		NewGameHandler(svc).HandleSlotsSpin(w, postJSON("/", `{"user_id":"u1","stake":"10"}`))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp RoundErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ErrMsgContactSupportError, resp.Error)
		require.NotNil(t, resp.Round)
		assert.Equal(t, round.ID, resp.Round.ID)
		assert.Equal(t, domain.RoundContactSupport, resp.Round.Status)
	})
}

func TestHandleRouletteSpin(t *testing.T) {
	svc := new(MockCasinoService)
	sel := 17
	svc.On("SpinRoulette", mock.Anything, "u1", decEq("5"), domain.RouletteBet{Type: domain.RouletteStraight, Selection: &sel}).
		Return(settledRound(domain.GameRoulette), nil)

	w := httptest.NewRecorder()
	NewGameHandler(svc).HandleRouletteSpin(w, postJSON("/", `{"user_id":"u1","stake":"5","bet_type":"straight","selection":17}`))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)

	w = httptest.NewRecorder()
	NewGameHandler(svc).HandleRouletteSpin(w, postJSON("/", `{"user_id":"u1","stake":"5","bet_type":"split"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePlinkoDrop(t *testing.T) {
	svc := new(MockCasinoService)
	svc.On("DropPlinko", mock.Anything, "u1", decEq("2.50"), domain.PlinkoParams{Rows: 12, Risk: domain.PlinkoHigh}).
		Return(settledRound(domain.GamePlinko), nil)

	w := httptest.NewRecorder()
	NewGameHandler(svc).HandlePlinkoDrop(w, postJSON("/", `{"user_id":"u1","stake":"2.50","rows":12,"risk":"high"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleBlackjackAction(t *testing.T) {
	roundID := uuid.New()

	t.Run("hit", func(t *testing.T) {
		svc := new(MockCasinoService)
		round := settledRound(domain.GameBlackjack)
		round.ID = roundID
		round.Status = domain.RoundInProgress
		svc.On("BlackjackAction", mock.Anything, "u1", roundID, domain.BlackjackHit).Return(round, nil)

		req := withURLParams(postJSON("/", `{"user_id":"u1"}`), map[string]string{
			URLParamRoundID: roundID.String(),
			URLParamAction:  "hit",
		})
		w := httptest.NewRecorder()
		NewGameHandler(svc).HandleBlackjackAction(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad round id", func(t *testing.T) {
		req := withURLParams(postJSON("/", `{"user_id":"u1"}`), map[string]string{
			URLParamRoundID: "nope",
			URLParamAction:  "hit",
		})
		w := httptest.NewRecorder()
		NewGameHandler(new(MockCasinoService)).HandleBlackjackAction(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRoundID)
	})

	t.Run("finished round", func(t *testing.T) {
		svc := new(MockCasinoService)
		svc.On("BlackjackAction", mock.Anything, "u1", roundID, domain.BlackjackStand).Return(nil, domain.ErrRoundNotActive)

		req := withURLParams(postJSON("/", `{"user_id":"u1"}`), map[string]string{
			URLParamRoundID: roundID.String(),
			URLParamAction:  "stand",
		})
		w := httptest.NewRecorder()
		NewGameHandler(svc).HandleBlackjackAction(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandleMines(t *testing.T) {
	roundID := uuid.New()
	svc := new(MockCasinoService)
	h := NewGameHandler(svc)

	open := settledRound(domain.GameMines)
	open.ID = roundID
	open.Status = domain.RoundInProgress
	svc.On("StartMines", mock.Anything, "u1", decEq("10"), 25, 5).Return(open, nil)
	svc.On("RevealTile", mock.Anything, "u1", roundID, 0).Return(open, nil)
	svc.On("CashOutMines", mock.Anything, "u1", roundID).Return(settledRound(domain.GameMines), nil)

	w := httptest.NewRecorder()
	h.HandleMinesStart(w, postJSON("/", `{"user_id":"u1","stake":"10","grid_size":25,"mines":5}`))
	assert.Equal(t, http.StatusOK, w.Code)

	// tile 0 is a valid index and must not be mistaken for a missing field
	w = httptest.NewRecorder()
	h.HandleMinesReveal(w, withURLParams(postJSON("/", `{"user_id":"u1","tile":0}`), map[string]string{URLParamRoundID: roundID.String()}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.HandleMinesReveal(w, withURLParams(postJSON("/", `{"user_id":"u1"}`), map[string]string{URLParamRoundID: roundID.String()}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.HandleMinesCashOut(w, withURLParams(postJSON("/", `{"user_id":"u1"}`), map[string]string{URLParamRoundID: roundID.String()}))
	assert.Equal(t, http.StatusOK, w.Code)

	svc.AssertExpectations(t)
}

func TestHandleGetRound(t *testing.T) {
	roundID := uuid.New()
	svc := new(MockCasinoService)
	svc.On("GetRound", mock.Anything, "u2", roundID).Return(nil, domain.ErrRoundOwnership)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/rounds/x?user_id=u2", nil),
		map[string]string{URLParamRoundID: roundID.String()})
	w := httptest.NewRecorder()
	NewGameHandler(svc).HandleGetRound(w, req)

	// another player's round looks the same as a missing one
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/rounds/x", nil),
		map[string]string{URLParamRoundID: roundID.String()})
	w = httptest.NewRecorder()
	NewGameHandler(svc).HandleGetRound(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
