package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/casino"
	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// GameHandler serves the round endpoints
type GameHandler struct {
	service casino.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(service casino.Service) *GameHandler {
	return &GameHandler{service: service}
}

// StakeRequest is the body shared by every round-opening endpoint
type StakeRequest struct {
	UserID string          `json:"user_id" validate:"required,max=64"`
	Stake  decimal.Decimal `json:"stake" validate:"money"`
}

// RouletteSpinRequest places one roulette bet
type RouletteSpinRequest struct {
	StakeRequest
	BetType   domain.RouletteBetType `json:"bet_type" validate:"required,oneof=straight red black odd even low high dozen column"`
	Selection *int                   `json:"selection,omitempty"`
}

// PlinkoDropRequest drops one ball
type PlinkoDropRequest struct {
	StakeRequest
	Rows int               `json:"rows" validate:"required,min=1"`
	Risk domain.PlinkoRisk `json:"risk" validate:"required,oneof=low medium high"`
}

// MinesStartRequest opens a mines board
type MinesStartRequest struct {
	StakeRequest
	GridSize int `json:"grid_size" validate:"required,min=1"`
	Mines    int `json:"mines" validate:"required,min=1"`
}

// RoundActionRequest identifies the player acting on an open round
type RoundActionRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
}

// MinesRevealRequest reveals one tile
type MinesRevealRequest struct {
	RoundActionRequest
	Tile *int `json:"tile" validate:"required,min=0"`
}

// HandleSlotsSpin spins the reels
// POST /api/v1/games/slots/spin
func (h *GameHandler) HandleSlotsSpin(w http.ResponseWriter, r *http.Request) {
	var req StakeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Slots spin"); err != nil {
		return
	}
	round, err := h.service.SpinSlots(r.Context(), req.UserID, req.Stake)
	respondRound(w, r, "Slots spin", round, err)
}

// HandleRouletteSpin spins the wheel
// POST /api/v1/games/roulette/spin
func (h *GameHandler) HandleRouletteSpin(w http.ResponseWriter, r *http.Request) {
	var req RouletteSpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Roulette spin"); err != nil {
		return
	}
	bet := domain.RouletteBet{Type: req.BetType, Selection: req.Selection}
	round, err := h.service.SpinRoulette(r.Context(), req.UserID, req.Stake, bet)
	respondRound(w, r, "Roulette spin", round, err)
}

// HandlePlinkoDrop drops a ball
// POST /api/v1/games/plinko/drop
func (h *GameHandler) HandlePlinkoDrop(w http.ResponseWriter, r *http.Request) {
	var req PlinkoDropRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plinko drop"); err != nil {
		return
	}
	params := domain.PlinkoParams{Rows: req.Rows, Risk: req.Risk}
	round, err := h.service.DropPlinko(r.Context(), req.UserID, req.Stake, params)
	respondRound(w, r, "Plinko drop", round, err)
}

// HandleBlackjackStart deals a new hand
// POST /api/v1/games/blackjack/start
func (h *GameHandler) HandleBlackjackStart(w http.ResponseWriter, r *http.Request) {
	var req StakeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Blackjack start"); err != nil {
		return
	}
	round, err := h.service.StartBlackjack(r.Context(), req.UserID, req.Stake)
	respondRound(w, r, "Blackjack start", round, err)
}

// HandleBlackjackAction applies hit, stand or double
// POST /api/v1/games/blackjack/{roundID}/{action}
func (h *GameHandler) HandleBlackjackAction(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseUUIDParam(r, w, URLParamRoundID, ErrMsgInvalidRoundID)
	if !ok {
		return
	}
	var req RoundActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Blackjack action"); err != nil {
		return
	}
	action := domain.BlackjackAction(chi.URLParam(r, URLParamAction))
	round, err := h.service.BlackjackAction(r.Context(), req.UserID, roundID, action)
	respondRound(w, r, "Blackjack action", round, err)
}

// HandleMinesStart opens a board
// POST /api/v1/games/mines/start
func (h *GameHandler) HandleMinesStart(w http.ResponseWriter, r *http.Request) {
	var req MinesStartRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mines start"); err != nil {
		return
	}
	round, err := h.service.StartMines(r.Context(), req.UserID, req.Stake, req.GridSize, req.Mines)
	respondRound(w, r, "Mines start", round, err)
}

// HandleMinesReveal reveals a tile
// POST /api/v1/games/mines/{roundID}/reveal
func (h *GameHandler) HandleMinesReveal(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseUUIDParam(r, w, URLParamRoundID, ErrMsgInvalidRoundID)
	if !ok {
		return
	}
	var req MinesRevealRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mines reveal"); err != nil {
		return
	}
	round, err := h.service.RevealTile(r.Context(), req.UserID, roundID, *req.Tile)
	respondRound(w, r, "Mines reveal", round, err)
}

// HandleMinesCashOut settles an open board at the current multiplier
// POST /api/v1/games/mines/{roundID}/cashout
func (h *GameHandler) HandleMinesCashOut(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseUUIDParam(r, w, URLParamRoundID, ErrMsgInvalidRoundID)
	if !ok {
		return
	}
	var req RoundActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mines cash-out"); err != nil {
		return
	}
	round, err := h.service.CashOutMines(r.Context(), req.UserID, roundID)
	respondRound(w, r, "Mines cash-out", round, err)
}

// HandleGetRound returns an open or recently finished round
// GET /api/v1/rounds/{roundID}?user_id=
func (h *GameHandler) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseUUIDParam(r, w, URLParamRoundID, ErrMsgInvalidRoundID)
	if !ok {
		return
	}
	userID, ok := GetQueryParam(r, w, QueryParamUserID)
	if !ok {
		return
	}
	round, err := h.service.GetRound(r.Context(), userID, roundID)
	if err != nil {
		respondServiceError(w, r, "Get round", err)
		return
	}
	respondJSON(w, http.StatusOK, round)
}

// HandleCatalog returns the paytables in use
// GET /api/v1/games/catalog
func (h *GameHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Catalog())
}
