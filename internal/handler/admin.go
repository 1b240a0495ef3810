package handler

import (
	"net/http"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/settings"
	"github.com/osse101/BrandishCasino_Go/internal/wallet"
)

// AdminHandler serves operator endpoints. The router guards them with the admin key.
type AdminHandler struct {
	settings settings.Service
	wallet   wallet.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(settingsSvc settings.Service, walletSvc wallet.Service) *AdminHandler {
	return &AdminHandler{settings: settingsSvc, wallet: walletSvc}
}

// WinRateRequest sets one win rate layer
type WinRateRequest struct {
	Scope       domain.RateScope `json:"scope" validate:"required,oneof=global game user"`
	Game        domain.GameType  `json:"game" validate:"omitempty,game"`
	UserID      string           `json:"user_id" validate:"max=64"`
	Probability *float64         `json:"probability" validate:"required,min=0,max=1"`
}

// ForcedOutcomeRequest queues forced rounds for one player
type ForcedOutcomeRequest struct {
	UserID string            `json:"user_id" validate:"required,max=64"`
	Game   domain.GameType   `json:"game" validate:"required,game"`
	Mode   domain.ForcedMode `json:"mode" validate:"required,oneof=win loss"`
	Count  int               `json:"count" validate:"required,min=1"`
}

// RejectRequest carries the operator's reason
type RejectRequest struct {
	Note string `json:"note" validate:"max=256"`
}

// HandleListWinRates lists every stored layer.
// GET /api/v1/admin/rates
func (h *AdminHandler) HandleListWinRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.settings.ListWinRates(r.Context())
	if err != nil {
		respondServiceError(w, r, "List win rates", err)
		return
	}
	respondJSON(w, http.StatusOK, rates)
}

// HandleSetWinRate stores one layer.
// PUT /api/v1/admin/rates
func (h *AdminHandler) HandleSetWinRate(w http.ResponseWriter, r *http.Request) {
	var req WinRateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set win rate"); err != nil {
		return
	}
	override, err := h.settings.SetWinRate(r.Context(), domain.WinRateOverride{
		Scope:       req.Scope,
		Game:        req.Game,
		UserID:      req.UserID,
		Probability: *req.Probability,
	})
	if err != nil {
		respondServiceError(w, r, "Set win rate", err)
		return
	}
	respondJSON(w, http.StatusOK, override)
}

// HandleClearWinRate removes one layer.
// DELETE /api/v1/admin/rates?scope=&game=&user_id=
func (h *AdminHandler) HandleClearWinRate(w http.ResponseWriter, r *http.Request) {
	scope, ok := GetQueryParam(r, w, QueryParamScope)
	if !ok {
		return
	}
	game := GetOptionalQueryParam(r, QueryParamGame, "")
	userID := GetOptionalQueryParam(r, QueryParamUserID, "")

	if err := h.settings.ClearWinRate(r.Context(), domain.RateScope(scope), domain.GameType(game), userID); err != nil {
		respondServiceError(w, r, "Clear win rate", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWinRateCleared})
}

// HandleListForcedOutcomes lists pending forced rounds.
// GET /api/v1/admin/forced
func (h *AdminHandler) HandleListForcedOutcomes(w http.ResponseWriter, r *http.Request) {
	forced, err := h.settings.ListForcedOutcomes(r.Context())
	if err != nil {
		respondServiceError(w, r, "List forced outcomes", err)
		return
	}
	respondJSON(w, http.StatusOK, forced)
}

// HandleSetForcedOutcome queues forced rounds.
// PUT /api/v1/admin/forced
func (h *AdminHandler) HandleSetForcedOutcome(w http.ResponseWriter, r *http.Request) {
	var req ForcedOutcomeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set forced outcome"); err != nil {
		return
	}
	forced, err := h.settings.SetForcedOutcome(r.Context(), domain.ForcedOutcome{
		UserID:    req.UserID,
		Game:      req.Game,
		Mode:      req.Mode,
		Remaining: req.Count,
	})
	if err != nil {
		respondServiceError(w, r, "Set forced outcome", err)
		return
	}
	respondJSON(w, http.StatusOK, forced)
}

// HandleClearForcedOutcome drops pending forced rounds.
// DELETE /api/v1/admin/forced?user_id=&game=
func (h *AdminHandler) HandleClearForcedOutcome(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, QueryParamUserID)
	if !ok {
		return
	}
	game, ok := GetQueryParam(r, w, QueryParamGame)
	if !ok {
		return
	}

	if err := h.settings.ClearForcedOutcome(r.Context(), userID, domain.GameType(game)); err != nil {
		respondServiceError(w, r, "Clear forced outcome", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgForcedOutcomeCleared})
}

// HandleListTransactions lists wallet requests, pending ones by default.
// GET /api/v1/admin/transactions?status=
func (h *AdminHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	status := GetOptionalQueryParam(r, QueryParamStatus, string(domain.TransactionPending))
	if status == "all" {
		status = ""
	}
	txs, err := h.wallet.List(r.Context(), domain.TransactionStatus(status))
	if err != nil {
		respondServiceError(w, r, "List transactions", err)
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

// HandleApproveTransaction applies a pending request to the balance.
// POST /api/v1/admin/transactions/{id}/approve
func (h *AdminHandler) HandleApproveTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, w, URLParamTxID, ErrMsgInvalidTxID)
	if !ok {
		return
	}
	tx, err := h.wallet.Approve(r.Context(), id, adminUser(r))
	if err != nil {
		respondServiceError(w, r, "Approve transaction", err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// HandleRejectTransaction closes a pending request without moving credits.
// POST /api/v1/admin/transactions/{id}/reject
func (h *AdminHandler) HandleRejectTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, w, URLParamTxID, ErrMsgInvalidTxID)
	if !ok {
		return
	}
	var req RejectRequest
	if r.ContentLength != 0 {
		if err := DecodeAndValidateRequest(r, w, &req, "Reject transaction"); err != nil {
			return
		}
	}
	tx, err := h.wallet.Reject(r.Context(), id, adminUser(r), req.Note)
	if err != nil {
		respondServiceError(w, r, "Reject transaction", err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func adminUser(r *http.Request) string {
	if name := r.Header.Get(HeaderAdminUser); name != "" {
		return name
	}
	return DefaultAdminUser
}
