package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/wallet"
)

// WalletRequest asks an operator to move credits in or out
type WalletRequest struct {
	UserID string          `json:"user_id" validate:"required,max=64"`
	Amount decimal.Decimal `json:"amount" validate:"money"`
	Note   string          `json:"note" validate:"max=256"`
}

type walletAction func(ctx context.Context, userID string, amount decimal.Decimal, note string) (*domain.Transaction, error)

func handleWalletRequest(opName string, action walletAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WalletRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}
		tx, err := action(r.Context(), req.UserID, req.Amount, req.Note)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusAccepted, tx)
	}
}

// HandleDeposit records a pending deposit.
// POST /api/v1/wallet/deposit
func HandleDeposit(svc wallet.Service) http.HandlerFunc {
	return handleWalletRequest("Deposit", svc.RequestDeposit)
}

// HandleWithdraw records a pending withdrawal.
// POST /api/v1/wallet/withdraw
func HandleWithdraw(svc wallet.Service) http.HandlerFunc {
	return handleWalletRequest("Withdraw", svc.RequestWithdrawal)
}
