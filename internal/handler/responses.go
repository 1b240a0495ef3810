package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoundErrorResponse carries the round alongside the error so the player
// can quote its ID to support.
type RoundErrorResponse struct {
	Error string        `json:"error"`
	Round *domain.Round `json:"round"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Service is temporarily unavailable. Please try again later."
	ErrMsgShuttingDownError   = "Service is shutting down. Please try again shortly."
	ErrMsgContactSupportError = "Your round could not be recorded. Please contact support with the round ID."

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgUserAlreadyExistsError = "Username is already taken"
	ErrMsgInsufficientBalanceErr = "Not enough credits"
	ErrMsgInvalidBetError        = "Invalid bet"
	ErrMsgUnsupportedGameError   = "Unsupported game"
	ErrMsgRoundNotFoundError     = "Round not found"
	ErrMsgRoundNotActiveError    = "Round is already finished"
	ErrMsgInvalidProbabilityErr  = "Probability must be between 0 and 1"
	ErrMsgInvalidForcedError     = "Invalid forced outcome"
	ErrMsgInvalidAmountError     = "Amount must be positive with at most 2 decimals"
	ErrMsgTxNotFoundError        = "Transaction not found"
	ErrMsgTxNotPendingError      = "Transaction was already resolved"
)

// mapServiceErrorToUserMessage converts a service error into an HTTP status and a
// message the player can act on. Unknown errors never leak their text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrLedgerWriteFailure):
		return http.StatusServiceUnavailable, ErrMsgContactSupportError
	case errors.Is(err, domain.ErrConfigUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrShuttingDown):
		return http.StatusServiceUnavailable, ErrMsgShuttingDownError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, ErrMsgUserAlreadyExistsError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceErr
	case errors.Is(err, domain.ErrInvalidBetParameters):
		return http.StatusBadRequest, ErrMsgInvalidBetError
	case errors.Is(err, domain.ErrUnsupportedGame):
		return http.StatusBadRequest, ErrMsgUnsupportedGameError
	case errors.Is(err, domain.ErrRoundNotFound), errors.Is(err, domain.ErrRoundOwnership):
		return http.StatusNotFound, ErrMsgRoundNotFoundError
	case errors.Is(err, domain.ErrRoundNotActive):
		return http.StatusConflict, ErrMsgRoundNotActiveError
	case errors.Is(err, domain.ErrInvalidProbability):
		return http.StatusBadRequest, ErrMsgInvalidProbabilityErr
	case errors.Is(err, domain.ErrInvalidForcedOutcome):
		return http.StatusBadRequest, ErrMsgInvalidForcedError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, ErrMsgTxNotFoundError
	case errors.Is(err, domain.ErrTransactionNotPending):
		return http.StatusConflict, ErrMsgTxNotPendingError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// respondRound writes a round result. A round that reached contact_support is
// returned together with the error.
func respondRound(w http.ResponseWriter, r *http.Request, opName string, round *domain.Round, err error) {
	if err == nil {
		respondJSON(w, http.StatusOK, round)
		return
	}
	if round != nil && errors.Is(err, domain.ErrLedgerWriteFailure) {
		status, msg := mapServiceErrorToUserMessage(err)
		logger.FromContext(r.Context()).Error(LogMsgContactSupport,
			"operation", opName, "round_id", round.ID, "user_id", round.UserID, "error", err)
		respondJSON(w, status, RoundErrorResponse{Error: msg, Round: round})
		return
	}
	respondServiceError(w, r, opName, err)
}
