package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

func TestHandleRegisterUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, "alice").
			Return(&domain.Profile{UserID: "id-1", Username: "alice", Balance: decimal.NewFromInt(1000)}, nil)

		w := httptest.NewRecorder()
		HandleRegisterUser(svc).ServeHTTP(w, postJSON("/", `{"username":"alice"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"id-1"`)
	})

	t.Run("taken", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, "alice").Return(nil, domain.ErrUserAlreadyExists)

		w := httptest.NewRecorder()
		HandleRegisterUser(svc).ServeHTTP(w, postJSON("/", `{"username":"alice"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid username", func(t *testing.T) {
		svc := new(MockUserService)
		w := httptest.NewRecorder()
		HandleRegisterUser(svc).ServeHTTP(w, postJSON("/", `{"username":"a b"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestHandleGetUser(t *testing.T) {
	svc := new(MockUserService)
	svc.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{URLParamUserID: "ghost"})
	w := httptest.NewRecorder()
	HandleGetUser(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgUserNotFoundError)
}

func TestHandleGetUserBets(t *testing.T) {
	svc := new(MockUserService)
	svc.On("RecentBets", mock.Anything, "u1", 5).Return([]domain.BetLogEntry{{UserID: "u1", Game: domain.GameSlots}}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/?limit=5", nil), map[string]string{URLParamUserID: "u1"})
	w := httptest.NewRecorder()
	HandleGetUserBets(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleGetLeaderboard(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Leaderboard", mock.Anything, 0).Return([]domain.LeaderboardEntry{}, nil)

	w := httptest.NewRecorder()
	HandleGetLeaderboard(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	w = httptest.NewRecorder()
	HandleGetLeaderboard(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDepositWithdraw(t *testing.T) {
	svc := new(MockWalletService)
	tx := &domain.Transaction{UserID: "u1", Kind: domain.TransactionDeposit, Status: domain.TransactionPending}
	svc.On("RequestDeposit", mock.Anything, "u1", decEq("25.00"), "payday").Return(tx, nil)
	svc.On("RequestWithdrawal", mock.Anything, "u1", decEq("9999"), "").Return(nil, domain.ErrInsufficientBalance)

	w := httptest.NewRecorder()
	HandleDeposit(svc).ServeHTTP(w, postJSON("/", `{"user_id":"u1","amount":"25.00","note":"payday"}`))
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = httptest.NewRecorder()
	HandleWithdraw(svc).ServeHTTP(w, postJSON("/", `{"user_id":"u1","amount":9999}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	HandleDeposit(svc).ServeHTTP(w, postJSON("/", `{"user_id":"u1","amount":"-1"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}
