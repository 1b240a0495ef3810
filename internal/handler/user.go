package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/BrandishCasino_Go/internal/user"
)

// RegisterUserRequest creates a player
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
}

// HandleRegisterUser creates a player funded with the starting credits.
// POST /api/v1/users/register
func HandleRegisterUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		profile, err := svc.Register(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}
		respondJSON(w, http.StatusCreated, profile)
	}
}

// HandleGetUser returns a profile with its current balance.
// GET /api/v1/users/{userID}
func HandleGetUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetProfile(r.Context(), chi.URLParam(r, URLParamUserID))
		if err != nil {
			respondServiceError(w, r, "Get user", err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleGetUserBets returns the newest settled rounds of one player.
// GET /api/v1/users/{userID}/bets?limit=
func HandleGetUserBets(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(r, w)
		if !ok {
			return
		}
		bets, err := svc.RecentBets(r.Context(), chi.URLParam(r, URLParamUserID), limit)
		if err != nil {
			respondServiceError(w, r, "Get bets", err)
			return
		}
		respondJSON(w, http.StatusOK, bets)
	}
}

// HandleGetLeaderboard ranks players by net winnings.
// GET /api/v1/leaderboard?limit=
func HandleGetLeaderboard(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(r, w)
		if !ok {
			return
		}
		entries, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
