package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BrandishCasino_Go/internal/sse"
)

// AdminSSEBroadcastRequest is a manual event pushed to connected clients
type AdminSSEBroadcastRequest struct {
	Type    string          `json:"type" validate:"required,max=64"`
	UserID  string          `json:"user_id" validate:"max=64"`
	Payload json.RawMessage `json:"payload"`
}

// Broadcaster is the part of the SSE hub the admin endpoint uses
type Broadcaster interface {
	Broadcast(evt sse.Event, userID string)
}

// HandleSSEBroadcast pushes an operator event to SSE clients, optionally to one user only.
// POST /api/v1/admin/sse/broadcast
func HandleSSEBroadcast(hub Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminSSEBroadcastRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Broadcast SSE"); err != nil {
			return
		}

		var payload interface{}
		if len(req.Payload) > 0 {
			if err := json.Unmarshal(req.Payload, &payload); err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidPayload)
				return
			}
		}

		hub.Broadcast(sse.Event{
			ID:        uuid.NewString(),
			Type:      req.Type,
			Timestamp: time.Now().Unix(),
			Payload:   payload,
		}, req.UserID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEventBroadcast})
	}
}
