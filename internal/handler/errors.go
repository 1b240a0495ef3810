package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidRoundID    = "Invalid round ID"
	ErrMsgInvalidTxID       = "Invalid transaction ID"

	ErrMsgInvalidPayload = "Invalid payload JSON"
)

// Success messages for API responses
const (
	MsgWinRateCleared       = "Win rate override cleared"
	MsgForcedOutcomeCleared = "Forced outcome cleared"
	MsgEventBroadcast       = "Event broadcast successfully"
)

// HTTP headers read by handlers
const (
	HeaderAdminUser  = "X-Admin-User"
	DefaultAdminUser = "admin"
)

// Query parameters
const (
	QueryParamUserID = "user_id"
	QueryParamLimit  = "limit"
	QueryParamStatus = "status"
	QueryParamScope  = "scope"
	QueryParamGame   = "game"
)

// URL parameters
const (
	URLParamUserID  = "userID"
	URLParamRoundID = "roundID"
	URLParamAction  = "action"
	URLParamTxID    = "id"
)

// Log messages
const (
	LogMsgDecodeFailed   = "Failed to decode %s request"
	LogMsgRequestFailed  = "%s failed"
	LogMsgReadyzFailed   = "Readiness check failed"
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgContactSupport = "Round needs support follow-up"
)
