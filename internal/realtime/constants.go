package realtime

import "time"

// Defaults
const (
	DefaultStream     = "casino:events"
	DefaultMaxLen     = 10000
	DefaultBlock      = 5 * time.Second
	DefaultBatchSize  = 64
	DefaultRetryDelay = time.Second

	// field holding the JSON-encoded event in each stream entry
	fieldEvent = "event"

	jobNameForward = "stream_forward"
)

// Log messages
const (
	LogMsgBridgeStarted    = "Event stream bridge started"
	LogMsgBridgeStopped    = "Event stream bridge stopped"
	LogMsgReadFailed       = "Failed to read from event stream"
	LogMsgMalformedEntry   = "Dropping malformed stream entry"
	LogMsgDeliverFailed    = "Failed to deliver stream event, will retry"
	LogMsgAckFailed        = "Failed to ack stream entry"
	LogMsgForwardQueueFull = "Stream forward queue full, event stays local"
)

// Error messages
const (
	ErrMsgFailedToEncode    = "failed to encode event"
	ErrMsgFailedToAdd       = "failed to add event to stream"
	ErrMsgFailedToCreateGrp = "failed to create consumer group"

	errPrefixBusyGroup = "BUSYGROUP"
)
