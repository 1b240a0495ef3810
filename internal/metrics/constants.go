package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
	MetricNameEventsDeduplicated = "events_deduplicated_total"
	MetricNameSSEClients         = "sse_clients_connected"
)

// Casino metric names
const (
	MetricNameRoundsSettled          = "casino_rounds_settled_total"
	MetricNameAmountWagered          = "casino_amount_wagered_total"
	MetricNameAmountPaid             = "casino_amount_paid_total"
	MetricNameResolverFallbacks      = "casino_resolver_fallbacks_total"
	MetricNameGovernorClamps         = "casino_governor_clamps_total"
	MetricNameForcedOutcomesConsumed = "casino_forced_outcomes_consumed_total"
	MetricNameLedgerFailures         = "casino_ledger_failures_total"
	MetricNameContactSupportRounds   = "casino_contact_support_rounds_total"
	MetricNameActiveRounds           = "casino_active_rounds"
)

// Background metric names
const (
	MetricNameWorkerJobFailures = "worker_job_failures_total"
	MetricNameWorkerJobsDropped = "worker_jobs_dropped_total"
	MetricNameStreamMessages    = "event_stream_messages_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
	HelpTextEventsDeduplicated = "Total number of redelivered events dropped by idempotent consumers"
	HelpTextSSEClients         = "Current number of connected SSE clients"
)

// Casino metric help text
const (
	HelpTextRoundsSettled          = "Total number of settled rounds"
	HelpTextAmountWagered          = "Total credits staked"
	HelpTextAmountPaid             = "Total credits paid out"
	HelpTextResolverFallbacks      = "Total number of resolutions that used the fallback probability"
	HelpTextGovernorClamps         = "Total number of resolutions clamped by the max-profit governor"
	HelpTextForcedOutcomesConsumed = "Total number of forced outcomes consumed"
	HelpTextLedgerFailures         = "Total number of ledger writes that failed"
	HelpTextContactSupportRounds   = "Total number of rounds moved to contact_support"
	HelpTextActiveRounds           = "Current number of in-progress interactive rounds"
)

// Background metric help text
const (
	HelpTextWorkerJobFailures = "Total number of worker jobs that returned an error"
	HelpTextWorkerJobsDropped = "Total number of jobs dropped because the worker queue was full"
	HelpTextStreamMessages    = "Total number of event stream messages by direction"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelGame    = "game"
	LabelOutcome = "outcome"
	LabelSource  = "source"
	LabelMode    = "mode"
	LabelStage   = "stage"
	LabelReason  = "reason"
	LabelJob     = "job"
	LabelDir     = "direction"
)

// Stream directions
const (
	DirectionOut = "out"
	DirectionIn  = "in"
)

// Resolver fallback reasons
const (
	ReasonTimeout     = "timeout"
	ReasonUnavailable = "unavailable"
	ReasonInvalid     = "invalid"
)

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
