package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)

	EventsDeduplicated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsDeduplicated,
			Help: HelpTextEventsDeduplicated,
		},
		[]string{LabelType},
	)

	SSEClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)
)

// Casino Metrics
var (
	RoundsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsSettled,
			Help: HelpTextRoundsSettled,
		},
		[]string{LabelGame, LabelOutcome},
	)

	AmountWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAmountWagered,
			Help: HelpTextAmountWagered,
		},
		[]string{LabelGame},
	)

	AmountPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAmountPaid,
			Help: HelpTextAmountPaid,
		},
		[]string{LabelGame},
	)

	ResolverFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResolverFallbacks,
			Help: HelpTextResolverFallbacks,
		},
		[]string{LabelReason},
	)

	GovernorClamps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGovernorClamps,
			Help: HelpTextGovernorClamps,
		},
		[]string{LabelGame},
	)

	ForcedOutcomesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameForcedOutcomesConsumed,
			Help: HelpTextForcedOutcomesConsumed,
		},
		[]string{LabelGame, LabelMode},
	)

	LedgerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerFailures,
			Help: HelpTextLedgerFailures,
		},
		[]string{LabelStage},
	)

	ContactSupportRounds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContactSupportRounds,
			Help: HelpTextContactSupportRounds,
		},
		[]string{LabelGame},
	)

	ActiveRounds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameActiveRounds,
			Help: HelpTextActiveRounds,
		},
		[]string{LabelGame},
	)
)

// Background Metrics
var (
	WorkerJobFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkerJobFailures,
			Help: HelpTextWorkerJobFailures,
		},
		[]string{LabelJob},
	)

	WorkerJobsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkerJobsDropped,
			Help: HelpTextWorkerJobsDropped,
		},
		[]string{LabelJob},
	)

	StreamMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStreamMessages,
			Help: HelpTextStreamMessages,
		},
		[]string{LabelDir},
	)
)
