package metrics

import (
	"context"

	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all casino events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RoundSettled:
		p, err := event.DecodePayload[event.RoundSettledPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		game := string(p.Game)
		RoundsSettled.WithLabelValues(game, string(p.Outcome)).Inc()
		AmountWagered.WithLabelValues(game).Add(p.Stake.InexactFloat64())
		AmountPaid.WithLabelValues(game).Add(p.Payout.InexactFloat64())

	case event.RoundContactSupport:
		p, err := event.DecodePayload[event.RoundContactSupportPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		ContactSupportRounds.WithLabelValues(string(p.Game)).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
