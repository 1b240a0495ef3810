package sse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
)

// Subscriber bridges the event bus to the SSE hub. Deliver is idempotent on event ID,
// so the same event arriving from the local bus and from the stream bridge reaches
// clients once.
type Subscriber struct {
	hub  *Hub
	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

// NewSubscriber creates a subscriber remembering up to size event IDs for ttl
func NewSubscriber(hub *Hub, size int, ttl time.Duration) *Subscriber {
	if size <= 0 {
		size = DefaultDedupeSize
	}
	if ttl <= 0 {
		ttl = DefaultDedupeTTL
	}
	return &Subscriber{
		hub:  hub,
		seen: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

// Subscribe registers Deliver for every casino event type
func (s *Subscriber) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, s.Deliver)
	slog.Info(LogMsgSubscriberReady, "types", event.AllTypes)
}

// Deliver forwards evt to the hub unless its ID was already delivered
func (s *Subscriber) Deliver(ctx context.Context, evt event.Event) error {
	if evt.ID != "" {
		if s.markSeen(evt.ID) {
			metrics.EventsDeduplicated.WithLabelValues(string(evt.Type)).Inc()
			logger.FromContext(ctx).Debug(LogMsgEventDuplicate, "event_id", evt.ID, "type", evt.Type)
			return nil
		}
	}

	ts := evt.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}
	s.hub.Broadcast(Event{
		ID:        evt.ID,
		Type:      string(evt.Type),
		Timestamp: ts.Unix(),
		Payload:   evt.Payload,
	}, evt.UserScope())

	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_id", evt.ID, "type", evt.Type)
	return nil
}

// markSeen records id and reports whether it had been recorded before
func (s *Subscriber) markSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen.Contains(id) {
		return true
	}
	s.seen.Add(id, struct{}{})
	return false
}
