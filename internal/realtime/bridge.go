// Package realtime carries events between service instances over a Redis stream.
//
// Each instance forwards its local events to the stream and reads the stream back
// through its own consumer group, so every instance sees every event. Entries are
// acked only after delivery, which makes delivery at-least-once: consumers must
// dedupe on event ID.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
	"github.com/osse101/BrandishCasino_Go/internal/worker"
)

// Config configures a Bridge
type Config struct {
	Stream     string
	InstanceID string // names this instance's consumer group and consumer
	MaxLen     int64
	Block      time.Duration
	BatchSize  int64
	RetryDelay time.Duration
}

func (c *Config) applyDefaults() {
	if c.Stream == "" {
		c.Stream = DefaultStream
	}
	if c.MaxLen <= 0 {
		c.MaxLen = DefaultMaxLen
	}
	if c.Block <= 0 {
		c.Block = DefaultBlock
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
}

// Bridge forwards bus events to a Redis stream and delivers stream entries to a handler
type Bridge struct {
	rdb     redis.UniversalClient
	cfg     Config
	group   string
	pool    *worker.Pool
	deliver event.Handler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBridge creates a bridge. Forwarding runs on pool; deliver receives every stream entry.
func NewBridge(rdb redis.UniversalClient, cfg Config, pool *worker.Pool, deliver event.Handler) *Bridge {
	cfg.applyDefaults()
	return &Bridge{
		rdb:     rdb,
		cfg:     cfg,
		group:   "sse:" + cfg.InstanceID,
		pool:    pool,
		deliver: deliver,
	}
}

// Subscribe forwards every casino event published on bus
func (b *Bridge) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, b.Forward)
}

// Forward queues evt for the stream. It never fails the publisher; a full queue leaves
// the event delivered locally only.
func (b *Bridge) Forward(ctx context.Context, evt event.Event) error {
	ok := b.pool.TryEnqueue(worker.JobFunc{
		JobName: jobNameForward,
		Fn: func(jobCtx context.Context) error {
			return b.Publish(jobCtx, evt)
		},
	})
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgForwardQueueFull, "event_id", evt.ID, "type", evt.Type)
	}
	return nil
}

// Publish appends evt to the stream
func (b *Bridge) Publish(ctx context.Context, evt event.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncode, err)
	}
	err = b.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: b.cfg.Stream,
		MaxLen: b.cfg.MaxLen,
		Approx: true,
		Values: map[string]interface{}{fieldEvent: string(data)},
	}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAdd, err)
	}
	metrics.StreamMessages.WithLabelValues(metrics.DirectionOut).Inc()
	return nil
}

// Start creates the consumer group if needed and starts reading
func (b *Bridge) Start(ctx context.Context) error {
	err := b.rdb.XGroupCreateMkStream(ctx, b.cfg.Stream, b.group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), errPrefixBusyGroup) {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateGrp, err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	b.cancel = cancel
	b.wg.Add(1)
	go b.consume(runCtx)

	logger.FromContext(ctx).Info(LogMsgBridgeStarted, "stream", b.cfg.Stream, "group", b.group)
	return nil
}

// Stop ends the read loop and waits for it
func (b *Bridge) Stop() {
	if b.cancel == nil {
		return
	}
	b.cancel()
	b.wg.Wait()
	logger.Info(LogMsgBridgeStopped, "stream", b.cfg.Stream)
}

// consume reads this consumer's pending entries first, then new ones. A failed delivery
// leaves its entry pending and switches back to the pending list on the next pass.
func (b *Bridge) consume(ctx context.Context) {
	defer b.wg.Done()

	pending := true
	for ctx.Err() == nil {
		start := ">"
		if pending {
			start = "0"
		}

		streams, err := b.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: b.cfg.InstanceID,
			Streams:  []string{b.cfg.Stream, start},
			Count:    b.cfg.BatchSize,
			Block:    b.cfg.Block,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn(LogMsgReadFailed, "stream", b.cfg.Stream, "error", err)
			b.sleep(ctx)
			continue
		}

		received := 0
		failed := false
		for _, s := range streams {
			for _, msg := range s.Messages {
				received++
				if !b.handle(ctx, msg) {
					failed = true
				}
			}
		}

		if failed {
			b.sleep(ctx)
		}
		// the pending list is drained once a pending read comes back empty
		pending = failed || (pending && received > 0)
	}
}

// handle delivers one entry and acks it. Returns false when the entry should be retried.
func (b *Bridge) handle(ctx context.Context, msg redis.XMessage) bool {
	metrics.StreamMessages.WithLabelValues(metrics.DirectionIn).Inc()

	evt, err := decode(msg)
	if err != nil {
		// nothing will ever decode it, so it is acked and dropped
		logger.Warn(LogMsgMalformedEntry, "entry_id", msg.ID, "error", err)
		b.ack(ctx, msg.ID)
		return true
	}

	if err := b.deliver(ctx, evt); err != nil {
		logger.Warn(LogMsgDeliverFailed, "entry_id", msg.ID, "event_id", evt.ID, "error", err)
		return false
	}
	b.ack(ctx, msg.ID)
	return true
}

func (b *Bridge) ack(ctx context.Context, id string) {
	if err := b.rdb.XAck(ctx, b.cfg.Stream, b.group, id).Err(); err != nil {
		logger.Warn(LogMsgAckFailed, "entry_id", id, "error", err)
	}
}

func (b *Bridge) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(b.cfg.RetryDelay):
	}
}

func decode(msg redis.XMessage) (event.Event, error) {
	var evt event.Event
	raw, ok := msg.Values[fieldEvent].(string)
	if !ok {
		return evt, fmt.Errorf("entry has no %q field", fieldEvent)
	}
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		return evt, err
	}
	if evt.ID == "" || evt.Type == "" {
		return evt, errors.New("event without id or type")
	}
	return evt, nil
}
