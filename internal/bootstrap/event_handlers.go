package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/BrandishCasino_Go/internal/config"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
	"github.com/osse101/BrandishCasino_Go/internal/realtime"
	"github.com/osse101/BrandishCasino_Go/internal/sse"
	"github.com/osse101/BrandishCasino_Go/internal/worker"
)

// EventHandlerDependencies holds what event handler registration needs
type EventHandlerDependencies struct {
	Bus    event.Bus
	Hub    *sse.Hub
	Config *config.Config
}

// Realtime is the running cross-instance fan-out. All fields are nil on a single instance.
type Realtime struct {
	Redis  *redis.Client
	Bridge *realtime.Bridge
	Pool   *worker.Pool
}

// RegisterEventHandlers subscribes the metrics collector and the SSE subscriber, and
// with REDIS_ADDR set starts the stream bridge so clients on any instance see every event.
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) (*Realtime, error) {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(deps.Bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	subscriber := sse.NewSubscriber(deps.Hub, sse.DefaultDedupeSize, sse.DefaultDedupeTTL)
	subscriber.Subscribe(deps.Bus)
	slog.Info(LogMsgSSESubscriberRegistered)

	cfg := deps.Config
	if cfg.RedisAddr == "" {
		slog.Info(LogMsgStreamBridgeDisabled)
		return &Realtime{}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	pool := worker.NewPool(BridgeWorkers, BridgeQueueSize)
	pool.Start()

	bridge := realtime.NewBridge(rdb, realtime.Config{
		Stream:     cfg.RedisStream,
		InstanceID: cfg.InstanceID,
	}, pool, subscriber.Deliver)
	if err := bridge.Start(ctx); err != nil {
		pool.Stop()
		rdb.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartBridge, err)
	}
	bridge.Subscribe(deps.Bus)

	slog.Info(LogMsgStreamBridgeStarted, "stream", cfg.RedisStream, "instance_id", cfg.InstanceID)
	return &Realtime{Redis: rdb, Bridge: bridge, Pool: pool}, nil
}
