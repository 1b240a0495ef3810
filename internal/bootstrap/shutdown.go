package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/BrandishCasino_Go/internal/casino"
	"github.com/osse101/BrandishCasino_Go/internal/event"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
	"github.com/osse101/BrandishCasino_Go/internal/server"
	"github.com/osse101/BrandishCasino_Go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server             *server.Server
	Casino             casino.Service
	ResilientPublisher *event.ResilientPublisher
	Realtime           *Realtime
	Hub                *sse.Hub
	Store              repository.Store
}

// GracefulShutdown stops components in dependency order:
// the HTTP server, then in-flight rounds, then pending events, then the
// stream bridge and SSE clients, and the store last.
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Casino != nil {
		if err := c.Casino.Shutdown(ctx); err != nil {
			slog.Error(LogMsgCasinoShutdownFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if rt := c.Realtime; rt != nil {
		if rt.Bridge != nil {
			rt.Bridge.Stop()
		}
		// drains forwards queued by the final events
		if rt.Pool != nil {
			rt.Pool.Stop()
		}
		if rt.Redis != nil {
			if err := rt.Redis.Close(); err != nil {
				slog.Error(LogMsgRedisCloseFailed, "error", err)
			}
		}
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Store != nil {
		c.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
