package bootstrap

import (
	"context"
	"log/slog"

	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/server"
	"github.com/lootvault/lootvault/internal/sse"
	"github.com/lootvault/lootvault/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server               *server.Server
	TradeExpiryWorker    *worker.TradeExpiryWorker
	MissionRefreshWorker *worker.MissionRefreshWorker
	SSEHub               *sse.Hub
	ResilientPublisher   *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Background workers (cancel pending timers)
// 3. Event publisher (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.TradeExpiryWorker != nil {
		if err := components.TradeExpiryWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgTradeWorkerFailed, "error", err)
		}
	}

	if components.MissionRefreshWorker != nil {
		if err := components.MissionRefreshWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgMissionWorkerFailed, "error", err)
		}
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
