package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/eventlog"
	"github.com/lootvault/lootvault/internal/metrics"
	"github.com/lootvault/lootvault/internal/sse"
)

// RegisterEventHandlers sets up all event subscribers. The metrics collector
// is the sole source for event-derived counters so service code never
// double-counts what the bus already reports.
func RegisterEventHandlers(eventBus event.Bus, eventLogService eventlog.Service) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := eventLogService.Subscribe(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}

// InitializeSSEHub starts the SSE hub and bridges the event bus onto it.
// The returned hub must be stopped during shutdown.
func InitializeSSEHub(eventBus event.Bus) *sse.Hub {
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, eventBus).Subscribe()
	slog.Info(LogMsgSSEHubInitialized)
	return hub
}
