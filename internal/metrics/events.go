package metrics

import (
	"context"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeItemsDrawn,
		domain.EventTypeTradeProposed,
		domain.EventTypeTradeResolved,
		domain.EventTypeMissionDayClaimed,
		domain.EventTypeMissionCompleted,
		domain.EventTypeTicketsChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.ItemsDrawnPayload:
		DrawBatches.Inc()
		for rarity, count := range p.RarityCount {
			ItemsDrawn.WithLabelValues(rarity).Add(float64(count))
		}
	case domain.TradeProposedPayload:
		TradesProposed.Inc()
	case domain.TradeResolvedPayload:
		TradesResolved.WithLabelValues(p.Status).Inc()
	case domain.MissionDayClaimedPayload:
		MissionDaysClaimed.Inc()
	case domain.MissionCompletedPayload:
		MissionsCompleted.Inc()
	}

	return nil
}
