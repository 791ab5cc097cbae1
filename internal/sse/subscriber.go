package sse

import (
	"context"
	"log/slog"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// broadcastTypes is every event type forwarded to connected clients.
var broadcastTypes = []event.Type{
	domain.EventTypeItemsDrawn,
	domain.EventTypeTradeProposed,
	domain.EventTypeTradeResolved,
	domain.EventTypeMissionDayClaimed,
	domain.EventTypeMissionCompleted,
	domain.EventTypeMissionDayAvailable,
	domain.EventTypeTicketsChanged,
}

// Subscribe registers handlers for all broadcast event types
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(broadcastTypes))
	for _, t := range broadcastTypes {
		s.bus.Subscribe(t, s.handleEvent)
		types = append(types, string(t))
	}

	slog.Info(LogMsgSubscriberRegistered, "types", types)
}

// handleEvent forwards a bus event to every connected client. Payloads
// are the typed event payloads, serialized as-is.
func (s *Subscriber) handleEvent(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	return nil
}
