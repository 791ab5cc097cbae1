package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Type-safe event constructors

// NewItemsDrawnEvent creates a new items.drawn event
func NewItemsDrawnEvent(userID string, boxID, drawCount int, rarityCount map[string]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeItemsDrawn),
		Payload: domain.ItemsDrawnPayload{
			UserID:      userID,
			BoxID:       boxID,
			DrawCount:   drawCount,
			RarityCount: rarityCount,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTradeProposedEvent creates a new trade.proposed event
func NewTradeProposedEvent(trade *domain.Trade) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTradeProposed),
		Payload: domain.TradeProposedPayload{
			TradeID:        trade.ID,
			ProposerID:     trade.ProposerID,
			CounterpartyID: trade.CounterpartyID,
			OfferedCount:   len(trade.OfferedEntryIDs),
			RequestedCount: len(trade.RequestedEntryIDs),
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTradeResolvedEvent creates a new trade.resolved event
func NewTradeResolvedEvent(trade *domain.Trade) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTradeResolved),
		Payload: domain.TradeResolvedPayload{
			TradeID:        trade.ID,
			ProposerID:     trade.ProposerID,
			CounterpartyID: trade.CounterpartyID,
			Status:         string(trade.Status),
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewMissionDayClaimedEvent creates a new mission.day_claimed event
func NewMissionDayClaimedEvent(userID string, missionID, day, tickets int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeMissionDayClaimed),
		Payload: domain.MissionDayClaimedPayload{
			UserID:    userID,
			MissionID: missionID,
			Day:       day,
			Tickets:   tickets,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewMissionDayAvailableEvent creates a new mission.day_available event
func NewMissionDayAvailableEvent(missionID int, date string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeMissionDayAvailable),
		Payload: domain.MissionDayAvailablePayload{
			MissionID: missionID,
			Date:      date,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewMissionCompletedEvent creates a new mission.completed event
func NewMissionCompletedEvent(userID string, missionID, tickets int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeMissionCompleted),
		Payload: domain.MissionCompletedPayload{
			UserID:    userID,
			MissionID: missionID,
			Tickets:   tickets,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTicketsChangedEvent creates a new tickets.changed event
func NewTicketsChangedEvent(userID string, delta, balance int, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTicketsChanged),
		Payload: domain.TicketsChangedPayload{
			UserID:    userID,
			Delta:     delta,
			Balance:   balance,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously. A worker pool dispatch could replace this
	// if handler latency ever becomes a problem.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
