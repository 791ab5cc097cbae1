package eventlog

import (
	"context"
	"encoding/json"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all domain event types
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeItemsDrawn,
		domain.EventTypeTradeProposed,
		domain.EventTypeTradeResolved,
		domain.EventTypeMissionDayClaimed,
		domain.EventTypeMissionCompleted,
		domain.EventTypeMissionDayAvailable,
		domain.EventTypeTicketsChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent serializes and persists an event to the append-only log
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		log.Warn(LogMsgFailedToMarshalPayload, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), payload); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type)
	return nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
