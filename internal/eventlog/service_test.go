package eventlog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	mockBus := new(MockEventBus)

	eventTypes := []event.Type{
		domain.EventTypeItemsDrawn,
		domain.EventTypeTradeProposed,
		domain.EventTypeTradeResolved,
		domain.EventTypeMissionDayClaimed,
		domain.EventTypeMissionCompleted,
		domain.EventTypeMissionDayAvailable,
		domain.EventTypeTicketsChanged,
	}

	for _, et := range eventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent(t *testing.T) {
	t.Run("persists serialized payload", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		ctx := context.Background()
		evt := event.NewTicketsChangedEvent("user123", 25, 125, "grant")

		expected, err := json.Marshal(evt.Payload)
		require.NoError(t, err)

		mockRepo.On("LogEvent", ctx, string(domain.EventTypeTicketsChanged), json.RawMessage(expected)).Return(nil)

		err = svc.handleEvent(ctx, evt)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		ctx := context.Background()
		evt := event.NewTicketsChangedEvent("user123", 10, 10, "grant")

		mockRepo.On("LogEvent", ctx, mock.Anything, mock.Anything).Return(assert.AnError)

		err := svc.handleEvent(ctx, evt)
		assert.Error(t, err)
	})
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)

	count, err := service.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}
