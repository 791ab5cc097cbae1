package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
)

// stubTradeService records ExpirePending calls
type stubTradeService struct {
	sweeps  int32
	expired int
	cutoffs chan time.Time
}

func newStubTradeService(expired int) *stubTradeService {
	return &stubTradeService{expired: expired, cutoffs: make(chan time.Time, 16)}
}

func (s *stubTradeService) ProposeTrade(ctx context.Context, proposerID, counterpartyID string, offered, requested []string) (*domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeService) AcceptTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeService) RejectTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeService) CancelTrade(ctx context.Context, tradeID, callerID string) (*domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeService) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeService) ListTrades(ctx context.Context, userID string, status domain.TradeStatus) ([]domain.Trade, error) {
	return nil, nil
}

func (s *stubTradeService) ExpirePending(ctx context.Context, olderThan time.Time) (int, error) {
	atomic.AddInt32(&s.sweeps, 1)
	select {
	case s.cutoffs <- olderThan:
	default:
	}
	return s.expired, nil
}

func TestTradeExpiryWorker_SweepsOnStartup(t *testing.T) {
	svc := newStubTradeService(2)
	w := NewTradeExpiryWorker(svc, time.Hour)
	w.Start()

	// The startup sweep runs asynchronously
	select {
	case cutoff := <-svc.cutoffs:
		expected := time.Now().Add(-domain.TradeExpiry)
		assert.WithinDuration(t, expected, cutoff, 5*time.Second,
			"cutoff should be one expiry window in the past")
	case <-time.After(2 * time.Second):
		t.Fatal("startup sweep never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&svc.sweeps))
}

func TestTradeExpiryWorker_SweepsOnInterval(t *testing.T) {
	svc := newStubTradeService(0)
	w := NewTradeExpiryWorker(svc, 20*time.Millisecond)
	w.Start()

	// Wait for the startup sweep plus at least one ticker sweep
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&svc.sweeps) < 2 {
		select {
		case <-deadline:
			t.Fatal("ticker sweep never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestTradeExpiryWorker_DefaultsInterval(t *testing.T) {
	w := NewTradeExpiryWorker(newStubTradeService(0), 0)
	assert.Equal(t, 15*time.Minute, w.checkInterval)
}
