package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/trade"
)

// TradeExpiryWorker periodically cancels pending trades that have sat
// unresolved past the trade expiry window.
type TradeExpiryWorker struct {
	tradeSvc      trade.Service
	ticker        *time.Ticker
	shutdown      chan struct{}
	wg            sync.WaitGroup
	checkInterval time.Duration
}

// NewTradeExpiryWorker creates a new trade expiry worker
func NewTradeExpiryWorker(tradeSvc trade.Service, checkInterval time.Duration) *TradeExpiryWorker {
	if checkInterval <= 0 {
		checkInterval = 15 * time.Minute
	}

	return &TradeExpiryWorker{
		tradeSvc:      tradeSvc,
		shutdown:      make(chan struct{}),
		checkInterval: checkInterval,
	}
}

// Start starts the trade expiry worker
func (w *TradeExpiryWorker) Start() {
	logger.FromContext(context.Background()).Info("Starting trade expiry worker", "check_interval", w.checkInterval)

	w.ticker = time.NewTicker(w.checkInterval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Run a sweep immediately on startup to catch trades that
		// expired while the service was down.
		w.sweep()

		for {
			select {
			case <-w.ticker.C:
				w.sweep()
			case <-w.shutdown:
				return
			}
		}
	}()
}

// sweep cancels all pending trades older than the expiry window
func (w *TradeExpiryWorker) sweep() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	cutoff := time.Now().Add(-domain.TradeExpiry)
	log.Debug(LogMsgTradeExpirySweepStarting, "cutoff", cutoff)

	cancelled, err := w.tradeSvc.ExpirePending(ctx, cutoff)
	if err != nil {
		log.Error(LogMsgTradeExpirySweepFailed, "error", err)
		return
	}

	if cancelled > 0 {
		log.Info(LogMsgTradeExpirySweepDone, "cancelled", cancelled)
	}
}

// Shutdown stops the worker and waits for any in-flight sweep to complete
func (w *TradeExpiryWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down trade expiry worker")

	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Trade expiry worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Trade expiry worker shutdown timeout")
		return ctx.Err()
	}
}
