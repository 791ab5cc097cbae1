package event

import (
	"context"
	"sync"
	"time"

	"github.com/lootvault/lootvault/internal/logger"
)

// retryEntry tracks an event pending retry
type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps an event Bus with a bounded retry queue and a
// dead-letter file for events that exhaust their retries.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// Publish implements Bus. Delivery failures are retried in the background,
// so the caller never sees them.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe implements Bus by delegating to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// PublishWithRetry attempts to publish an event. On failure the event is
// queued for background retry; if the queue is full it goes straight to the
// dead-letter file.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	select {
	case p.retryQueue <- retryEntry{event: event, attempt: 1, lastErr: err}:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", event.Type)
		if dlErr := p.deadLetter.Write(event, 0, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

// Shutdown stops the retry worker, draining any queued events with a final
// delivery attempt each. Returns the context error if the drain does not
// finish in time.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drainQueue()
			return
		case entry := <-p.retryQueue:
			p.processRetry(entry)
		}
	}
}

func (p *ResilientPublisher) processRetry(entry retryEntry) {
	timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, entry.attempt))
	defer timer.Stop()

	select {
	case <-p.shutdown:
		// One last attempt before giving up
		if err := p.bus.Publish(context.Background(), entry.event); err != nil {
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
			if dlErr := p.deadLetter.Write(entry.event, entry.attempt, err); dlErr != nil {
				logger.Error(LogMsgDeadLetterWriteFailedS, "error", dlErr)
			}
		}
		return
	case <-timer.C:
	}

	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Debug(LogMsgEventRetrySucceeded,
			"event_type", entry.event.Type,
			"attempt", entry.attempt)
		return
	}

	if entry.attempt >= p.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted,
			"event_type", entry.event.Type,
			"attempts", entry.attempt)
		if dlErr := p.deadLetter.Write(entry.event, entry.attempt, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
		return
	}

	logger.Debug(LogMsgEventRetryFailed,
		"event_type", entry.event.Type,
		"attempt", entry.attempt,
		"error", err)

	entry.attempt++
	entry.lastErr = err

	select {
	case p.retryQueue <- entry:
	default:
		if dlErr := p.deadLetter.Write(entry.event, entry.attempt, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

func (p *ResilientPublisher) drainQueue() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			if err := p.bus.Publish(context.Background(), entry.event); err != nil {
				if dlErr := p.deadLetter.Write(entry.event, entry.attempt, err); dlErr != nil {
					logger.Error(LogMsgDeadLetterWriteFailedS, "error", dlErr)
				}
			}
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}
