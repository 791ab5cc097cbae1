package event

import "time"

// EventSchemaVersion is stamped on every published event so consumers can
// migrate payload shapes later.
const EventSchemaVersion = "1.0"

const (
	// RetryQueueBufferSize bounds the background retry queue. Events that
	// fail while the queue is full go straight to the dead-letter file.
	RetryQueueBufferSize = 1000

	// DeadLetterFilePermissions is the mode for newly created dead-letter files.
	DeadLetterFilePermissions = 0644
)

// Log messages for event delivery.
const (
	LogMsgEventPublishFailed     = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull         = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed  = "Failed to write to dead letter"
	LogMsgEventRetryExhausted    = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed       = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded    = "Event retry succeeded"
	LogMsgEventDroppedShutdown   = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown   = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout        = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterWriteFailedS = "Failed to write to dead letter shutdown"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles the base delay for each attempt after the
// first: base, 2x, 4x, 8x and so on.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
