package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameDrawBatches        = "draw_batches_total"
	MetricNameItemsDrawn         = "items_drawn_total"
	MetricNameTradesProposed     = "trades_proposed_total"
	MetricNameTradesResolved     = "trades_resolved_total"
	MetricNameMissionDaysClaimed = "mission_days_claimed_total"
	MetricNameMissionsCompleted  = "missions_completed_total"
	MetricNameTicketsGranted     = "tickets_granted_total"
	MetricNameTicketsDebited     = "tickets_debited_total"
	MetricNameTxConflicts        = "transaction_conflicts_total"
	MetricNameTxRetriesExhausted = "transaction_retries_exhausted_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextDrawBatches        = "Total number of draw batches applied"
	HelpTextItemsDrawn         = "Total number of items drawn, by rarity"
	HelpTextTradesProposed     = "Total number of trades proposed"
	HelpTextTradesResolved     = "Total number of trades resolved, by terminal status"
	HelpTextMissionDaysClaimed = "Total number of streak mission days claimed"
	HelpTextMissionsCompleted  = "Total number of missions completed"
	HelpTextTicketsGranted     = "Total tickets credited to user balances"
	HelpTextTicketsDebited     = "Total tickets debited from user balances"
	HelpTextTxConflicts        = "Total number of transaction conflicts, by unit name"
	HelpTextTxRetriesExhausted = "Total number of operations that exhausted conflict retries, by unit name"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelRarity = "rarity"
	LabelUnit   = "unit"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
