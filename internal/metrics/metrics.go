package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	DrawBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDrawBatches,
			Help: HelpTextDrawBatches,
		},
	)

	ItemsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsDrawn,
			Help: HelpTextItemsDrawn,
		},
		[]string{LabelRarity},
	)

	TradesProposed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTradesProposed,
			Help: HelpTextTradesProposed,
		},
	)

	TradesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradesResolved,
			Help: HelpTextTradesResolved,
		},
		[]string{LabelStatus},
	)

	MissionDaysClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMissionDaysClaimed,
			Help: HelpTextMissionDaysClaimed,
		},
	)

	MissionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMissionsCompleted,
			Help: HelpTextMissionsCompleted,
		},
	)

	TicketsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicketsGranted,
			Help: HelpTextTicketsGranted,
		},
	)

	TicketsDebited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicketsDebited,
			Help: HelpTextTicketsDebited,
		},
	)
)

// Transaction Metrics
var (
	TransactionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTxConflicts,
			Help: HelpTextTxConflicts,
		},
		[]string{LabelUnit},
	)

	TransactionRetriesExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTxRetriesExhausted,
			Help: HelpTextTxRetriesExhausted,
		},
		[]string{LabelUnit},
	)
)
