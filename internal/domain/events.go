package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "items.drawn")
const (
	// EventTypeItemsDrawn is published when a draw batch is applied to an inventory
	EventTypeItemsDrawn = "items.drawn"

	// EventTypeTradeProposed is published when a trade is created
	EventTypeTradeProposed = "trade.proposed"

	// EventTypeTradeResolved is published when a trade reaches a terminal status
	EventTypeTradeResolved = "trade.resolved"

	// EventTypeMissionDayClaimed is published when a streak mission day is claimed
	EventTypeMissionDayClaimed = "mission.day_claimed"

	// EventTypeMissionCompleted is published when a mission reaches completion
	EventTypeMissionCompleted = "mission.completed"

	// EventTypeMissionDayAvailable is published at day rollover for active
	// streak missions. Advisory only; eligibility is still enforced on claim.
	EventTypeMissionDayAvailable = "mission.day_available"

	// EventTypeTicketsChanged is published when a user's ticket balance moves
	EventTypeTicketsChanged = "tickets.changed"
)

// ItemsDrawnPayload is the event payload for items.drawn events
type ItemsDrawnPayload struct {
	UserID      string         `json:"user_id"`
	BoxID       int            `json:"box_id"`
	DrawCount   int            `json:"draw_count"`
	RarityCount map[string]int `json:"rarity_count"`
	Timestamp   int64          `json:"timestamp"`
}

// TradeProposedPayload is the event payload for trade.proposed events
type TradeProposedPayload struct {
	TradeID        string `json:"trade_id"`
	ProposerID     string `json:"proposer_id"`
	CounterpartyID string `json:"counterparty_id"`
	OfferedCount   int    `json:"offered_count"`
	RequestedCount int    `json:"requested_count"`
	Timestamp      int64  `json:"timestamp"`
}

// TradeResolvedPayload is the event payload for trade.resolved events
type TradeResolvedPayload struct {
	TradeID        string `json:"trade_id"`
	ProposerID     string `json:"proposer_id"`
	CounterpartyID string `json:"counterparty_id"`
	Status         string `json:"status"`
	Timestamp      int64  `json:"timestamp"`
}

// MissionDayClaimedPayload is the event payload for mission.day_claimed events
type MissionDayClaimedPayload struct {
	UserID    string `json:"user_id"`
	MissionID int    `json:"mission_id"`
	Day       int    `json:"day"`
	Tickets   int    `json:"tickets"`
	Timestamp int64  `json:"timestamp"`
}

// MissionDayAvailablePayload is the event payload for mission.day_available events
type MissionDayAvailablePayload struct {
	MissionID int    `json:"mission_id"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

// MissionCompletedPayload is the event payload for mission.completed events
type MissionCompletedPayload struct {
	UserID    string `json:"user_id"`
	MissionID int    `json:"mission_id"`
	Tickets   int    `json:"tickets"`
	Timestamp int64  `json:"timestamp"`
}

// TicketsChangedPayload is the event payload for tickets.changed events
type TicketsChangedPayload struct {
	UserID    string `json:"user_id"`
	Delta     int    `json:"delta"`
	Balance   int    `json:"balance"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}
