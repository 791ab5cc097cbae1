package domain

import "time"

// TradeStatus is the lifecycle state of a trade. Pending is the only
// non-terminal status; transitions never reverse.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s TradeStatus) IsValid() bool {
	switch s {
	case TradePending, TradeAccepted, TradeRejected, TradeCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status can no longer change.
func (s TradeStatus) IsTerminal() bool {
	return s != TradePending
}

// Trade is a proposed bilateral item swap. Offered entries belong to
// the proposer, requested entries to the counterparty. Ownership is
// re-verified at accept time; the proposal itself escrows nothing.
type Trade struct {
	ID                string      `json:"id"`
	ProposerID        string      `json:"proposer_id"`
	CounterpartyID    string      `json:"counterparty_id"`
	OfferedEntryIDs   []string    `json:"offered_entry_ids"`
	RequestedEntryIDs []string    `json:"requested_entry_ids"`
	Status            TradeStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	ResolvedAt        *time.Time  `json:"resolved_at,omitempty"`
}

// TradeExpiry is how long a pending trade stays open before the
// expiry worker cancels it.
const TradeExpiry = 7 * 24 * time.Hour
