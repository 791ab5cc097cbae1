package domain

import "time"

// Rarity classifies an item in the catalog. Rarity drives both the
// inventory representation (stacked vs unique) and point valuation.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// ValidRarities lists every rarity accepted at the store boundary.
var ValidRarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

// IsValid reports whether the rarity is one of the known tiers.
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic:
		return true
	}
	return false
}

// IsUnique reports whether draws of this rarity become unique-instance
// inventory entries. Legendary and Mythic items never stack.
func (r Rarity) IsUnique() bool {
	return r == RarityLegendary || r == RarityMythic
}

// Item represents a catalog item. The catalog is immutable outside of
// admin edits; drop weights are trusted configuration.
type Item struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	BoxID      int       `json:"box_id"`
	BasePoints int       `json:"base_points"`
	DropWeight float64   `json:"drop_weight"`
	Power      int       `json:"power"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Box groups catalog items into a drawable pool.
type Box struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TicketCost  int       `json:"ticket_cost"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draw count limits for a single box opening request.
const (
	MinDrawCount = 1
	MaxDrawCount = 100
)

// Rarity level bounds for unique draws.
const (
	RarityLevelMin = 1
	RarityLevelMax = 1000
)
