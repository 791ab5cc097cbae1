package domain

import "time"

// EntryKind is the representation kind of an inventory entry.
type EntryKind string

const (
	// EntryStacked collapses all copies of an item into one record
	// with a quantity counter.
	EntryStacked EntryKind = "stacked"
	// EntryUnique gives every drawn copy its own record with an
	// individually rolled rarity level.
	EntryUnique EntryKind = "unique"
)

// InventoryEntry is one owned record in a user's inventory.
//
// Stacked entries carry Quantity >= 1 and Points equal to the maximum
// points ever computed for the stack. Unique entries always have
// Quantity 1 and carry their own RarityLevel and Points. A stacked
// entry whose quantity reaches zero is deleted, never retained.
type InventoryEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ItemID      int       `json:"item_id"`
	Kind        EntryKind `json:"kind"`
	Quantity    int       `json:"quantity"`
	Points      int       `json:"points"`
	RarityLevel int       `json:"rarity_level,omitempty"` // unique entries only, [1,1000]
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryRef identifies an inventory entry by id in trade offers and
// transfer requests.
type EntryRef struct {
	EntryID string `json:"entry_id"`
}

// UniqueDraw is a single unique-instance draw produced by batching,
// not yet persisted.
type UniqueDraw struct {
	ItemID      int `json:"item_id"`
	RarityLevel int `json:"rarity_level"`
	Points      int `json:"points"`
}

// DrawBatch is the grouped result of a multi-draw: per-item stack
// counts plus individual unique draws.
type DrawBatch struct {
	StackGains  map[int]int  `json:"stack_gains"`
	StackPoints map[int]int  `json:"stack_points"`
	UniqueGains []UniqueDraw `json:"unique_gains"`
}

// StackableCount returns the number of stackable items in the batch.
func (b DrawBatch) StackableCount() int {
	total := 0
	for _, n := range b.StackGains {
		total += n
	}
	return total
}

// AppliedEntry describes one inventory entry touched by applying a
// draw batch.
type AppliedEntry struct {
	EntryID  string    `json:"entry_id"`
	ItemID   int       `json:"item_id"`
	Kind     EntryKind `json:"kind"`
	Quantity int       `json:"quantity"`
}

// AppliedResult is returned by the ledger after applying a batch of
// gains in one atomic unit.
type AppliedResult struct {
	Entries []AppliedEntry `json:"entries"`
}

// ShowcaseLimit caps how many entries a user may showcase on their
// profile.
const ShowcaseLimit = 10
