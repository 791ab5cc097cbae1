package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/repository"
)

// ApplyGains writes a draw batch into a user's inventory inside an open
// unit of work. Stack gains upsert the single stacked record per item,
// keeping the maximum points ever computed for the stack; unique gains
// insert one record each. Returns every touched entry.
func ApplyGains(ctx context.Context, store repository.Store, userID string, batch domain.DrawBatch) (*domain.AppliedResult, error) {
	result := &domain.AppliedResult{}

	// Stable order keeps retries and tests deterministic.
	itemIDs := make([]int, 0, len(batch.StackGains))
	for itemID := range batch.StackGains {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Ints(itemIDs)

	for _, itemID := range itemIDs {
		gain := batch.StackGains[itemID]
		if gain <= 0 {
			continue
		}
		points := batch.StackPoints[itemID]

		entry, err := store.GetStackEntry(ctx, userID, itemID)
		switch {
		case err == nil:
			entry.Quantity += gain
			if points > entry.Points {
				entry.Points = points
			}
			if err := store.UpdateEntry(ctx, entry); err != nil {
				return nil, fmt.Errorf("update stack for item %d: %w", itemID, err)
			}
		case isNotFound(err):
			entry = &domain.InventoryEntry{
				UserID:   userID,
				ItemID:   itemID,
				Kind:     domain.EntryStacked,
				Quantity: gain,
				Points:   points,
			}
			if err := store.InsertEntry(ctx, entry); err != nil {
				return nil, fmt.Errorf("insert stack for item %d: %w", itemID, err)
			}
		default:
			return nil, fmt.Errorf("load stack for item %d: %w", itemID, err)
		}

		result.Entries = append(result.Entries, domain.AppliedEntry{
			EntryID:  entry.ID,
			ItemID:   itemID,
			Kind:     domain.EntryStacked,
			Quantity: entry.Quantity,
		})
	}

	for _, unique := range batch.UniqueGains {
		entry := &domain.InventoryEntry{
			UserID:      userID,
			ItemID:      unique.ItemID,
			Kind:        domain.EntryUnique,
			Quantity:    1,
			Points:      unique.Points,
			RarityLevel: unique.RarityLevel,
		}
		if err := store.InsertEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("insert unique for item %d: %w", unique.ItemID, err)
		}
		result.Entries = append(result.Entries, domain.AppliedEntry{
			EntryID:  entry.ID,
			ItemID:   unique.ItemID,
			Kind:     domain.EntryUnique,
			Quantity: 1,
		})
	}

	return result, nil
}

// TransferOwnership moves the given entries from one user to another
// inside an open unit of work. Every entry must currently belong to
// fromID or the whole unit fails with ErrEntryNotOwned.
//
// A stacked entry with quantity above one gives up a single unit, which
// merges into the recipient's stack for that item. A stacked entry at
// quantity one merges into an existing recipient stack when present and
// re-parents otherwise, so each user keeps at most one stack per item.
// Unique entries always re-parent whole.
func TransferOwnership(ctx context.Context, store repository.Store, entryIDs []string, fromID, toID string) error {
	for _, entryID := range entryIDs {
		entry, err := store.GetEntry(ctx, entryID)
		if err != nil {
			return fmt.Errorf("load entry %s: %w", entryID, err)
		}
		if entry.UserID != fromID {
			return fmt.Errorf("%w: entry %s", domain.ErrOwnershipMismatch, entryID)
		}

		if entry.Kind == domain.EntryUnique {
			entry.UserID = toID
			if err := store.UpdateEntry(ctx, entry); err != nil {
				return fmt.Errorf("re-parent entry %s: %w", entryID, err)
			}
			continue
		}

		if entry.Quantity > 1 {
			entry.Quantity--
			if err := store.UpdateEntry(ctx, entry); err != nil {
				return fmt.Errorf("decrement entry %s: %w", entryID, err)
			}
			if err := mergeIntoStack(ctx, store, toID, entry.ItemID, entry.Points); err != nil {
				return err
			}
			continue
		}

		// Quantity one: merge into the recipient's existing stack if
		// any, otherwise hand over the whole record.
		dest, err := store.GetStackEntry(ctx, toID, entry.ItemID)
		switch {
		case err == nil:
			dest.Quantity++
			if entry.Points > dest.Points {
				dest.Points = entry.Points
			}
			if err := store.UpdateEntry(ctx, dest); err != nil {
				return fmt.Errorf("merge into stack for item %d: %w", entry.ItemID, err)
			}
			if err := store.DeleteEntry(ctx, entryID); err != nil {
				return fmt.Errorf("delete drained entry %s: %w", entryID, err)
			}
		case isNotFound(err):
			entry.UserID = toID
			if err := store.UpdateEntry(ctx, entry); err != nil {
				return fmt.Errorf("re-parent entry %s: %w", entryID, err)
			}
		default:
			return fmt.Errorf("load recipient stack for item %d: %w", entry.ItemID, err)
		}
	}

	return nil
}

func mergeIntoStack(ctx context.Context, store repository.Store, userID string, itemID, points int) error {
	dest, err := store.GetStackEntry(ctx, userID, itemID)
	switch {
	case err == nil:
		dest.Quantity++
		if points > dest.Points {
			dest.Points = points
		}
		if err := store.UpdateEntry(ctx, dest); err != nil {
			return fmt.Errorf("merge into stack for item %d: %w", itemID, err)
		}
		return nil
	case isNotFound(err):
		entry := &domain.InventoryEntry{
			UserID:   userID,
			ItemID:   itemID,
			Kind:     domain.EntryStacked,
			Quantity: 1,
			Points:   points,
		}
		if err := store.InsertEntry(ctx, entry); err != nil {
			return fmt.Errorf("insert stack for item %d: %w", itemID, err)
		}
		return nil
	default:
		return fmt.Errorf("load recipient stack for item %d: %w", itemID, err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrEntryNotFound)
}
