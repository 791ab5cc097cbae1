package inventory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/drawbatch"
	"github.com/lootvault/lootvault/internal/event"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
	"github.com/lootvault/lootvault/internal/sampler"
)

// StackGain is one stacked line of a draw result.
type StackGain struct {
	ItemID   int           `json:"item_id"`
	ItemName string        `json:"item_name"`
	Rarity   domain.Rarity `json:"rarity"`
	Quantity int           `json:"quantity"`
	Points   int           `json:"points"`
}

// UniqueGain is one unique instance of a draw result.
type UniqueGain struct {
	ItemID      int           `json:"item_id"`
	ItemName    string        `json:"item_name"`
	Rarity      domain.Rarity `json:"rarity"`
	RarityLevel int           `json:"rarity_level"`
	Points      int           `json:"points"`
}

// DrawResult is the outcome of opening a box.
type DrawResult struct {
	BoxID   int                   `json:"box_id"`
	Count   int                   `json:"count"`
	Stacks  []StackGain           `json:"stacks,omitempty"`
	Uniques []UniqueGain          `json:"uniques,omitempty"`
	Applied *domain.AppliedResult `json:"applied,omitempty"`
}

// EntryView is an inventory entry joined with its catalog item.
type EntryView struct {
	domain.InventoryEntry
	ItemName string        `json:"item_name"`
	Rarity   domain.Rarity `json:"rarity"`
}

// Service defines the inventory ledger interface
type Service interface {
	DrawBatch(ctx context.Context, userID string, boxID, count int) (*DrawResult, error)
	GetInventory(ctx context.Context, userID string) ([]EntryView, error)
	GetEntry(ctx context.Context, entryID string) (*EntryView, error)
	SetShowcase(ctx context.Context, userID string, entryIDs []string) error
	AppraiseEntry(ctx context.Context, userID, entryID string) (int, error)
	InvalidateCatalog(boxID, itemID int)
}

type service struct {
	coord     repository.Coordinator
	itemRepo  repository.Item
	invRepo   repository.Inventory
	userRepo  repository.User
	publisher event.Bus
	cache     *catalogCache

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a new inventory service. The rand source is owned
// by the service and guarded internally.
func NewService(coord repository.Coordinator, itemRepo repository.Item, invRepo repository.Inventory, userRepo repository.User, publisher event.Bus, rng *rand.Rand) Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &service{
		coord:     coord,
		itemRepo:  itemRepo,
		invRepo:   invRepo,
		userRepo:  userRepo,
		publisher: publisher,
		cache:     newCatalogCache(DefaultBoxCacheSize, DefaultItemCacheSize, DefaultCacheTTL),
		rng:       rng,
	}
}

// DrawBatch opens a box count times and applies every gain to the
// user's inventory in one atomic unit. Tickets must already be debited
// before this call.
func (s *service) DrawBatch(ctx context.Context, userID string, boxID, count int) (*DrawResult, error) {
	log := logger.FromContext(ctx)

	if count < domain.MinDrawCount || count > domain.MaxDrawCount {
		return nil, fmt.Errorf("%w: draw count %d out of range [%d,%d]",
			domain.ErrInvalidInput, count, domain.MinDrawCount, domain.MaxDrawCount)
	}

	box, items, err := s.loadBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: box %d", domain.ErrEmptyPool, boxID)
	}

	pool := make([]sampler.Entry[domain.Item], 0, len(items))
	totalWeight := 0.0
	for _, item := range items {
		pool = append(pool, sampler.Entry[domain.Item]{Weight: item.DropWeight, Ref: item})
		totalWeight += item.DropWeight
	}
	if totalWeight <= 0 {
		return nil, fmt.Errorf("%w: box %d", domain.ErrNoDropWeight, boxID)
	}

	s.rngMu.Lock()
	draws, err := sampler.Sample(s.rng, pool, count)
	if err != nil {
		s.rngMu.Unlock()
		return nil, fmt.Errorf("sample box %d: %w", boxID, err)
	}
	batch := drawbatch.Batch(s.rng, draws)
	s.rngMu.Unlock()

	var applied *domain.AppliedResult
	err = s.coord.Execute(ctx, "inventory.draw_batch", func(ctx context.Context, store repository.Store) error {
		if _, err := store.GetUser(ctx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		res, err := ApplyGains(ctx, store, userID, batch)
		if err != nil {
			return err
		}
		applied = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := s.buildResult(box.ID, count, items, batch)
	result.Applied = applied

	rarityCount := make(map[string]int)
	for _, g := range result.Stacks {
		rarityCount[string(g.Rarity)] += g.Quantity
	}
	for _, g := range result.Uniques {
		rarityCount[string(g.Rarity)]++
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewItemsDrawnEvent(userID, box.ID, count, rarityCount)); err != nil {
			log.Warn("publish items.drawn failed", "error", err)
		}
	}

	log.Info("draw batch applied",
		"user_id", userID,
		"box_id", box.ID,
		"count", count,
		"stacks", len(result.Stacks),
		"uniques", len(result.Uniques))

	return result, nil
}

func (s *service) loadBox(ctx context.Context, boxID int) (*domain.Box, []domain.Item, error) {
	if box, items, ok := s.cache.GetBox(boxID); ok {
		if !box.Active {
			return nil, nil, fmt.Errorf("%w: box %d inactive", domain.ErrBoxNotFound, boxID)
		}
		return box, items, nil
	}

	box, err := s.itemRepo.GetBox(ctx, boxID)
	if err != nil {
		return nil, nil, fmt.Errorf("get box %d: %w", boxID, err)
	}
	if !box.Active {
		return nil, nil, fmt.Errorf("%w: box %d inactive", domain.ErrBoxNotFound, boxID)
	}

	items, err := s.itemRepo.ListBoxItems(ctx, boxID)
	if err != nil {
		return nil, nil, fmt.Errorf("list box %d items: %w", boxID, err)
	}

	s.cache.SetBox(box, items)
	return box, items, nil
}

func (s *service) buildResult(boxID, count int, items []domain.Item, batch domain.DrawBatch) *DrawResult {
	byID := make(map[int]domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	result := &DrawResult{BoxID: boxID, Count: count}
	for itemID, qty := range batch.StackGains {
		item := byID[itemID]
		result.Stacks = append(result.Stacks, StackGain{
			ItemID:   itemID,
			ItemName: item.Name,
			Rarity:   item.Rarity,
			Quantity: qty,
			Points:   batch.StackPoints[itemID],
		})
	}
	sort.Slice(result.Stacks, func(i, j int) bool { return result.Stacks[i].ItemID < result.Stacks[j].ItemID })
	for _, unique := range batch.UniqueGains {
		item := byID[unique.ItemID]
		result.Uniques = append(result.Uniques, UniqueGain{
			ItemID:      unique.ItemID,
			ItemName:    item.Name,
			Rarity:      item.Rarity,
			RarityLevel: unique.RarityLevel,
			Points:      unique.Points,
		})
	}
	return result
}

// GetInventory returns the user's entries joined with catalog items.
func (s *service) GetInventory(ctx context.Context, userID string) ([]EntryView, error) {
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	entries, err := s.invRepo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		item, err := s.lookupItem(ctx, entry.ItemID)
		if err != nil {
			return nil, err
		}
		views = append(views, EntryView{
			InventoryEntry: entry,
			ItemName:       item.Name,
			Rarity:         item.Rarity,
		})
	}
	return views, nil
}

// GetEntry returns a single entry joined with its catalog item.
func (s *service) GetEntry(ctx context.Context, entryID string) (*EntryView, error) {
	entry, err := s.invRepo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	item, err := s.lookupItem(ctx, entry.ItemID)
	if err != nil {
		return nil, err
	}
	return &EntryView{
		InventoryEntry: *entry,
		ItemName:       item.Name,
		Rarity:         item.Rarity,
	}, nil
}

func (s *service) lookupItem(ctx context.Context, itemID int) (*domain.Item, error) {
	if item, ok := s.cache.GetItem(itemID); ok {
		return item, nil
	}
	item, err := s.itemRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", itemID, err)
	}
	s.cache.SetItem(item)
	return item, nil
}

// SetShowcase replaces the user's showcase with the given entries.
// Every entry must belong to the user.
func (s *service) SetShowcase(ctx context.Context, userID string, entryIDs []string) error {
	if len(entryIDs) > domain.ShowcaseLimit {
		return fmt.Errorf("%w: showcase holds at most %d entries", domain.ErrInvalidInput, domain.ShowcaseLimit)
	}

	return s.coord.Execute(ctx, "inventory.set_showcase", func(ctx context.Context, store repository.Store) error {
		if _, err := store.GetUser(ctx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		for _, entryID := range entryIDs {
			entry, err := store.GetEntry(ctx, entryID)
			if err != nil {
				return fmt.Errorf("load entry %s: %w", entryID, err)
			}
			if entry.UserID != userID {
				return fmt.Errorf("%w: entry %s", domain.ErrEntryNotOwned, entryID)
			}
		}
		return store.UpdateUserShowcase(ctx, userID, entryIDs)
	})
}

// AppraiseEntry recomputes an entry's point value from its catalog
// base and rarity level without touching stored points.
func (s *service) AppraiseEntry(ctx context.Context, userID, entryID string) (int, error) {
	entry, err := s.invRepo.GetEntry(ctx, entryID)
	if err != nil {
		return 0, fmt.Errorf("get entry: %w", err)
	}
	if entry.UserID != userID {
		return 0, fmt.Errorf("%w: entry %s", domain.ErrEntryNotOwned, entryID)
	}
	item, err := s.lookupItem(ctx, entry.ItemID)
	if err != nil {
		return 0, err
	}
	return drawbatch.AppraisalPoints(item.Rarity, entry.RarityLevel), nil
}

// InvalidateCatalog drops a box and item from the catalog cache so
// admin edits are visible to draws before the TTL expires.
func (s *service) InvalidateCatalog(boxID, itemID int) {
	if boxID > 0 {
		s.cache.InvalidateBox(boxID)
	}
	if itemID > 0 {
		s.cache.InvalidateItem(itemID)
	}
}
