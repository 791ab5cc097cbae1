package fakestore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/repository"
)

// The Store doubles as the pool-level repositories so service tests can run
// against a single in-memory backend.

// PutBox seeds a box
func (s *Store) PutBox(b *domain.Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.Boxes[b.ID] = &cp
}

// PutItem seeds a catalog item
func (s *Store) PutItem(it *domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *it
	s.Items[it.ID] = &cp
}

// GetBox implements repository.Item
func (s *Store) GetBox(ctx context.Context, boxID int) (*domain.Box, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Boxes[boxID]
	if !ok {
		return nil, domain.ErrBoxNotFound
	}
	cp := *b
	return &cp, nil
}

// ListBoxes implements repository.Item
func (s *Store) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var boxes []domain.Box
	for _, b := range s.Boxes {
		boxes = append(boxes, *b)
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].ID < boxes[j].ID })
	return boxes, nil
}

// CreateBox implements repository.Item
func (s *Store) CreateBox(ctx context.Context, box *domain.Box) (*domain.Box, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if box.ID == 0 {
		maxID := 0
		for id := range s.Boxes {
			if id > maxID {
				maxID = id
			}
		}
		box.ID = maxID + 1
	}
	cp := *box
	s.Boxes[cp.ID] = &cp
	out := cp
	return &out, nil
}

// UpdateBox implements repository.Item
func (s *Store) UpdateBox(ctx context.Context, box *domain.Box) (*domain.Box, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Boxes[box.ID]; !ok {
		return nil, domain.ErrBoxNotFound
	}
	cp := *box
	s.Boxes[cp.ID] = &cp
	out := cp
	return &out, nil
}

// ListBoxItems implements repository.Item
func (s *Store) ListBoxItems(ctx context.Context, boxID int) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.Item
	for _, it := range s.Items {
		if it.BoxID == boxID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// GetItem implements repository.Item
func (s *Store) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.Items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

// ListItems implements repository.Item
func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.Item
	for _, it := range s.Items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// CreateItem implements repository.Item
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		maxID := 0
		for id := range s.Items {
			if id > maxID {
				maxID = id
			}
		}
		item.ID = maxID + 1
	}
	cp := *item
	s.Items[cp.ID] = &cp
	out := cp
	return &out, nil
}

// UpdateItem implements repository.Item
func (s *Store) UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[item.ID]; !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	s.Items[cp.ID] = &cp
	out := cp
	return &out, nil
}

// DeleteItem implements repository.Item
func (s *Store) DeleteItem(ctx context.Context, itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[itemID]; !ok {
		return domain.ErrItemNotFound
	}
	delete(s.Items, itemID)
	return nil
}

// ListEntriesByUser implements repository.Inventory
func (s *Store) ListEntriesByUser(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []domain.InventoryEntry
	for _, e := range s.Entries {
		if e.UserID == userID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ItemID != entries[j].ItemID {
			return entries[i].ItemID < entries[j].ItemID
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// CreateTrade implements repository.Trade
func (s *Store) CreateTrade(ctx context.Context, trade *domain.Trade) (*domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now()
	}
	cp := copyTrade(trade)
	s.Trades[cp.ID] = cp
	return copyTrade(cp), nil
}

// ListTradesByUser implements repository.Trade
func (s *Store) ListTradesByUser(ctx context.Context, userID string, status domain.TradeStatus) ([]domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var trades []domain.Trade
	for _, t := range s.Trades {
		if t.ProposerID != userID && t.CounterpartyID != userID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		trades = append(trades, *copyTrade(t))
	}
	sort.Slice(trades, func(i, j int) bool { return trades[i].CreatedAt.Before(trades[j].CreatedAt) })
	return trades, nil
}

// ListExpiredPending implements repository.Trade
func (s *Store) ListExpiredPending(ctx context.Context, olderThan time.Time) ([]domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var trades []domain.Trade
	for _, t := range s.Trades {
		if t.Status == domain.TradePending && t.CreatedAt.Before(olderThan) {
			trades = append(trades, *copyTrade(t))
		}
	}
	return trades, nil
}

// ListActiveMissions implements repository.Mission
func (s *Store) ListActiveMissions(ctx context.Context) ([]domain.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var missions []domain.Mission
	for _, m := range s.Missions {
		if m.Active {
			missions = append(missions, *copyMission(m))
		}
	}
	sort.Slice(missions, func(i, j int) bool { return missions[i].ID < missions[j].ID })
	return missions, nil
}

// ListProgressByUser implements repository.Mission
func (s *Store) ListProgressByUser(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.MissionProgress
	for _, p := range s.Progress {
		if p.UserID == userID {
			out = append(out, *copyProgress(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MissionID < out[j].MissionID })
	return out, nil
}

// CreateProgress implements repository.Mission. Creation is idempotent per
// (user, mission), matching the SQL upsert.
func (s *Store) CreateProgress(ctx context.Context, progress *domain.MissionProgress) (*domain.MissionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey(progress.UserID, progress.MissionID)
	if id, ok := s.progressByKey[key]; ok {
		return copyProgress(s.Progress[id]), nil
	}
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	cp := copyProgress(progress)
	s.Progress[cp.ID] = cp
	s.progressByKey[key] = cp.ID
	return copyProgress(cp), nil
}

// GetUserByUsername implements repository.User
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Username == username {
			cp := *u
			cp.ShowcaseEntries = append([]string(nil), u.ShowcaseEntries...)
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// CreateUser implements repository.User
func (s *Store) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	u := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.Users[u.ID] = u
	cp := *u
	return &cp, nil
}

var (
	_ repository.Item      = (*Store)(nil)
	_ repository.Inventory = (*Store)(nil)
	_ repository.Trade     = (*Store)(nil)
	_ repository.Mission   = (*Store)(nil)
	_ repository.User      = (*Store)(nil)
)
