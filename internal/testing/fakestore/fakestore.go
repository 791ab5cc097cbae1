// Package fakestore provides an in-memory repository.Store and Coordinator
// for service tests. Units execute under a single mutex, so concurrent
// operations observe the same serialized behavior the real coordinator
// provides.
package fakestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/repository"
)

// Store is an in-memory implementation of repository.Store. Reads return
// copies so callers cannot mutate stored state outside a unit.
type Store struct {
	mu       sync.Mutex
	Users    map[string]*domain.User
	Entries  map[string]*domain.InventoryEntry
	Trades   map[string]*domain.Trade
	Missions map[int]*domain.Mission
	Progress map[string]*domain.MissionProgress
	Boxes    map[int]*domain.Box
	Items    map[int]*domain.Item

	// progressByKey indexes progress by user and mission for lookups.
	progressByKey map[string]string
}

// New creates an empty Store
func New() *Store {
	return &Store{
		Users:         make(map[string]*domain.User),
		Entries:       make(map[string]*domain.InventoryEntry),
		Trades:        make(map[string]*domain.Trade),
		Missions:      make(map[int]*domain.Mission),
		Progress:      make(map[string]*domain.MissionProgress),
		Boxes:         make(map[int]*domain.Box),
		Items:         make(map[int]*domain.Item),
		progressByKey: make(map[string]string),
	}
}

func progressKey(userID string, missionID int) string {
	return fmt.Sprintf("%s/%d", userID, missionID)
}

// PutUser seeds a user
func (s *Store) PutUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.Users[u.ID] = &cp
}

// PutEntry seeds an inventory entry, assigning an ID when empty
func (s *Store) PutEntry(e *domain.InventoryEntry) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	s.Entries[e.ID] = &cp
	return e.ID
}

// PutTrade seeds a trade, assigning an ID when empty
func (s *Store) PutTrade(t *domain.Trade) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := copyTrade(t)
	s.Trades[t.ID] = cp
	return t.ID
}

// PutMission seeds a mission
func (s *Store) PutMission(m *domain.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := copyMission(m)
	s.Missions[m.ID] = cp
}

// PutProgress seeds a progress record, assigning an ID when empty
func (s *Store) PutProgress(p *domain.MissionProgress) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := copyProgress(p)
	s.Progress[p.ID] = cp
	s.progressByKey[progressKey(p.UserID, p.MissionID)] = p.ID
	return p.ID
}

// GetUser implements repository.Store
func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.ShowcaseEntries = append([]string(nil), u.ShowcaseEntries...)
	return &cp, nil
}

// UpdateUserTickets implements repository.Store
func (s *Store) UpdateUserTickets(ctx context.Context, userID string, tickets int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Tickets = tickets
	return nil
}

// UpdateUserShowcase implements repository.Store
func (s *Store) UpdateUserShowcase(ctx context.Context, userID string, entryIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ShowcaseEntries = append([]string(nil), entryIDs...)
	return nil
}

// GetEntry implements repository.Store
func (s *Store) GetEntry(ctx context.Context, entryID string) (*domain.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.Entries[entryID]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

// GetStackEntry implements repository.Store
func (s *Store) GetStackEntry(ctx context.Context, userID string, itemID int) (*domain.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.Entries {
		if e.UserID == userID && e.ItemID == itemID && e.Kind == domain.EntryStacked {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

// InsertEntry implements repository.Store
func (s *Store) InsertEntry(ctx context.Context, entry *domain.InventoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	cp := *entry
	s.Entries[cp.ID] = &cp
	return nil
}

// UpdateEntry implements repository.Store
func (s *Store) UpdateEntry(ctx context.Context, entry *domain.InventoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	cp := *entry
	s.Entries[entry.ID] = &cp
	return nil
}

// DeleteEntry implements repository.Store
func (s *Store) DeleteEntry(ctx context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Entries[entryID]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(s.Entries, entryID)
	return nil
}

// GetTrade implements repository.Store
func (s *Store) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Trades[tradeID]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	return copyTrade(t), nil
}

// UpdateTradeStatus implements repository.Store
func (s *Store) UpdateTradeStatus(ctx context.Context, tradeID string, status domain.TradeStatus, resolvedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Trades[tradeID]
	if !ok {
		return domain.ErrTradeNotFound
	}
	t.Status = status
	t.ResolvedAt = &resolvedAt
	return nil
}

// GetMission implements repository.Store
func (s *Store) GetMission(ctx context.Context, missionID int) (*domain.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.Missions[missionID]
	if !ok {
		return nil, domain.ErrMissionNotFound
	}
	return copyMission(m), nil
}

// GetProgress implements repository.Store
func (s *Store) GetProgress(ctx context.Context, progressID string) (*domain.MissionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Progress[progressID]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	return copyProgress(p), nil
}

// UpdateProgress implements repository.Store
func (s *Store) UpdateProgress(ctx context.Context, progress *domain.MissionProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Progress[progress.ID]; !ok {
		return domain.ErrProgressNotFound
	}
	s.Progress[progress.ID] = copyProgress(progress)
	return nil
}

func copyTrade(t *domain.Trade) *domain.Trade {
	cp := *t
	cp.OfferedEntryIDs = append([]string(nil), t.OfferedEntryIDs...)
	cp.RequestedEntryIDs = append([]string(nil), t.RequestedEntryIDs...)
	if t.ResolvedAt != nil {
		at := *t.ResolvedAt
		cp.ResolvedAt = &at
	}
	return &cp
}

func copyMission(m *domain.Mission) *domain.Mission {
	cp := *m
	cp.DayRewards = append([]domain.Reward(nil), m.DayRewards...)
	return &cp
}

func copyProgress(p *domain.MissionProgress) *domain.MissionProgress {
	cp := *p
	cp.ClaimedDays = append([]int(nil), p.ClaimedDays...)
	if p.LastClaimAt != nil {
		at := *p.LastClaimAt
		cp.LastClaimAt = &at
	}
	if p.NextEligibleAt != nil {
		at := *p.NextEligibleAt
		cp.NextEligibleAt = &at
	}
	return &cp
}

func (s *Store) clone() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := New()
	for id, u := range s.Users {
		uc := *u
		uc.ShowcaseEntries = append([]string(nil), u.ShowcaseEntries...)
		cp.Users[id] = &uc
	}
	for id, e := range s.Entries {
		ec := *e
		cp.Entries[id] = &ec
	}
	for id, t := range s.Trades {
		cp.Trades[id] = copyTrade(t)
	}
	for id, m := range s.Missions {
		cp.Missions[id] = copyMission(m)
	}
	for id, p := range s.Progress {
		cp.Progress[id] = copyProgress(p)
	}
	for id, b := range s.Boxes {
		bc := *b
		cp.Boxes[id] = &bc
	}
	for id, it := range s.Items {
		ic := *it
		cp.Items[id] = &ic
	}
	for k, v := range s.progressByKey {
		cp.progressByKey[k] = v
	}
	return cp
}

func (s *Store) replaceWith(other *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users = other.Users
	s.Entries = other.Entries
	s.Trades = other.Trades
	s.Missions = other.Missions
	s.Progress = other.Progress
	s.Boxes = other.Boxes
	s.Items = other.Items
	s.progressByKey = other.progressByKey
}

// Coordinator executes units against a Store under a single mutex, mirroring
// the serialization the SQL coordinator provides for conflicting units. Each
// unit runs against a snapshot that is committed only on success, so a failed
// unit leaves no partial state behind.
type Coordinator struct {
	store *Store
	mu    sync.Mutex

	// FailNext makes the next Execute call return this error before
	// running the unit. Used to exercise error paths.
	FailNext error
}

// NewCoordinator creates a Coordinator over the given store
func NewCoordinator(store *Store) *Coordinator {
	return &Coordinator{store: store}
}

// Execute implements repository.Coordinator
func (c *Coordinator) Execute(ctx context.Context, name string, fn repository.UnitFn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailNext != nil {
		err := c.FailNext
		c.FailNext = nil
		return err
	}
	snapshot := c.store.clone()
	if err := fn(ctx, snapshot); err != nil {
		return err
	}
	c.store.replaceWith(snapshot)
	return nil
}

var (
	_ repository.Store       = (*Store)(nil)
	_ repository.Coordinator = (*Coordinator)(nil)
)
