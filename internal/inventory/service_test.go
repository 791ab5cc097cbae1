package inventory

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/testing/fakestore"
)

func newTestService(store *fakestore.Store, seed int64) Service {
	coord := fakestore.NewCoordinator(store)
	return NewService(coord, store, store, store, nil, rand.New(rand.NewSource(seed)))
}

func seedCatalog(store *fakestore.Store) {
	store.PutBox(&domain.Box{ID: 1, Name: "Starter Vault", TicketCost: 10, Active: true})
	store.PutItem(&domain.Item{ID: 1, Name: "copper coin", Rarity: domain.RarityCommon, BoxID: 1, DropWeight: 80})
	store.PutItem(&domain.Item{ID: 2, Name: "silver charm", Rarity: domain.RarityRare, BoxID: 1, DropWeight: 15})
	store.PutItem(&domain.Item{ID: 3, Name: "dragon sigil", Rarity: domain.RarityLegendary, BoxID: 1, DropWeight: 5})
}

func TestDrawBatch_CountValidation(t *testing.T) {
	store := fakestore.New()
	seedCatalog(store)
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	svc := newTestService(store, 1)

	for _, count := range []int{0, -1, domain.MaxDrawCount + 1} {
		_, err := svc.DrawBatch(context.Background(), "u1", 1, count)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "count %d", count)
	}
}

func TestDrawBatch_UnknownBox(t *testing.T) {
	store := fakestore.New()
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	svc := newTestService(store, 1)

	_, err := svc.DrawBatch(context.Background(), "u1", 99, 5)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

func TestDrawBatch_InactiveBox(t *testing.T) {
	store := fakestore.New()
	store.PutBox(&domain.Box{ID: 2, Name: "Retired Vault", Active: false})
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	svc := newTestService(store, 1)

	_, err := svc.DrawBatch(context.Background(), "u1", 2, 1)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

func TestDrawBatch_EmptyPool(t *testing.T) {
	store := fakestore.New()
	store.PutBox(&domain.Box{ID: 3, Name: "Hollow Vault", Active: true})
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	svc := newTestService(store, 1)

	_, err := svc.DrawBatch(context.Background(), "u1", 3, 1)
	assert.ErrorIs(t, err, domain.ErrEmptyPool)
}

func TestDrawBatch_ZeroTotalWeight(t *testing.T) {
	store := fakestore.New()
	store.PutBox(&domain.Box{ID: 4, Name: "Weightless Vault", Active: true})
	store.PutItem(&domain.Item{ID: 10, Name: "ghost", Rarity: domain.RarityCommon, BoxID: 4, DropWeight: 0})
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	svc := newTestService(store, 1)

	_, err := svc.DrawBatch(context.Background(), "u1", 4, 1)
	assert.ErrorIs(t, err, domain.ErrNoDropWeight)
}

func TestDrawBatch_UnknownUser(t *testing.T) {
	store := fakestore.New()
	seedCatalog(store)
	svc := newTestService(store, 1)

	_, err := svc.DrawBatch(context.Background(), "missing", 1, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDrawBatch_AppliesAllDraws(t *testing.T) {
	store := fakestore.New()
	seedCatalog(store)
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	svc := newTestService(store, 42)

	result, err := svc.DrawBatch(context.Background(), "u1", 1, 50)
	require.NoError(t, err)

	total := 0
	for _, g := range result.Stacks {
		total += g.Quantity
	}
	total += len(result.Uniques)
	assert.Equal(t, 50, total, "every draw lands in the result")

	entries, err := store.ListEntriesByUser(context.Background(), "u1")
	require.NoError(t, err)
	persisted := 0
	for _, e := range entries {
		persisted += e.Quantity
	}
	assert.Equal(t, 50, persisted, "every draw is persisted")

	for _, e := range entries {
		if e.Kind == domain.EntryUnique {
			assert.GreaterOrEqual(t, e.RarityLevel, domain.RarityLevelMin)
			assert.LessOrEqual(t, e.RarityLevel, domain.RarityLevelMax)
		}
	}
}

func TestDrawBatch_DeterministicWithSeed(t *testing.T) {
	run := func() *DrawResult {
		store := fakestore.New()
		seedCatalog(store)
		store.PutUser(&domain.User{ID: "u1", Username: "alice"})
		svc := newTestService(store, 7)
		result, err := svc.DrawBatch(context.Background(), "u1", 1, 20)
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()
	assert.Equal(t, first.Stacks, second.Stacks)
	assert.Equal(t, len(first.Uniques), len(second.Uniques))
	for i := range first.Uniques {
		assert.Equal(t, first.Uniques[i].ItemID, second.Uniques[i].ItemID)
		assert.Equal(t, first.Uniques[i].RarityLevel, second.Uniques[i].RarityLevel)
	}
}

func TestGetInventory_JoinsCatalog(t *testing.T) {
	store := fakestore.New()
	seedCatalog(store)
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	store.PutEntry(&domain.InventoryEntry{UserID: "u1", ItemID: 1, Kind: domain.EntryStacked, Quantity: 2, Points: 10})
	store.PutEntry(&domain.InventoryEntry{UserID: "u1", ItemID: 3, Kind: domain.EntryUnique, Quantity: 1, Points: 120, RarityLevel: 200})
	svc := newTestService(store, 1)

	views, err := svc.GetInventory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "copper coin", views[0].ItemName)
	assert.Equal(t, domain.RarityCommon, views[0].Rarity)
	assert.Equal(t, "dragon sigil", views[1].ItemName)
	assert.Equal(t, domain.RarityLegendary, views[1].Rarity)
}

func TestSetShowcase_OwnershipAndLimit(t *testing.T) {
	store := fakestore.New()
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	owned := store.PutEntry(&domain.InventoryEntry{UserID: "u1", ItemID: 1, Kind: domain.EntryStacked, Quantity: 1, Points: 10})
	foreign := store.PutEntry(&domain.InventoryEntry{UserID: "u2", ItemID: 1, Kind: domain.EntryStacked, Quantity: 1, Points: 10})
	svc := newTestService(store, 1)

	t.Run("accepts owned entries", func(t *testing.T) {
		err := svc.SetShowcase(context.Background(), "u1", []string{owned})
		require.NoError(t, err)
		user, err := store.GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{owned}, user.ShowcaseEntries)
	})

	t.Run("rejects foreign entries", func(t *testing.T) {
		err := svc.SetShowcase(context.Background(), "u1", []string{foreign})
		assert.ErrorIs(t, err, domain.ErrEntryNotOwned)
	})

	t.Run("rejects over the limit", func(t *testing.T) {
		ids := make([]string, domain.ShowcaseLimit+1)
		for i := range ids {
			ids[i] = owned
		}
		err := svc.SetShowcase(context.Background(), "u1", ids)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAppraiseEntry(t *testing.T) {
	store := fakestore.New()
	seedCatalog(store)
	store.PutUser(&domain.User{ID: "u1", Username: "alice"})
	id := store.PutEntry(&domain.InventoryEntry{UserID: "u1", ItemID: 3, Kind: domain.EntryUnique, Quantity: 1, Points: 150, RarityLevel: 500})
	svc := newTestService(store, 1)

	points, err := svc.AppraiseEntry(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.Equal(t, 150, points, "legendary base 100 at level 500 appraises to 150")

	_, err = svc.AppraiseEntry(context.Background(), "u2", id)
	assert.ErrorIs(t, err, domain.ErrEntryNotOwned)
}
