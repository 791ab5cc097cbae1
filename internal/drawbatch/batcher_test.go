package drawbatch

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
)

func commonItem(id int) domain.Item {
	return domain.Item{ID: id, Name: "scrap", Rarity: domain.RarityCommon}
}

func legendaryItem(id int) domain.Item {
	return domain.Item{ID: id, Name: "crown", Rarity: domain.RarityLegendary}
}

func TestBatch_GroupsStackablesByItem(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	draws := []domain.Item{
		commonItem(1), commonItem(1), commonItem(1),
		commonItem(2),
		{ID: 3, Rarity: domain.RarityRare},
		{ID: 3, Rarity: domain.RarityRare},
	}

	batch := Batch(rng, draws)

	assert.Equal(t, map[int]int{1: 3, 2: 1, 3: 2}, batch.StackGains)
	assert.Empty(t, batch.UniqueGains)
	assert.Equal(t, 6, batch.StackableCount())
}

func TestBatch_UniqueDrawsNeverGrouped(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	draws := []domain.Item{
		legendaryItem(7), legendaryItem(7), legendaryItem(7),
		{ID: 8, Rarity: domain.RarityMythic},
	}

	batch := Batch(rng, draws)

	assert.Empty(t, batch.StackGains)
	require.Len(t, batch.UniqueGains, 4)

	// Same item id drawn three times stays three separate instances.
	ids := make(map[int]int)
	for _, u := range batch.UniqueGains {
		ids[u.ItemID]++
		assert.GreaterOrEqual(t, u.RarityLevel, domain.RarityLevelMin)
		assert.LessOrEqual(t, u.RarityLevel, domain.RarityLevelMax)
	}
	assert.Equal(t, 3, ids[7])
	assert.Equal(t, 1, ids[8])
}

func TestBatch_UniquePointsIncludeLevelBonus(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	batch := Batch(rng, []domain.Item{legendaryItem(7)})

	require.Len(t, batch.UniqueGains, 1)
	u := batch.UniqueGains[0]
	assert.Equal(t, 100+u.RarityLevel/10, u.Points)
}

func TestBatch_StackPointsUseBaseTable(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	draws := []domain.Item{
		commonItem(1),
		{ID: 2, Rarity: domain.RarityEpic},
	}

	batch := Batch(rng, draws)

	assert.Equal(t, 10, batch.StackPoints[1])
	assert.Equal(t, 60, batch.StackPoints[2])
}

func TestBatch_MixedPool(t *testing.T) {
	// pool = [{Common, w=90},{Legendary, w=10}] style scenario: verify
	// the stackable/unique split, not the sampling itself.
	rng := rand.New(rand.NewSource(5))
	draws := []domain.Item{
		commonItem(1), commonItem(1), commonItem(1), commonItem(1), commonItem(1),
		commonItem(1), commonItem(1), commonItem(1), commonItem(1),
		legendaryItem(2),
	}

	batch := Batch(rng, draws)

	assert.Equal(t, 9, batch.StackGains[1])
	require.Len(t, batch.UniqueGains, 1)
	assert.Equal(t, 2, batch.UniqueGains[0].ItemID)
}

func TestDrawPoints(t *testing.T) {
	tests := []struct {
		name   string
		rarity domain.Rarity
		level  int
		want   int
	}{
		{"common has no bonus", domain.RarityCommon, 0, 10},
		{"rare has no bonus", domain.RarityRare, 999, 30},
		{"epic has no bonus", domain.RarityEpic, 500, 60},
		{"legendary bonus floors level/10", domain.RarityLegendary, 555, 155},
		{"mythic bonus floors level/10", domain.RarityMythic, 1000, 250},
		{"legendary minimum level", domain.RarityLegendary, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DrawPoints(tt.rarity, tt.level))
		})
	}
}

func TestAppraisalPoints_ContinuousScale(t *testing.T) {
	// Distinct policy from DrawPoints: multiplier, not additive bonus.
	assert.Equal(t, 20, AppraisalPoints(domain.RarityCommon, 1000))
	assert.Equal(t, 150, AppraisalPoints(domain.RarityLegendary, 500))
	assert.Equal(t, 10, AppraisalPoints(domain.RarityCommon, 0))
}
