// Package drawbatch converts raw sampled draws into grouped inventory
// mutations: per-item stack counts for stackable rarities and
// individual unique draws with rolled rarity levels for
// Legendary/Mythic.
package drawbatch

import (
	"math/rand"

	"github.com/lootvault/lootvault/internal/domain"
)

// Batch groups a multiset of drawn items. Stackable draws collapse
// into per-item counts; each unique-rarity draw independently rolls a
// fresh rarity level in [1,1000] and computes its own point value.
// Pure transform - randomness only for rarity levels, injected.
func Batch(rng *rand.Rand, draws []domain.Item) domain.DrawBatch {
	batch := domain.DrawBatch{
		StackGains:  make(map[int]int),
		StackPoints: make(map[int]int),
	}

	for _, item := range draws {
		if item.Rarity.IsUnique() {
			level := rollRarityLevel(rng)
			batch.UniqueGains = append(batch.UniqueGains, domain.UniqueDraw{
				ItemID:      item.ID,
				RarityLevel: level,
				Points:      DrawPoints(item.Rarity, level),
			})
			continue
		}

		batch.StackGains[item.ID]++
		if points := DrawPoints(item.Rarity, 0); points > batch.StackPoints[item.ID] {
			batch.StackPoints[item.ID] = points
		}
	}

	return batch
}

// rollRarityLevel rolls the luck tiebreaker for a unique draw.
func rollRarityLevel(rng *rand.Rand) int {
	return rng.Intn(domain.RarityLevelMax) + domain.RarityLevelMin
}
