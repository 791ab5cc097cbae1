package drawbatch

import (
	"math"

	"github.com/lootvault/lootvault/internal/domain"
)

// Base point values per rarity tier.
var rarityBasePoints = map[domain.Rarity]int{
	domain.RarityCommon:    10,
	domain.RarityRare:      30,
	domain.RarityEpic:      60,
	domain.RarityLegendary: 100,
	domain.RarityMythic:    150,
}

// BasePoints returns the flat point value for a rarity tier.
func BasePoints(rarity domain.Rarity) int {
	return rarityBasePoints[rarity]
}

// DrawPoints computes the point value recorded when an item is drawn:
// the rarity's base points, plus floor(rarityLevel/10) for unique
// tiers (Legendary/Mythic) only. Stackable tiers carry no rarity
// level, so their bonus is always zero.
func DrawPoints(rarity domain.Rarity, rarityLevel int) int {
	points := rarityBasePoints[rarity]
	if rarity.IsUnique() {
		points += rarityLevel / 10
	}
	return points
}

// AppraisalPoints computes a continuous valuation used by the catalog
// appraisal endpoint: base points scaled by the rarity-level luck
// factor. This is deliberately a separate policy from DrawPoints;
// the two existed side by side historically and are kept distinct.
func AppraisalPoints(rarity domain.Rarity, rarityLevel int) int {
	base := float64(rarityBasePoints[rarity])
	factor := 1.0 + float64(rarityLevel)/float64(domain.RarityLevelMax)
	return int(math.Round(base * factor))
}
