package reward

import "fmt"

// Tier is a rarity rank: 1 is the rarest, 4 the most common.
type Tier int

const (
	TierLegendary Tier = 1
	TierRare      Tier = 2
	TierUncommon  Tier = 3
	TierCommon    Tier = 4
)

// Tiers lists every tier from rarest to most common.
var Tiers = []Tier{TierLegendary, TierRare, TierUncommon, TierCommon}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	return t >= TierLegendary && t <= TierCommon
}

func (t Tier) String() string {
	switch t {
	case TierLegendary:
		return "legendary"
	case TierRare:
		return "rare"
	case TierUncommon:
		return "uncommon"
	case TierCommon:
		return "common"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// tradeUpCost maps a craft target tier to how many source-tier items it consumes.
// The source tier is always target+1.
var tradeUpCost = map[Tier]int{
	TierUncommon:  6,  // 6 x tier 4 -> 1 x tier 3
	TierRare:      10, // 10 x tier 3 -> 1 x tier 2
	TierLegendary: 12, // 12 x tier 2 -> 1 x tier 1
}

// TradeUpCost returns the required source count for crafting into target.
// ok is false when target cannot be crafted (tier 4 or unknown).
func TradeUpCost(target Tier) (n int, ok bool) {
	n, ok = tradeUpCost[target]
	return n, ok
}

// SourceTier returns the tier consumed when crafting into target.
func SourceTier(target Tier) Tier { return target + 1 }
