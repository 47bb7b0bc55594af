package gacha

import (
	"errors"

	"github.com/xtding233/loot-economy/internal/reward"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoRewardsConfigured = errors.New("no rewards configured")
	ErrInvalidCost         = errors.New("invalid cost; must be >= 0")
)

// Tier roll thresholds on a [0,100) roll. Tier 1 has no band: it is
// reachable only through crafting.
const (
	rareBelow     = 13 // roll < 13        -> tier 2 (13%)
	uncommonBelow = 50 // 13 <= roll < 50  -> tier 3 (37%)
	//                    roll >= 50       -> tier 4 (50%)
)

// RollTier maps roll in [0,100) to a tier. It never returns tier 1.
func RollTier(roll float64) reward.Tier {
	switch {
	case roll < rareBelow:
		return reward.TierRare
	case roll < uncommonBelow:
		return reward.TierUncommon
	default:
		return reward.TierCommon
	}
}

// BaseProbability is the chance a single draw lands on tier t.
func BaseProbability(t reward.Tier) float64 {
	switch t {
	case reward.TierRare:
		return rareBelow / 100.0
	case reward.TierUncommon:
		return (uncommonBelow - rareBelow) / 100.0
	case reward.TierCommon:
		return (100 - uncommonBelow) / 100.0
	}
	return 0
}
