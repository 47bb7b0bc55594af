package catalog

import (
	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/reward"
)

// DefaultQuotas is how many definitions of each tier make up a daily pool.
var DefaultQuotas = map[reward.Tier]int{
	reward.TierLegendary: 1,
	reward.TierRare:      2,
	reward.TierUncommon:  3,
	reward.TierCommon:    5,
}

// Composer builds a daily pool by sampling each tier of the master list
// without replacement.
type Composer struct {
	RNG    gacha.RandomSource
	Quotas map[reward.Tier]int
}

// NewComposer creates a composer. Nil quotas use DefaultQuotas.
func NewComposer(rng gacha.RandomSource, quotas map[reward.Tier]int) *Composer {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	if quotas == nil {
		quotas = DefaultQuotas
	}
	return &Composer{RNG: rng, Quotas: quotas}
}

// Compose returns the pool for one day. A tier with fewer masters than its
// quota contributes all of them; a missing quota contributes none.
func (c *Composer) Compose(master []reward.Definition) []reward.Definition {
	byTier := make(map[reward.Tier][]reward.Definition)
	for _, d := range master {
		byTier[d.Tier] = append(byTier[d.Tier], d.Clone())
	}

	var pool []reward.Definition
	for _, t := range reward.Tiers {
		defs := byTier[t]
		n := c.Quotas[t]
		if n > len(defs) {
			n = len(defs)
		}
		// partial Fisher-Yates: the first n slots become the sample
		for i := 0; i < n; i++ {
			j := i + c.RNG.IntN(len(defs)-i)
			defs[i], defs[j] = defs[j], defs[i]
		}
		pool = append(pool, defs[:n]...)
	}
	return pool
}
