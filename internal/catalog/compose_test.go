package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/reward"
)

func TestComposeRespectsQuotas(t *testing.T) {
	master := defs(map[reward.Tier]int{1: 3, 2: 5, 3: 6, 4: 10})
	c := NewComposer(gacha.NewSeededRNG(11), nil)

	pool := c.Compose(master)
	counts := map[reward.Tier]int{}
	seen := map[string]bool{}
	for _, d := range pool {
		counts[d.Tier]++
		assert.False(t, seen[d.ID], "sampled %s twice", d.ID)
		seen[d.ID] = true
	}
	assert.Equal(t, DefaultQuotas, counts)
}

func TestComposeShortTierTakesAll(t *testing.T) {
	master := defs(map[reward.Tier]int{4: 2})
	c := NewComposer(gacha.NewSeededRNG(1), map[reward.Tier]int{reward.TierCommon: 5})
	assert.Len(t, c.Compose(master), 2)
}

func TestComposeDoesNotMutateMaster(t *testing.T) {
	master := defs(map[reward.Tier]int{4: 6})
	ids := make([]string, len(master))
	for i, d := range master {
		ids[i] = d.ID
	}
	NewComposer(gacha.NewSeededRNG(2), nil).Compose(master)
	for i, d := range master {
		assert.Equal(t, ids[i], d.ID)
	}
}
