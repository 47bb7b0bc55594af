package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/loot-economy/internal/reward"
)

func defs(counts map[reward.Tier]int) []reward.Definition {
	var out []reward.Definition
	for _, t := range reward.Tiers {
		for i := 0; i < counts[t]; i++ {
			out = append(out, reward.Definition{ID: fmt.Sprintf("t%d-%d", t, i), Name: fmt.Sprintf("Reward %d-%d", t, i), Tier: t})
		}
	}
	return out
}

func TestCatalogByTier(t *testing.T) {
	c := New(defs(map[reward.Tier]int{2: 2, 3: 3, 4: 5, 1: 1}))
	assert.Len(t, c.ByTier(reward.TierRare), 2)
	assert.Len(t, c.ByTier(reward.TierUncommon), 3)
	assert.Len(t, c.ByTier(reward.TierCommon), 5)
	assert.Len(t, c.ByTier(reward.TierLegendary), 1)
	assert.Len(t, c.All(), 11)
}

func TestCatalogEmptyIsValid(t *testing.T) {
	c := New(nil)
	assert.Empty(t, c.All())
	assert.Empty(t, c.ByTier(reward.TierCommon))
}

func TestReplaceAllSwapsWholePool(t *testing.T) {
	c := New(defs(map[reward.Tier]int{4: 3}))
	before := c.Snapshot()

	c.ReplaceAll(defs(map[reward.Tier]int{3: 1}))

	// an old snapshot keeps its contents
	assert.Len(t, before.ByTier(reward.TierCommon), 3)
	assert.Empty(t, c.ByTier(reward.TierCommon))
	assert.Len(t, c.ByTier(reward.TierUncommon), 1)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	c := New([]reward.Definition{{ID: "a", Name: "A", Tier: reward.TierLegendary, AuraColors: []string{"#111"}}})
	got := c.All()
	got[0].Name = "mutated"
	got[0].AuraColors[0] = "#999"

	again := c.All()
	require.Len(t, again, 1)
	assert.Equal(t, "A", again[0].Name)
	assert.Equal(t, "#111", again[0].AuraColors[0])
}

func TestSystemPool(t *testing.T) {
	for _, target := range []reward.Tier{reward.TierLegendary, reward.TierRare, reward.TierUncommon} {
		pool := SystemPool(target)
		require.NotEmpty(t, pool, target.String())
		for _, d := range pool {
			assert.Equal(t, target, d.Tier)
		}
	}
	assert.Empty(t, SystemPool(reward.TierCommon))
	for _, d := range SystemPool(reward.TierLegendary) {
		assert.NotEmpty(t, d.AuraColors)
	}
}
