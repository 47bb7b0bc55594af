package reveal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/reward"
)

func pool(counts map[reward.Tier]int) []reward.Definition {
	var out []reward.Definition
	for _, t := range reward.Tiers {
		for i := 0; i < counts[t]; i++ {
			d := reward.Definition{ID: fmt.Sprintf("t%d-%d", t, i), Name: fmt.Sprintf("T%d %d", t, i), Image: "img", Tier: t}
			if t == reward.TierLegendary {
				d.AuraColors = []string{"#fff"}
			}
			out = append(out, d)
		}
	}
	return out
}

func winnerOf(d reward.Definition) reward.Item {
	return reward.NewItem(d, time.Unix(0, 0))
}

var compositions = []map[reward.Tier]int{
	{1: 1, 2: 2, 3: 3, 4: 5},
	{2: 3, 3: 3}, // no tier 4
	{3: 4, 4: 6}, // no tier 2
	{1: 4},       // only legendaries
	{2: 1},       // single rare
	{3: 9},       // tier 3 only, rebalance impossible
	{4: 1},       // single common
	{},           // empty pool
}

func TestBuildRevealAlwaysLandsOnWinner(t *testing.T) {
	for ci, comp := range compositions {
		p := pool(comp)
		winners := append([]reward.Definition{}, p...)
		winners = append(winners, reward.Definition{ID: "crafted", Name: "Crafted", Tier: reward.TierLegendary, AuraColors: []string{"#abc"}})
		for seed := uint64(0); seed < 30; seed++ {
			s := NewSequencer(gacha.NewSeededRNG(seed))
			for _, w := range winners {
				it := winnerOf(w)
				plan := s.BuildReveal(it, p)
				require.Len(t, plan.Strip, (PrefixCopies+LoopCopies)*PatternLength, "composition %d", ci)
				require.Equal(t, ItemView(it), plan.Winner(), "composition %d seed %d", ci, seed)
				off := plan.TargetIndex - PrefixCopies*PatternLength - TargetLoop*PatternLength
				require.True(t, off >= 0 && off < PatternLength, "target %d outside the sixth loop copy", plan.TargetIndex)
			}
		}
	}
}

func TestStripRepeatsPattern(t *testing.T) {
	s := NewSequencer(gacha.NewSeededRNG(3))
	p := pool(map[reward.Tier]int{1: 1, 2: 2, 3: 3, 4: 5})
	plan := s.BuildReveal(winnerOf(p[0]), p)
	for i, v := range plan.Strip {
		assert.Equal(t, plan.Strip[i%PatternLength], v)
	}
}

func TestPatternComposition(t *testing.T) {
	p := pool(map[reward.Tier]int{1: 2, 2: 4, 3: 3, 4: 5})
	for seed := uint64(0); seed < 200; seed++ {
		s := NewSequencer(gacha.NewSeededRNG(seed))
		w := winnerOf(p[9]) // first tier 4
		plan := s.BuildReveal(w, p)
		pattern := plan.Strip[:PatternLength]

		rare, legendary := 0, 0
		for _, v := range pattern {
			switch v.Tier {
			case reward.TierRare:
				rare++
			case reward.TierLegendary:
				legendary++
			}
		}
		assert.LessOrEqual(t, rare, 1, "seed %d", seed)
		assert.Zero(t, legendary, "seed %d", seed)
	}
}

func TestPatternRareWinnerBlocksOtherRares(t *testing.T) {
	p := pool(map[reward.Tier]int{2: 5, 3: 2, 4: 4})
	var rareWinner reward.Definition
	for _, d := range p {
		if d.Tier == reward.TierRare {
			rareWinner = d
			break
		}
	}
	for seed := uint64(0); seed < 100; seed++ {
		plan := NewSequencer(gacha.NewSeededRNG(seed)).BuildReveal(winnerOf(rareWinner), p)
		rare := 0
		for _, v := range plan.Strip[:PatternLength] {
			if v.Tier == reward.TierRare {
				rare++
			}
		}
		assert.Equal(t, 1, rare, "seed %d", seed)
	}
}

func TestRebalanceFavorsCommons(t *testing.T) {
	p := pool(map[reward.Tier]int{3: 5, 4: 5})
	for seed := uint64(0); seed < 100; seed++ {
		plan := NewSequencer(gacha.NewSeededRNG(seed)).BuildReveal(winnerOf(p[0]), p)
		c3, c4 := 0, 0
		for _, v := range plan.Strip[:PatternLength] {
			switch v.Tier {
			case reward.TierUncommon:
				c3++
			case reward.TierCommon:
				c4++
			}
		}
		assert.True(t, plan.Balanced)
		assert.Less(t, c3, c4, "seed %d", seed)
	}
}

func TestRebalanceGivesUpWithoutCommons(t *testing.T) {
	p := pool(map[reward.Tier]int{3: 6})
	plan := NewSequencer(gacha.NewSeededRNG(1)).BuildReveal(winnerOf(p[0]), p)
	assert.False(t, plan.Balanced)
	assert.Equal(t, ItemView(winnerOf(p[0])).RewardID, plan.Winner().RewardID)
}

func TestBuildIdle(t *testing.T) {
	s := NewSequencer(gacha.NewSeededRNG(1))

	idle := s.BuildIdle(pool(map[reward.Tier]int{2: 2, 3: 3, 4: 2}))
	assert.GreaterOrEqual(t, len(idle.Items), MinIdleLength)
	assert.Zero(t, len(idle.Items)%7, "tiles whole copies of the pool")
	assert.Equal(t, len(idle.Items)/2, idle.Offset)

	big := s.BuildIdle(pool(map[reward.Tier]int{4: 60}))
	assert.Len(t, big.Items, 60)

	assert.Empty(t, s.BuildIdle(nil).Items)
}
