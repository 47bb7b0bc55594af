// Package reveal builds the animated strip shown while a draw or craft
// result is revealed. Plans are presentation only: the economic effect has
// already been applied when one is built.
package reveal

import (
	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/reward"
)

const (
	PatternLength        = 10
	PrefixCopies         = 3
	LoopCopies           = 8
	TargetLoop           = 5
	MaxRebalanceAttempts = 100
	MinIdleLength        = 50
)

// View is one rendered cell of a strip.
type View struct {
	RewardID   string      `json:"rewardId"`
	Name       string      `json:"name"`
	Image      string      `json:"image"`
	Tier       reward.Tier `json:"tier"`
	AuraColors []string    `json:"auraColors,omitempty"`
}

// ItemView renders an inventory item.
func ItemView(it reward.Item) View {
	return View{RewardID: it.RewardID, Name: it.Name, Image: it.Image, Tier: it.Tier, AuraColors: it.AuraColors}
}

// DefinitionView renders a catalog definition.
func DefinitionView(d reward.Definition) View {
	v := View{RewardID: d.ID, Name: d.Name, Image: d.Image, Tier: d.Tier}
	if d.Tier == reward.TierLegendary {
		v.AuraColors = d.AuraColors
	}
	return v
}

// Plan is what the rendering layer animates: scroll Strip until
// Strip[TargetIndex] is under the marker.
type Plan struct {
	Strip       []View `json:"strip"`
	TargetIndex int    `json:"targetIndex"`
	// Balanced is false when the tier 3 / tier 4 rebalance gave up and the
	// pattern was accepted with tier 3 >= tier 4.
	Balanced bool `json:"balanced"`
}

// Winner returns the cell the strip lands on.
func (p Plan) Winner() View { return p.Strip[p.TargetIndex] }

// IdleDisplay is the passive strip shown when nothing is being revealed.
type IdleDisplay struct {
	Items  []View `json:"items"`
	Offset int    `json:"offset"`
}

// Sequencer builds reveal plans.
type Sequencer struct {
	RNG gacha.RandomSource
}

// NewSequencer creates a sequencer. A nil rng uses gacha.DefaultRNG.
func NewSequencer(rng gacha.RandomSource) *Sequencer {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Sequencer{RNG: rng}
}

type slot struct {
	view   View
	winner bool
}

// BuildReveal lays out a strip whose TargetIndex always holds winner, for any
// pool including an empty one.
func (s *Sequencer) BuildReveal(winner reward.Item, pool []reward.Definition) Plan {
	pattern, balanced := s.pattern(ItemView(winner), pool)
	gacha.Shuffle(s.RNG, pattern)

	winnerAt := 0
	for i, sl := range pattern {
		if sl.winner {
			winnerAt = i
			break
		}
	}

	strip := make([]View, 0, (PrefixCopies+LoopCopies)*len(pattern))
	for c := 0; c < PrefixCopies+LoopCopies; c++ {
		for _, sl := range pattern {
			strip = append(strip, sl.view)
		}
	}
	prefix := PrefixCopies * len(pattern)
	return Plan{
		Strip:       strip,
		TargetIndex: prefix + TargetLoop*len(pattern) + winnerAt,
		Balanced:    balanced,
	}
}

// pattern builds the unshuffled block: winner first, then filler drawn from
// the pool with no tier 1 and at most one tier 2 in the whole block.
func (s *Sequencer) pattern(winner View, pool []reward.Definition) ([]slot, bool) {
	slots := make([]slot, 0, PatternLength)
	slots = append(slots, slot{view: winner, winner: true})
	hasRare := winner.Tier == reward.TierRare

	commons := filterTier(pool, reward.TierCommon)
	for len(slots) < PatternLength {
		var cands []reward.Definition
		for _, d := range pool {
			if d.Tier == reward.TierLegendary || (d.Tier == reward.TierRare && hasRare) {
				continue
			}
			cands = append(cands, d)
		}
		if len(cands) == 0 {
			cands = commons
		}
		if len(cands) == 0 {
			cands = pool
		}
		if len(cands) == 0 {
			slots = append(slots, slot{view: winner})
			continue
		}
		d := gacha.Pick(s.RNG, cands)
		if d.Tier == reward.TierRare {
			hasRare = true
		}
		slots = append(slots, slot{view: DefinitionView(d)})
	}

	return slots, s.rebalance(slots, commons)
}

// rebalance swaps non-winner tier 3 slots for tier 4 until tier 3 is the
// minority. It is best effort: it stops when no tier 3 slot or no tier 4
// reward is left, or after MaxRebalanceAttempts, and reports the result.
func (s *Sequencer) rebalance(slots []slot, commons []reward.Definition) bool {
	for attempt := 0; attempt < MaxRebalanceAttempts; attempt++ {
		var uncommon []int
		c3, c4 := 0, 0
		for i, sl := range slots {
			switch sl.view.Tier {
			case reward.TierUncommon:
				c3++
				if !sl.winner {
					uncommon = append(uncommon, i)
				}
			case reward.TierCommon:
				c4++
			}
		}
		if c3 < c4 {
			return true
		}
		if len(uncommon) == 0 || len(commons) == 0 {
			return false
		}
		i := gacha.Pick(s.RNG, uncommon)
		slots[i] = slot{view: DefinitionView(gacha.Pick(s.RNG, commons))}
	}
	return false
}

// BuildIdle tiles the whole pool until it is at least MinIdleLength long
// and centers the window on the midpoint.
func (s *Sequencer) BuildIdle(pool []reward.Definition) IdleDisplay {
	if len(pool) == 0 {
		return IdleDisplay{}
	}
	items := make([]View, 0, MinIdleLength+len(pool))
	for len(items) < MinIdleLength {
		for _, d := range pool {
			items = append(items, DefinitionView(d))
		}
	}
	return IdleDisplay{Items: items, Offset: len(items) / 2}
}

func filterTier(pool []reward.Definition, t reward.Tier) []reward.Definition {
	var out []reward.Definition
	for _, d := range pool {
		if d.Tier == t {
			out = append(out, d)
		}
	}
	return out
}
