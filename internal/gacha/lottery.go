package gacha

import (
	"github.com/xtding233/loot-economy/internal/reward"
)

// Pool is the read side of the reward catalog the lottery draws from.
type Pool interface {
	ByTier(t reward.Tier) []reward.Definition
	All() []reward.Definition
}

// Result is one successful draw. Tier is the tier of the awarded item;
// RolledTier is the tier the roll selected before any fallback.
type Result struct {
	Item        reward.Item `json:"item"`
	Tier        reward.Tier `json:"tier"`
	RolledTier  reward.Tier `json:"rolledTier"`
	DebitedCost int64       `json:"debitedCost"`
}

// Lottery performs weighted tier rolls followed by a uniform pick inside the tier.
type Lottery struct {
	RNG   RandomSource
	Clock reward.Clock
}

// NewLottery creates a lottery. A nil rng uses DefaultRNG.
func NewLottery(rng RandomSource, clock reward.Clock) *Lottery {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Lottery{RNG: rng, Clock: clock}
}

// Draw rolls one reward. It does not touch balance or inventory: the caller
// applies DebitedCost and Item together. Failures leave nothing to undo.
func (l *Lottery) Draw(balance, cost int64, pool Pool) (Result, error) {
	if err := validateCost(cost); err != nil {
		return Result{}, err
	}
	if balance < cost {
		return Result{}, ErrInsufficientBalance
	}

	rolled := RollTier(l.RNG.Float64() * 100)
	candidates := Candidates(pool, rolled)
	if len(candidates) == 0 {
		return Result{}, ErrNoRewardsConfigured
	}

	def := Pick(l.RNG, candidates)
	item := reward.NewItem(def.Clone(), l.Clock.Now())
	return Result{
		Item:        item,
		Tier:        item.Tier,
		RolledTier:  rolled,
		DebitedCost: cost,
	}, nil
}

// Candidates resolves the pick set for a rolled tier:
//  1. definitions of exactly that tier;
//  2. else definitions of that tier or more common;
//  3. else every drawable definition.
//
// Tier 1 is never a candidate, whatever the catalog holds.
func Candidates(pool Pool, rolled reward.Tier) []reward.Definition {
	if defs := pool.ByTier(rolled); len(defs) > 0 {
		return defs
	}
	all := drawable(pool.All())
	var wider []reward.Definition
	for _, d := range all {
		if d.Tier >= rolled {
			wider = append(wider, d)
		}
	}
	if len(wider) > 0 {
		return wider
	}
	return all
}

func drawable(defs []reward.Definition) []reward.Definition {
	out := make([]reward.Definition, 0, len(defs))
	for _, d := range defs {
		if d.Tier != reward.TierLegendary {
			out = append(out, d)
		}
	}
	return out
}
