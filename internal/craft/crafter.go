// Package craft implements trade-ups: a fixed count of one tier is consumed
// to produce a single item of the next rarer tier.
package craft

import (
	"errors"

	"github.com/xtding233/loot-economy/internal/catalog"
	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/inventory"
	"github.com/xtding233/loot-economy/internal/reward"
)

var (
	ErrInvalidTargetTier       = errors.New("target tier must be 1, 2 or 3")
	ErrInsufficientSourceItems = errors.New("not enough source items")
	ErrNoPoolForTargetTier     = errors.New("no rewards available for target tier")
)

// Source is the inventory view a craft plans against.
type Source interface {
	CountByTier(t reward.Tier) int
	SelectFirstN(t reward.Tier, n int) []reward.Item
}

// Outcome describes one trade-up.
type Outcome struct {
	TargetTier reward.Tier `json:"targetTier"`
	SourceTier reward.Tier `json:"sourceTier"`
	Consumed   []string    `json:"consumed"`
	Produced   reward.Item `json:"produced"`
}

// Crafter plans and applies trade-ups.
type Crafter struct {
	RNG    gacha.RandomSource
	Clock  reward.Clock
	System func(reward.Tier) []reward.Definition
}

// NewCrafter creates a crafter backed by the built-in system pool.
func NewCrafter(rng gacha.RandomSource, clock reward.Clock) *Crafter {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Crafter{RNG: rng, Clock: clock, System: catalog.SystemPool}
}

// Plan validates a trade-up into target and picks the consumed units and the
// produced item without mutating anything.
func (c *Crafter) Plan(target reward.Tier, src Source, pool gacha.Pool) (Outcome, error) {
	required, ok := reward.TradeUpCost(target)
	if !ok {
		return Outcome{}, ErrInvalidTargetTier
	}
	source := reward.SourceTier(target)
	if src.CountByTier(source) < required {
		return Outcome{}, ErrInsufficientSourceItems
	}

	candidates := c.ProductionPool(target, pool)
	if len(candidates) == 0 {
		return Outcome{}, ErrNoPoolForTargetTier
	}

	consumed := src.SelectFirstN(source, required)
	ids := make([]string, len(consumed))
	for i, it := range consumed {
		ids[i] = it.ID
	}

	def := gacha.Pick(c.RNG, candidates)
	return Outcome{
		TargetTier: target,
		SourceTier: source,
		Consumed:   ids,
		Produced:   reward.NewItem(def, c.Clock.Now()),
	}, nil
}

// ProductionPool is the union of the system pool and catalog definitions of
// the target tier. Every member is one equally weighted candidate.
func (c *Crafter) ProductionPool(target reward.Tier, pool gacha.Pool) []reward.Definition {
	var out []reward.Definition
	if c.System != nil {
		out = append(out, c.System(target)...)
	}
	return append(out, pool.ByTier(target)...)
}

// Craft plans a trade-up and applies it to ledger. On error the ledger is
// unchanged.
func (c *Crafter) Craft(target reward.Tier, ledger *inventory.Ledger, pool gacha.Pool) (Outcome, error) {
	out, err := c.Plan(target, ledger, pool)
	if err != nil {
		return Outcome{}, err
	}
	ledger.Apply([]reward.Item{out.Produced}, out.Consumed)
	return out, nil
}
