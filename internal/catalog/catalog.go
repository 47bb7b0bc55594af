// Package catalog holds the tiered reward pool the lottery and crafter draw
// from, and the daily machinery that recomposes it.
package catalog

import (
	"sync/atomic"

	"github.com/xtding233/loot-economy/internal/reward"
)

// Snapshot is an immutable view of the pool at one point in time.
type Snapshot struct {
	all    []reward.Definition
	byTier map[reward.Tier][]reward.Definition
}

func newSnapshot(pool []reward.Definition) *Snapshot {
	s := &Snapshot{
		all:    make([]reward.Definition, 0, len(pool)),
		byTier: make(map[reward.Tier][]reward.Definition, len(reward.Tiers)),
	}
	for _, d := range pool {
		d = d.Clone()
		s.all = append(s.all, d)
		s.byTier[d.Tier] = append(s.byTier[d.Tier], d)
	}
	return s
}

// ByTier returns the definitions of tier t. The result may be empty.
func (s *Snapshot) ByTier(t reward.Tier) []reward.Definition {
	return cloneAll(s.byTier[t])
}

// All returns every definition in catalog order.
func (s *Snapshot) All() []reward.Definition {
	return cloneAll(s.all)
}

// Len is the number of definitions in the snapshot.
func (s *Snapshot) Len() int { return len(s.all) }

// Catalog is the live reward pool. Readers take a Snapshot so a concurrent
// ReplaceAll is never observed half-applied.
type Catalog struct {
	cur atomic.Pointer[Snapshot]
}

// New creates a catalog holding pool.
func New(pool []reward.Definition) *Catalog {
	c := &Catalog{}
	c.ReplaceAll(pool)
	return c
}

// Snapshot returns the current pool.
func (c *Catalog) Snapshot() *Snapshot { return c.cur.Load() }

// ByTier proxies to the current snapshot.
func (c *Catalog) ByTier(t reward.Tier) []reward.Definition { return c.Snapshot().ByTier(t) }

// All proxies to the current snapshot.
func (c *Catalog) All() []reward.Definition { return c.Snapshot().All() }

// ReplaceAll swaps the whole pool in one step.
func (c *Catalog) ReplaceAll(pool []reward.Definition) {
	c.cur.Store(newSnapshot(pool))
}

func cloneAll(defs []reward.Definition) []reward.Definition {
	out := make([]reward.Definition, len(defs))
	for i, d := range defs {
		out[i] = d.Clone()
	}
	return out
}
