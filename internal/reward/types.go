// Package reward holds the record shapes shared by the catalog, lottery,
// crafter and ledger.
package reward

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Definition is one reward in the catalog.
type Definition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Image       string   `json:"image" yaml:"image"`
	Tier        Tier     `json:"tier" yaml:"tier"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	AuraColors  []string `json:"auraColors,omitempty" yaml:"aura_colors,omitempty"` // tier 1 only
}

// Clone returns a deep copy so callers never share the color slice.
func (d Definition) Clone() Definition {
	d.AuraColors = slices.Clone(d.AuraColors)
	return d
}

// Item is one owned unit in the inventory. Display fields are denormalized
// from the Definition it was materialized from.
type Item struct {
	ID         string    `json:"id"`
	RewardID   string    `json:"rewardId"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Tier       Tier      `json:"tier"`
	AcquiredAt time.Time `json:"acquiredAt"`
	AuraColors []string  `json:"auraColors,omitempty"`
}

// NewItem materializes a fresh inventory item from d, stamped with now.
// Aura colors are carried only for tier 1.
func NewItem(d Definition, now time.Time) Item {
	it := Item{
		ID:         uuid.NewString(),
		RewardID:   d.ID,
		Name:       d.Name,
		Image:      d.Image,
		Tier:       d.Tier,
		AcquiredAt: now,
	}
	if d.Tier == TierLegendary {
		it.AuraColors = slices.Clone(d.AuraColors)
	}
	return it
}

// Clock returns the current time. Components take one so tests can pin it.
type Clock func() time.Time

// Now returns c(), or time.Now when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
