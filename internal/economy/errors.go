package economy

import (
	"errors"

	"github.com/xtding233/loot-economy/internal/catalog"
	"github.com/xtding233/loot-economy/internal/craft"
	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/reveal"
	"github.com/xtding233/loot-economy/internal/store"
)

// Kind is the machine-readable class of an engine failure.
type Kind string

const (
	KindInsufficientBalance     Kind = "insufficient_balance"
	KindNoRewardsConfigured     Kind = "no_rewards_configured"
	KindNoPoolForTargetTier     Kind = "no_pool_for_target_tier"
	KindInsufficientSourceItems Kind = "insufficient_source_items"
	KindInvalidTier             Kind = "invalid_tier"
	KindInvalidCost             Kind = "invalid_cost"
	KindInvalidAmount           Kind = "invalid_amount"
	KindInvalidCatalog          Kind = "invalid_catalog"
	KindRevealInProgress        Kind = "reveal_in_progress"
	KindInternal                Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{gacha.ErrInsufficientBalance, KindInsufficientBalance},
	{gacha.ErrNoRewardsConfigured, KindNoRewardsConfigured},
	{gacha.ErrInvalidCost, KindInvalidCost},
	{craft.ErrNoPoolForTargetTier, KindNoPoolForTargetTier},
	{craft.ErrInsufficientSourceItems, KindInsufficientSourceItems},
	{craft.ErrInvalidTargetTier, KindInvalidTier},
	{store.ErrInvalidAmount, KindInvalidAmount},
	{catalog.ErrInvalidCatalog, KindInvalidCatalog},
	{catalog.ErrNoMaster, KindNoRewardsConfigured},
	{reveal.ErrRevealInProgress, KindRevealInProgress},
}

// KindOf classifies err. Anything unrecognized, including storage failures,
// is KindInternal. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Expected reports whether err is a user-facing condition rather than a fault.
func Expected(err error) bool {
	k := KindOf(err)
	return k != "" && k != KindInternal
}
