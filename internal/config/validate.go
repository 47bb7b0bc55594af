package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Draw.Cost != nil && *cfg.Draw.Cost < 0 {
		errs = append(errs, "draw.cost must be >= 0")
	}
	if cfg.Craft.Cost != nil && *cfg.Craft.Cost < 0 {
		errs = append(errs, "craft.cost must be >= 0")
	}
	if cfg.Reveal.DurationMS != nil && *cfg.Reveal.DurationMS <= 0 {
		errs = append(errs, "reveal.duration_ms must be > 0")
	}
	if cfg.Wallet.StartingBalance != nil && *cfg.Wallet.StartingBalance < 0 {
		errs = append(errs, "wallet.starting_balance must be >= 0")
	}

	tiers := make([]int, 0, len(cfg.Catalog.Quotas))
	for t := range cfg.Catalog.Quotas {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)
	for _, t := range tiers {
		if t < 1 || t > 4 {
			errs = append(errs, fmt.Sprintf("catalog.quotas[%d]: tier must be 1..4", t))
			continue
		}
		if cfg.Catalog.Quotas[t] < 0 {
			errs = append(errs, fmt.Sprintf("catalog.quotas[%d] must be >= 0", t))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
