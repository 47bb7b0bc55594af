package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/loot-economy/internal/reward"
)

// ErrInvalidCatalog wraps every definition-level validation failure.
var ErrInvalidCatalog = errors.New("catalog validation failed")

// seedFile is the on-disk master reward list.
type seedFile struct {
	Rewards []reward.Definition `yaml:"rewards"`
}

// LoadSeed reads and validates the master reward list at path.
func LoadSeed(path string) ([]reward.Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(b)
}

// ParseSeed decodes a YAML master list.
func ParseSeed(b []byte) ([]reward.Definition, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := ValidateDefinitions(f.Rewards); err != nil {
		return nil, err
	}
	return f.Rewards, nil
}

// ValidateDefinitions checks ids are present and unique and tiers are known.
func ValidateDefinitions(defs []reward.Definition) error {
	var errs []string
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		switch {
		case d.ID == "":
			errs = append(errs, fmt.Sprintf("rewards[%d].id is required", i))
		case seen[d.ID]:
			errs = append(errs, fmt.Sprintf("rewards[%d].id %q is duplicated", i, d.ID))
		}
		seen[d.ID] = true
		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("rewards[%d].name is required", i))
		}
		if !d.Tier.Valid() {
			errs = append(errs, fmt.Sprintf("rewards[%d].tier must be 1..4", i))
		}
		if len(d.AuraColors) > 0 && d.Tier != reward.TierLegendary {
			errs = append(errs, fmt.Sprintf("rewards[%d].aura_colors only apply to tier 1", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return nil
}
