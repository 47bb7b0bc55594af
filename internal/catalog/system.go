package catalog

import "github.com/xtding233/loot-economy/internal/reward"

// systemPool is the fixed set of craft results shipped with the engine,
// keyed by target tier. It is merged with catalog definitions of the same
// tier when producing a trade-up item.
var systemPool = map[reward.Tier][]reward.Definition{
	reward.TierUncommon: {
		{ID: "sys-t3-lantern", Name: "Copper Lantern", Image: "system/t3/lantern.png", Tier: reward.TierUncommon},
		{ID: "sys-t3-compass", Name: "Brass Compass", Image: "system/t3/compass.png", Tier: reward.TierUncommon},
		{ID: "sys-t3-hourglass", Name: "Sand Hourglass", Image: "system/t3/hourglass.png", Tier: reward.TierUncommon},
		{ID: "sys-t3-quill", Name: "Raven Quill", Image: "system/t3/quill.png", Tier: reward.TierUncommon},
	},
	reward.TierRare: {
		{ID: "sys-t2-astrolabe", Name: "Silver Astrolabe", Image: "system/t2/astrolabe.png", Tier: reward.TierRare},
		{ID: "sys-t2-orb", Name: "Storm Orb", Image: "system/t2/orb.png", Tier: reward.TierRare},
		{ID: "sys-t2-mask", Name: "Jade Mask", Image: "system/t2/mask.png", Tier: reward.TierRare},
	},
	reward.TierLegendary: {
		{
			ID: "sys-t1-phoenix", Name: "Phoenix Feather", Image: "system/t1/phoenix.png", Tier: reward.TierLegendary,
			AuraColors: []string{"#ff9a00", "#ff3d00", "#ffd54f"},
		},
		{
			ID: "sys-t1-crown", Name: "Starlit Crown", Image: "system/t1/crown.png", Tier: reward.TierLegendary,
			AuraColors: []string{"#7c4dff", "#448aff", "#e040fb"},
		},
	},
}

// SystemPool returns the built-in craft results for target tier t.
func SystemPool(t reward.Tier) []reward.Definition {
	return cloneAll(systemPool[t])
}
