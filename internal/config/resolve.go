// resolve.go
package config

import (
	"time"

	"github.com/xtding233/loot-economy/internal/catalog"
	"github.com/xtding233/loot-economy/internal/reward"
)

// Normalized settings used by the engine and server.
type Config struct {
	DrawCost        int64
	CraftCost       int64
	RevealDuration  time.Duration
	SeedPath        string
	Quotas          map[reward.Tier]int
	StorePath       string
	HTTPAddr        string
	GRPCAddr        string
	StartingBalance int64
	Version         string // effective config version for tracing
}

const (
	defaultDrawCost       = 1
	defaultRevealDuration = 6 * time.Second
	defaultStorePath      = "loot.db"
	defaultHTTPAddr       = ":8080"
	defaultGRPCAddr       = ":9090"
)

// Resolve fills defaults into a merged RawConfig.
func Resolve(raw RawConfig) Config {
	cfg := Config{
		DrawCost:       defaultDrawCost,
		RevealDuration: defaultRevealDuration,
		SeedPath:       raw.Catalog.SeedPath,
		StorePath:      defaultStorePath,
		HTTPAddr:       defaultHTTPAddr,
		GRPCAddr:       defaultGRPCAddr,
		Version:        raw.Version,
	}
	if raw.Draw.Cost != nil {
		cfg.DrawCost = *raw.Draw.Cost
	}
	if raw.Craft.Cost != nil {
		cfg.CraftCost = *raw.Craft.Cost
	}
	if raw.Reveal.DurationMS != nil {
		cfg.RevealDuration = time.Duration(*raw.Reveal.DurationMS) * time.Millisecond
	}
	if raw.Store.Path != "" {
		cfg.StorePath = raw.Store.Path
	}
	if raw.Server.HTTPAddr != "" {
		cfg.HTTPAddr = raw.Server.HTTPAddr
	}
	if raw.Server.GRPCAddr != "" {
		cfg.GRPCAddr = raw.Server.GRPCAddr
	}
	if raw.Wallet.StartingBalance != nil {
		cfg.StartingBalance = *raw.Wallet.StartingBalance
	}

	cfg.Quotas = make(map[reward.Tier]int, len(catalog.DefaultQuotas))
	for t, n := range catalog.DefaultQuotas {
		cfg.Quotas[t] = n
	}
	for t, n := range raw.Catalog.Quotas {
		cfg.Quotas[reward.Tier(t)] = n
	}
	return cfg
}

// Load reads baseDir, applies environment overrides, validates and resolves.
func Load(baseDir string) (Config, error) {
	raw, err := NewLoader(baseDir).LoadMerged()
	if err != nil {
		return Config{}, err
	}
	e, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	raw = e.apply(raw)
	if err := ValidateRaw(raw); err != nil {
		return Config{}, err
	}
	return Resolve(raw), nil
}
