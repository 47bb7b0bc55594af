package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env carries environment overrides; they win over both YAML files.
type Env struct {
	StorePath string `env:"LOOT_STORE_PATH"`
	HTTPAddr  string `env:"LOOT_HTTP_ADDR"`
	GRPCAddr  string `env:"LOOT_GRPC_ADDR"`
	SeedPath  string `env:"LOOT_SEED_PATH"`
	DrawCost  *int64 `env:"LOOT_DRAW_COST"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// apply folds the overrides into raw as one more merge layer.
func (e Env) apply(raw RawConfig) RawConfig {
	return mergeRaw(raw, RawConfig{
		Draw:    CostConfig{Cost: e.DrawCost},
		Catalog: CatalogConfig{SeedPath: e.SeedPath},
		Store:   StoreConfig{Path: e.StorePath},
		Server:  ServerConfig{HTTPAddr: e.HTTPAddr, GRPCAddr: e.GRPCAddr},
	})
}
