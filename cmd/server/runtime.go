package main

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/catalog"
	"github.com/xtding233/loot-economy/internal/config"
	"github.com/xtding233/loot-economy/internal/economy"
	"github.com/xtding233/loot-economy/internal/reveal"
	"github.com/xtding233/loot-economy/internal/reward"
	"github.com/xtding233/loot-economy/internal/store"
)

// runtime is everything a subcommand needs once config is resolved.
type runtime struct {
	cfg      config.Config
	store    store.Store
	engine   *economy.Engine
	seedPath string
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		logger.Warn("close store", zap.Error(err))
	}
}

// seedPath resolves a relative seed path against the config directory.
func seedPath(cfg config.Config) string {
	if cfg.SeedPath == "" || filepath.IsAbs(cfg.SeedPath) {
		return cfg.SeedPath
	}
	return filepath.Join(configDir, cfg.SeedPath)
}

func loadMaster(path string) ([]reward.Definition, error) {
	if path == "" {
		return nil, nil
	}
	defs, err := catalog.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", path, err)
	}
	return defs, nil
}

// openRuntime loads config, opens the store and builds the engine. The
// catalog is refreshed when the stored day is not today.
func openRuntime(ctx context.Context, sched reveal.Scheduler) (*runtime, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path := seedPath(cfg)
	master, err := loadMaster(path)
	if err != nil {
		return nil, err
	}

	st, err := store.OpenSQLite(cfg.StorePath, cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.StorePath, err)
	}
	engine, err := economy.New(ctx, economy.Options{
		Store:          st,
		Scheduler:      sched,
		Logger:         logger.Named("economy"),
		Master:         master,
		Quotas:         cfg.Quotas,
		DrawCost:       cfg.DrawCost,
		CraftCost:      cfg.CraftCost,
		RevealDuration: cfg.RevealDuration,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	if _, err := engine.RefreshCatalog(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}
	return &runtime{cfg: cfg, store: st, engine: engine, seedPath: path}, nil
}
