package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for base/local files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) BasePath() string {
	return filepath.Join(p.BaseDir, "economy.yaml")
}
func (p Paths) LocalPath() string {
	return filepath.Join(p.BaseDir, "economy.local.yaml")
}

// Loader reads YAML configs and merges base → local.
type Loader struct {
	paths Paths

	mu     sync.RWMutex
	cached *RawConfig
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

// LoadMerged loads and merges base → local (both optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged() (RawConfig, error) {
	l.mu.RLock()
	if l.cached != nil {
		cfg := *l.cached
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	baseCfg, err := readYAML(l.paths.BasePath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read base: %w", err)
	}
	localCfg, err := readYAML(l.paths.LocalPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read local: %w", err)
	}
	merged := mergeRaw(baseCfg, localCfg)

	l.mu.Lock()
	l.cached = &merged
	l.mu.Unlock()
	return merged, nil
}

// Invalidate clears loader's cache. Call after the files change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays 'b' on 'a': every field set in 'b' wins.
// Quotas are merged per tier.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Draw.Cost != nil {
		out.Draw.Cost = b.Draw.Cost
	}
	if b.Craft.Cost != nil {
		out.Craft.Cost = b.Craft.Cost
	}
	if b.Reveal.DurationMS != nil {
		out.Reveal.DurationMS = b.Reveal.DurationMS
	}
	if b.Catalog.SeedPath != "" {
		out.Catalog.SeedPath = b.Catalog.SeedPath
	}
	if len(b.Catalog.Quotas) > 0 {
		q := maps.Clone(a.Catalog.Quotas)
		if q == nil {
			q = make(map[int]int, len(b.Catalog.Quotas))
		}
		maps.Copy(q, b.Catalog.Quotas)
		out.Catalog.Quotas = q
	}
	if b.Store.Path != "" {
		out.Store.Path = b.Store.Path
	}
	if b.Server.HTTPAddr != "" {
		out.Server.HTTPAddr = b.Server.HTTPAddr
	}
	if b.Server.GRPCAddr != "" {
		out.Server.GRPCAddr = b.Server.GRPCAddr
	}
	if b.Wallet.StartingBalance != nil {
		out.Wallet.StartingBalance = b.Wallet.StartingBalance
	}
	return out
}
