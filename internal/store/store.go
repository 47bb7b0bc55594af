// Package store persists the wallet, the owned inventory and the active
// catalog. Every mutation of one draw or craft is written in one step.
package store

import (
	"context"
	"errors"

	"github.com/xtding233/loot-economy/internal/reward"
)

var (
	// ErrBalanceConflict is returned when a debit exceeds the stored balance.
	ErrBalanceConflict = errors.New("store: debit exceeds stored balance")
	// ErrInvalidAmount is returned for a non-positive credit.
	ErrInvalidAmount = errors.New("store: amount must be > 0")
)

// Delta is the persisted effect of a single draw or craft.
type Delta struct {
	Debit      int64
	Added      []reward.Item
	RemovedIDs []string
}

// State is everything the engine needs at startup.
type State struct {
	Balance     int64
	Inventory   []reward.Item
	Catalog     []reward.Definition
	LastRefresh string
}

// Store is implemented by the SQLite and in-memory backends.
type Store interface {
	Load(ctx context.Context) (State, error)
	Credit(ctx context.Context, amount int64) (int64, error)
	ApplyDelta(ctx context.Context, d Delta) error

	LastRefresh(ctx context.Context) (string, error)
	ReplaceCatalog(ctx context.Context, pool []reward.Definition, day string) error

	Close() error
}
