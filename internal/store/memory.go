package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/xtding233/loot-economy/internal/reward"
)

// Memory is a volatile Store for tests and simulations.
type Memory struct {
	mu      sync.Mutex
	balance int64
	items   []reward.Item
	catalog []reward.Definition
	day     string

	// FailNext, when set, is returned by the next write and then cleared.
	FailNext error
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store holding startingBalance points.
func NewMemory(startingBalance int64) *Memory {
	return &Memory{balance: startingBalance}
}

func (m *Memory) takeFailure() error {
	err := m.FailNext
	m.FailNext = nil
	return err
}

func (m *Memory) Load(context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Balance:     m.balance,
		Inventory:   slices.Clone(m.items),
		Catalog:     cloneDefs(m.catalog),
		LastRefresh: m.day,
	}, nil
}

func (m *Memory) Credit(_ context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	m.balance += amount
	return m.balance, nil
}

func (m *Memory) ApplyDelta(_ context.Context, d Delta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if d.Debit > m.balance {
		return ErrBalanceConflict
	}

	remove := make(map[string]struct{}, len(d.RemovedIDs))
	for _, id := range d.RemovedIDs {
		remove[id] = struct{}{}
	}
	kept := make([]reward.Item, 0, len(m.items)+len(d.Added))
	for _, it := range m.items {
		if _, ok := remove[it.ID]; ok {
			delete(remove, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	if len(remove) > 0 {
		return fmt.Errorf("remove items: %d not found", len(remove))
	}

	m.balance -= d.Debit
	m.items = append(kept, d.Added...)
	return nil
}

func (m *Memory) LastRefresh(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.day, nil
}

func (m *Memory) ReplaceCatalog(_ context.Context, pool []reward.Definition, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.catalog = cloneDefs(pool)
	m.day = day
	return nil
}

func (m *Memory) Close() error { return nil }

func cloneDefs(in []reward.Definition) []reward.Definition {
	if in == nil {
		return nil
	}
	out := make([]reward.Definition, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
