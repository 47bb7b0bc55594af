package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/reward"
)

// DayLayout formats a calendar day key.
const DayLayout = "2006-01-02"

// Day returns the host-local calendar day of t.
func Day(t time.Time) string { return t.In(time.Local).Format(DayLayout) }

// ErrNoMaster is returned by Force when there is nothing to compose from.
var ErrNoMaster = errors.New("no master reward list configured")

// DayStore persists the pool together with the day it was composed for.
type DayStore interface {
	LastRefresh(ctx context.Context) (string, error) // "" when never refreshed
	ReplaceCatalog(ctx context.Context, pool []reward.Definition, day string) error
}

// Refresher recomposes the catalog once per calendar day. Calls are
// serialized, so two callers on the same day install a single pool.
type Refresher struct {
	catalog  *Catalog
	composer *Composer
	store    DayStore
	clock    reward.Clock
	logger   *zap.Logger

	mu     sync.Mutex
	master []reward.Definition
}

// NewRefresher wires a refresher. A nil logger is replaced by a no-op one.
func NewRefresher(cat *Catalog, composer *Composer, store DayStore, clock reward.Clock, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{catalog: cat, composer: composer, store: store, clock: clock, logger: logger}
}

// SetMaster replaces the master list used by the next composition. An
// invalid list is rejected and the previous one kept.
func (r *Refresher) SetMaster(master []reward.Definition) error {
	if err := ValidateDefinitions(master); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.master = cloneAll(master)
	return nil
}

// RefreshIfDue composes and installs a new pool when the stored refresh day
// differs from today. It reports whether a new pool was composed. Without a
// master list the installed pool is kept and re-stamped with today.
func (r *Refresher) RefreshIfDue(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := Day(r.clock.Now())
	last, err := r.store.LastRefresh(ctx)
	if err != nil {
		return false, fmt.Errorf("read last refresh: %w", err)
	}
	if last == today {
		return false, nil
	}
	if len(r.master) == 0 {
		kept := r.catalog.All()
		if err := r.install(ctx, kept, today); err != nil {
			return false, err
		}
		r.logger.Warn("catalog refresh skipped: no master list", zap.String("day", today), zap.Int("kept", len(kept)))
		return false, nil
	}
	if err := r.install(ctx, r.composer.Compose(r.master), today); err != nil {
		return false, err
	}
	r.logger.Info("catalog refreshed", zap.String("day", today), zap.String("previous", last), zap.Int("size", r.catalog.Snapshot().Len()))
	return true, nil
}

// Force composes and installs a new pool regardless of the stored day.
func (r *Refresher) Force(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.master) == 0 {
		return ErrNoMaster
	}
	today := Day(r.clock.Now())
	if err := r.install(ctx, r.composer.Compose(r.master), today); err != nil {
		return err
	}
	r.logger.Info("catalog force refreshed", zap.String("day", today), zap.Int("size", r.catalog.Snapshot().Len()))
	return nil
}

// Replace installs an externally supplied pool, stamped with today.
func (r *Refresher) Replace(ctx context.Context, pool []reward.Definition) error {
	if err := ValidateDefinitions(pool); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.install(ctx, pool, Day(r.clock.Now()))
}

// install persists first so a storage failure leaves the live pool untouched.
func (r *Refresher) install(ctx context.Context, pool []reward.Definition, day string) error {
	if err := r.store.ReplaceCatalog(ctx, pool, day); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	r.catalog.ReplaceAll(pool)
	return nil
}
