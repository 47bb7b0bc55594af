// Package economy is the boundary of the loot engine. It owns the balance
// and inventory of a single actor, applies every draw and craft as one
// persisted transition, and hands the result to the reveal sequencer.
package economy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/catalog"
	"github.com/xtding233/loot-economy/internal/craft"
	"github.com/xtding233/loot-economy/internal/gacha"
	"github.com/xtding233/loot-economy/internal/inventory"
	"github.com/xtding233/loot-economy/internal/reveal"
	"github.com/xtding233/loot-economy/internal/reward"
	"github.com/xtding233/loot-economy/internal/store"
)

// DefaultRevealDuration is how long a reveal blocks new draws when the
// rendering layer never signals completion.
const DefaultRevealDuration = 6 * time.Second

// Options wires an Engine. Only Store is required.
type Options struct {
	Store     store.Store
	RNG       gacha.RandomSource
	Clock     reward.Clock
	Scheduler reveal.Scheduler
	Logger    *zap.Logger

	// Master is the reward list daily pools are composed from.
	Master []reward.Definition
	Quotas map[reward.Tier]int

	DrawCost       int64
	CraftCost      int64
	RevealDuration time.Duration
}

// DrawOutcome is a successful draw together with its reveal plan.
type DrawOutcome struct {
	gacha.Result
	Balance int64       `json:"balance"`
	Reveal  reveal.Plan `json:"reveal"`
}

// CraftOutcome is a successful trade-up together with its reveal plan.
type CraftOutcome struct {
	craft.Outcome
	DebitedCost int64       `json:"debitedCost"`
	Balance     int64       `json:"balance"`
	Reveal      reveal.Plan `json:"reveal"`
}

// Engine serializes every economic mutation of one actor.
type Engine struct {
	store     store.Store
	catalog   *catalog.Catalog
	refresher *catalog.Refresher
	lottery   *gacha.Lottery
	crafter   *craft.Crafter
	sequencer *reveal.Sequencer
	session   *reveal.Session
	logger    *zap.Logger

	drawCost       int64
	craftCost      int64
	revealDuration time.Duration

	mu      sync.Mutex
	balance int64
	ledger  *inventory.Ledger
}

// New loads the persisted state from opts.Store and returns a ready engine.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("economy: store is required")
	}
	if opts.CraftCost < 0 {
		return nil, fmt.Errorf("economy: craft cost: %w", gacha.ErrInvalidCost)
	}
	if opts.DrawCost < 0 {
		return nil, fmt.Errorf("economy: draw cost: %w", gacha.ErrInvalidCost)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.RNG
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	duration := opts.RevealDuration
	if duration <= 0 {
		duration = DefaultRevealDuration
	}

	st, err := opts.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	cat := catalog.New(st.Catalog)
	refresher := catalog.NewRefresher(cat, catalog.NewComposer(rng, opts.Quotas), opts.Store, opts.Clock, logger.Named("catalog"))
	if err := refresher.SetMaster(opts.Master); err != nil {
		return nil, fmt.Errorf("master list: %w", err)
	}

	e := &Engine{
		store:          opts.Store,
		catalog:        cat,
		refresher:      refresher,
		lottery:        gacha.NewLottery(rng, opts.Clock),
		crafter:        craft.NewCrafter(rng, opts.Clock),
		sequencer:      reveal.NewSequencer(rng),
		session:        reveal.NewSession(opts.Scheduler),
		logger:         logger,
		drawCost:       opts.DrawCost,
		craftCost:      opts.CraftCost,
		revealDuration: duration,
		balance:        st.Balance,
		ledger:         inventory.NewLedger(st.Inventory),
	}
	logger.Info("engine loaded",
		zap.Int64("balance", st.Balance),
		zap.Int("inventory", len(st.Inventory)),
		zap.Int("catalog", len(st.Catalog)),
		zap.String("last_refresh", st.LastRefresh))
	return e, nil
}

// DrawCost is the configured price of one draw.
func (e *Engine) DrawCost() int64 { return e.drawCost }

// Draw spends cost on one lottery draw. Balance and inventory change
// together or not at all; the returned reveal plan lands on the won item.
func (e *Engine) Draw(ctx context.Context, cost int64) (DrawOutcome, error) {
	if err := e.session.Begin(); err != nil {
		return DrawOutcome{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.catalog.Snapshot()
	res, err := e.lottery.Draw(e.balance, cost, snap)
	if err != nil {
		e.session.Abort()
		e.logger.Info("draw rejected", zap.String("kind", string(KindOf(err))), zap.Int64("balance", e.balance), zap.Int64("cost", cost))
		return DrawOutcome{}, err
	}

	delta := store.Delta{Debit: res.DebitedCost, Added: []reward.Item{res.Item}}
	if err := e.store.ApplyDelta(ctx, delta); err != nil {
		e.session.Abort()
		e.logger.Error("persist draw", zap.Error(err))
		return DrawOutcome{}, fmt.Errorf("persist draw: %w", err)
	}
	e.balance -= res.DebitedCost
	e.ledger.Add(res.Item)

	plan := e.sequencer.BuildReveal(res.Item, snap.All())
	e.startReveal(plan)

	e.logger.Info("draw",
		zap.String("reward_id", res.Item.RewardID),
		zap.Stringer("tier", res.Tier),
		zap.Stringer("rolled", res.RolledTier),
		zap.Int64("balance", e.balance))
	return DrawOutcome{Result: res, Balance: e.balance, Reveal: plan}, nil
}

// Craft trades up source-tier items into one item of target.
func (e *Engine) Craft(ctx context.Context, target reward.Tier) (CraftOutcome, error) {
	if err := e.session.Begin(); err != nil {
		return CraftOutcome{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	fail := func(err error) (CraftOutcome, error) {
		e.session.Abort()
		e.logger.Info("craft rejected", zap.String("kind", string(KindOf(err))), zap.Int("target", int(target)))
		return CraftOutcome{}, err
	}
	if e.balance < e.craftCost {
		return fail(gacha.ErrInsufficientBalance)
	}

	snap := e.catalog.Snapshot()
	out, err := e.crafter.Plan(target, e.ledger, snap)
	if err != nil {
		return fail(err)
	}

	delta := store.Delta{Debit: e.craftCost, Added: []reward.Item{out.Produced}, RemovedIDs: out.Consumed}
	if err := e.store.ApplyDelta(ctx, delta); err != nil {
		e.session.Abort()
		e.logger.Error("persist craft", zap.Error(err))
		return CraftOutcome{}, fmt.Errorf("persist craft: %w", err)
	}
	e.balance -= e.craftCost
	e.ledger.Apply(delta.Added, delta.RemovedIDs)

	plan := e.sequencer.BuildReveal(out.Produced, append(snap.All(), e.crafter.ProductionPool(target, snap)...))
	e.startReveal(plan)

	e.logger.Info("craft",
		zap.String("reward_id", out.Produced.RewardID),
		zap.Stringer("tier", out.TargetTier),
		zap.Int("consumed", len(out.Consumed)),
		zap.Int64("balance", e.balance))
	return CraftOutcome{Outcome: out, DebitedCost: e.craftCost, Balance: e.balance, Reveal: plan}, nil
}

func (e *Engine) startReveal(p reveal.Plan) {
	if err := e.session.StartReveal(p, e.revealDuration); err != nil {
		// Begin succeeded under this call, so the session cannot have moved.
		e.logger.Error("start reveal", zap.Error(err))
	}
}

// BuildReveal lays out a strip for winner against the current catalog.
// It does not touch the session.
func (e *Engine) BuildReveal(winner reward.Item) reveal.Plan {
	return e.sequencer.BuildReveal(winner, e.catalog.All())
}

// BuildIdleDisplay tiles the current catalog for the passive view.
func (e *Engine) BuildIdleDisplay() reveal.IdleDisplay {
	return e.sequencer.BuildIdle(e.catalog.All())
}

// CompleteReveal ends the running reveal early. It reports whether one was running.
func (e *Engine) CompleteReveal() bool { return e.session.Complete() }

// CancelReveal drops the reveal timer. The drawn item stays owned.
func (e *Engine) CancelReveal() bool { return e.session.Cancel() }

// RevealState is the current session state.
func (e *Engine) RevealState() reveal.State { return e.session.State() }

// CurrentReveal returns the plan being revealed, if any.
func (e *Engine) CurrentReveal() (reveal.Plan, bool) { return e.session.Current() }

// Credit adds earned points.
func (e *Engine) Credit(ctx context.Context, amount int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, err := e.store.Credit(ctx, amount)
	if err != nil {
		return e.balance, err
	}
	e.balance = b
	e.logger.Info("credit", zap.Int64("amount", amount), zap.Int64("balance", b))
	return b, nil
}

// Balance returns the current balance.
func (e *Engine) Balance() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance
}

// Inventory returns the owned items in acquisition order.
func (e *Engine) Inventory() []reward.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Items()
}

// Catalog returns the active pool.
func (e *Engine) Catalog() []reward.Definition { return e.catalog.All() }

// SetMaster replaces the list the next daily pool is composed from. An
// invalid list is rejected and the current one kept.
func (e *Engine) SetMaster(master []reward.Definition) error { return e.refresher.SetMaster(master) }

// RefreshCatalog recomposes the pool when the local day changed.
func (e *Engine) RefreshCatalog(ctx context.Context) (bool, error) {
	return e.refresher.RefreshIfDue(ctx)
}

// ForceRefresh recomposes the pool regardless of the day.
func (e *Engine) ForceRefresh(ctx context.Context) error { return e.refresher.Force(ctx) }

// ReplaceCatalog installs pool as today's catalog.
func (e *Engine) ReplaceCatalog(ctx context.Context, pool []reward.Definition) error {
	return e.refresher.Replace(ctx, pool)
}
