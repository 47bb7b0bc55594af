package gacha

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/xtding233/loot-economy/internal/reward"
)

type staticPool []reward.Definition

func (p staticPool) ByTier(t reward.Tier) []reward.Definition {
	var out []reward.Definition
	for _, d := range p {
		if d.Tier == t {
			out = append(out, d)
		}
	}
	return out
}

func (p staticPool) All() []reward.Definition { return append([]reward.Definition(nil), p...) }

func makePool(counts map[reward.Tier]int) staticPool {
	var p staticPool
	for _, t := range reward.Tiers {
		for i := 0; i < counts[t]; i++ {
			p = append(p, reward.Definition{ID: fmt.Sprintf("t%d-%d", t, i), Name: fmt.Sprintf("T%d #%d", t, i), Tier: t})
		}
	}
	return p
}

var fixedNow = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestRollTierThresholds(t *testing.T) {
	cases := []struct {
		roll float64
		want reward.Tier
	}{
		{0, reward.TierRare},
		{12.999, reward.TierRare},
		{13, reward.TierUncommon},
		{49.999, reward.TierUncommon},
		{50, reward.TierCommon},
		{99.999, reward.TierCommon},
	}
	for _, c := range cases {
		if got := RollTier(c.roll); got != c.want {
			t.Fatalf("RollTier(%v)=%v want %v", c.roll, got, c.want)
		}
	}
}

func TestDrawInsufficientBalance(t *testing.T) {
	l := NewLottery(NewSeededRNG(1), fixedNow)
	_, err := l.Draw(4, 5, makePool(map[reward.Tier]int{4: 1}))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestDrawNegativeCost(t *testing.T) {
	l := NewLottery(NewSeededRNG(1), fixedNow)
	if _, err := l.Draw(10, -1, makePool(map[reward.Tier]int{4: 1})); !errors.Is(err, ErrInvalidCost) {
		t.Fatalf("expected ErrInvalidCost, got %v", err)
	}
}

func TestDrawEmptyCatalog(t *testing.T) {
	l := NewLottery(NewSeededRNG(1), fixedNow)
	if _, err := l.Draw(10, 1, staticPool{}); !errors.Is(err, ErrNoRewardsConfigured) {
		t.Fatalf("expected ErrNoRewardsConfigured, got %v", err)
	}
	// a catalog of only legendaries has nothing drawable
	if _, err := l.Draw(10, 1, makePool(map[reward.Tier]int{1: 3})); !errors.Is(err, ErrNoRewardsConfigured) {
		t.Fatalf("expected ErrNoRewardsConfigured for legendary-only pool, got %v", err)
	}
}

func TestDrawMaterializesItem(t *testing.T) {
	l := NewLottery(NewFixedRNG(0.9, 0), fixedNow) // roll 90 -> tier 4, first candidate
	res, err := l.Draw(10, 1, makePool(map[reward.Tier]int{2: 2, 3: 3, 4: 5, 1: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Tier != reward.TierCommon || res.RolledTier != reward.TierCommon {
		t.Fatalf("unexpected tiers: %+v", res)
	}
	if res.Item.RewardID != "t4-0" || res.Item.AcquiredAt != fixedNow() || res.Item.ID == "" {
		t.Fatalf("unexpected item: %+v", res.Item)
	}
	if res.DebitedCost != 1 {
		t.Fatalf("debited=%d want 1", res.DebitedCost)
	}
}

func TestCandidatesFallback(t *testing.T) {
	// rolled tier 2 with no tier 2 -> widen to tiers 3 and 4
	pool := makePool(map[reward.Tier]int{1: 1, 3: 1, 4: 1})
	got := Candidates(pool, reward.TierRare)
	if len(got) != 2 {
		t.Fatalf("want 2 widened candidates, got %d", len(got))
	}
	for _, d := range got {
		if d.Tier < reward.TierRare {
			t.Fatalf("widened set must be same-or-more-common, got tier %d", d.Tier)
		}
	}

	// rolled tier 4 with only tier 2 and 1 -> fall back to all drawable
	pool = makePool(map[reward.Tier]int{1: 2, 2: 1})
	got = Candidates(pool, reward.TierCommon)
	if len(got) != 1 || got[0].Tier != reward.TierRare {
		t.Fatalf("want the lone tier 2 definition, got %+v", got)
	}
}

func TestDrawNeverReturnsLegendary(t *testing.T) {
	pools := []staticPool{
		makePool(map[reward.Tier]int{1: 5, 2: 1}),
		makePool(map[reward.Tier]int{1: 5, 4: 1}),
		makePool(map[reward.Tier]int{1: 1, 2: 2, 3: 3, 4: 5}),
		makePool(map[reward.Tier]int{1: 3, 3: 1}),
	}
	l := NewLottery(NewSeededRNG(7), fixedNow)
	for pi, pool := range pools {
		for i := 0; i < 2000; i++ {
			res, err := l.Draw(1, 0, pool)
			if err != nil {
				t.Fatal(err)
			}
			if res.Tier == reward.TierLegendary {
				t.Fatalf("pool %d draw %d returned tier 1", pi, i)
			}
		}
	}
}

func TestSimulateDistribution(t *testing.T) {
	const n = 100000
	l := NewLottery(NewSeededRNG(42), fixedNow)
	dist, err := Simulate(l, makePool(map[reward.Tier]int{1: 1, 2: 2, 3: 3, 4: 5}), n)
	if err != nil {
		t.Fatal(err)
	}
	if dist.Counts[reward.TierLegendary] != 0 {
		t.Fatalf("tier 1 count must be 0, got %d", dist.Counts[reward.TierLegendary])
	}
	for _, tier := range []reward.Tier{reward.TierRare, reward.TierUncommon, reward.TierCommon} {
		freq := dist.Frequency(tier)
		p := BaseProbability(tier)
		if diff := freq - p; diff > 0.01 || diff < -0.01 {
			t.Fatalf("tier %d freq=%f not close to p=%f", tier, freq, p)
		}
	}
}

func TestRunMonteCarloFirstRare(t *testing.T) {
	l := NewLottery(NewSeededRNG(3), fixedNow)
	stats, err := RunMonteCarlo(l, makePool(map[reward.Tier]int{2: 1, 3: 1, 4: 1}), 20000)
	if err != nil {
		t.Fatal(err)
	}
	// geometric with p=0.13 -> mean 1/0.13 ~= 7.69
	if stats.Mean < 7.2 || stats.Mean > 8.2 {
		t.Fatalf("mean draws until rare = %f", stats.Mean)
	}
	if math.Abs(stats.Expected-1/0.13) > 1e-9 {
		t.Fatalf("expected mean = %f", stats.Expected)
	}
	if !(stats.CILow < stats.Mean && stats.Mean < stats.CIHigh) || stats.CIHigh-stats.CILow > 0.5 {
		t.Fatalf("confidence interval [%f, %f] around %f", stats.CILow, stats.CIHigh, stats.Mean)
	}
	if stats.Min < 1 || stats.Min > stats.Median || stats.Median > stats.P90 || stats.P90 > stats.Max {
		t.Fatalf("order statistics out of order: %+v", stats)
	}
	if _, err := RunMonteCarlo(l, makePool(map[reward.Tier]int{4: 1}), 10); !errors.Is(err, ErrNoRareInPool) {
		t.Fatalf("expected ErrNoRareInPool, got %v", err)
	}
	if _, err := RunMonteCarlo(l, makePool(map[reward.Tier]int{4: 1}), 0); !errors.Is(err, ErrNoRareInPool) {
		t.Fatalf("zero trials on a pool without rares: got %v", err)
	}
}

func TestSummarizeFirstRare(t *testing.T) {
	st := summarizeFirstRare([]int{10, 1, 4, 2, 3})
	if st.Trials != 5 || st.Mean != 4 {
		t.Fatalf("trials/mean = %d/%f", st.Trials, st.Mean)
	}
	if math.Abs(st.StdDev-math.Sqrt(12.5)) > 1e-9 {
		t.Fatalf("stddev = %f", st.StdDev)
	}
	if st.Min != 1 || st.Median != 3 || st.P90 != 10 || st.Max != 10 {
		t.Fatalf("order statistics = %+v", st)
	}
	if empty := summarizeFirstRare(nil); empty.Trials != 0 || empty.Mean != 0 {
		t.Fatalf("empty summary = %+v", empty)
	}
}
