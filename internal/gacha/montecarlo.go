package gacha

import (
	"errors"
	"math"
	"slices"

	"github.com/xtding233/loot-economy/internal/reward"
)

// ErrNoRareInPool is returned when a first-rare simulation can never finish.
var ErrNoRareInPool = errors.New("pool holds no tier 2 rewards")

// Distribution is the per-tier outcome of a batch of simulated draws.
type Distribution struct {
	Trials int                 `json:"trials"`
	Counts map[reward.Tier]int `json:"counts"`
}

// Frequency returns the observed share of draws that awarded tier t.
func (d Distribution) Frequency(t reward.Tier) float64 {
	if d.Trials == 0 {
		return 0
	}
	return float64(d.Counts[t]) / float64(d.Trials)
}

// Simulate performs trials draws against pool with an unbounded balance and
// tallies awarded tiers.
func Simulate(l *Lottery, pool Pool, trials int) (Distribution, error) {
	dist := Distribution{Counts: make(map[reward.Tier]int, len(reward.Tiers))}
	for i := 0; i < trials; i++ {
		res, err := l.Draw(math.MaxInt64, 0, pool)
		if err != nil {
			return Distribution{}, err
		}
		dist.Counts[res.Tier]++
		dist.Trials++
	}
	return dist, nil
}

// FirstRareStats summarizes how many draws it took to see the first tier 2
// award across repeated trials. Expected is the geometric mean 1/p implied
// by the draw table, so callers can compare it with the observed Mean.
type FirstRareStats struct {
	Trials   int     `json:"trials"`
	Expected float64 `json:"expected"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
	// CILow and CIHigh bound the mean at 95% confidence.
	CILow  float64 `json:"ciLow"`
	CIHigh float64 `json:"ciHigh"`
	Min    int     `json:"min"`
	Median int     `json:"median"`
	P90    int     `json:"p90"`
	Max    int     `json:"max"`
}

// Within reports whether Expected lies inside the confidence interval.
func (s FirstRareStats) Within() bool {
	return s.Expected >= s.CILow && s.Expected <= s.CIHigh
}

// z95 is the two-sided normal quantile for a 95% interval.
const z95 = 1.959964

// summarizeFirstRare reduces draw counts to FirstRareStats. Percentiles use
// nearest rank on the sorted counts.
func summarizeFirstRare(counts []int) FirstRareStats {
	n := len(counts)
	st := FirstRareStats{Trials: n, Expected: 1 / BaseProbability(reward.TierRare)}
	if n == 0 {
		return st
	}
	sorted := slices.Clone(counts)
	slices.Sort(sorted)

	var sum, sumSq float64
	for _, c := range sorted {
		sum += float64(c)
		sumSq += float64(c) * float64(c)
	}
	st.Mean = sum / float64(n)
	if n > 1 {
		st.StdDev = math.Sqrt((sumSq - sum*st.Mean) / float64(n-1))
	}
	half := z95 * st.StdDev / math.Sqrt(float64(n))
	st.CILow, st.CIHigh = st.Mean-half, st.Mean+half

	rank := func(p float64) int {
		i := int(math.Ceil(p*float64(n))) - 1
		return sorted[max(i, 0)]
	}
	st.Min, st.Max = sorted[0], sorted[n-1]
	st.Median = rank(0.50)
	st.P90 = rank(0.90)
	return st
}

// drawsUntilRare counts draws until the first tier 2 award.
func drawsUntilRare(l *Lottery, pool Pool) (int, error) {
	draws := 0
	for {
		draws++
		res, err := l.Draw(math.MaxInt64, 0, pool)
		if err != nil {
			return 0, err
		}
		if res.Tier == reward.TierRare {
			return draws, nil
		}
	}
}

// RunMonteCarlo repeats first-rare trials and summarizes them. A pool with
// no tier 2 rewards could never finish a trial and yields ErrNoRareInPool.
func RunMonteCarlo(l *Lottery, pool Pool, trials int) (FirstRareStats, error) {
	if len(pool.ByTier(reward.TierRare)) == 0 {
		return FirstRareStats{}, ErrNoRareInPool
	}
	if trials <= 0 {
		return summarizeFirstRare(nil), nil
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		v, err := drawsUntilRare(l, pool)
		if err != nil {
			return FirstRareStats{}, err
		}
		samples[i] = v
	}
	return summarizeFirstRare(samples), nil
}
