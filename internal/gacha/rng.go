package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource abstract
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n); 0 when n <= 0
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53bit random => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	return indexOf(c.Float64(), n)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. Monte Carlo)
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// FixedRNG replays a fixed list of floats, cycling when exhausted.
// IntN maps the next float onto [0, n).
type FixedRNG struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

// NewFixedRNG returns a source that yields values in order. With no values
// it always yields 0.
func NewFixedRNG(values ...float64) *FixedRNG {
	return &FixedRNG{values: values}
}

func (f *FixedRNG) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.pos%len(f.values)]
	f.pos++
	return v
}

func (f *FixedRNG) IntN(n int) int {
	return indexOf(f.Float64(), n)
}

// indexOf maps u in [0,1) to an index in [0, n).
func indexOf(u float64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(u * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Pick returns a uniformly chosen element of xs. xs must be non-empty.
func Pick[T any](rng RandomSource, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

// Shuffle permutes xs in place (Fisher-Yates).
func Shuffle[T any](rng RandomSource, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
