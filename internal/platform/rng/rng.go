// Package rng provides explicitly seeded random streams for the data
// generators. Every generator and every parallel partition owns its own
// Stream; nothing in the pipeline touches the global math/rand state, so a
// run is fully determined by its seed.
package rng

import (
	"math/rand"
	"time"
)

// Stream is a seeded random source with the sampling helpers the clinical
// generators need.
type Stream struct {
	r *rand.Rand
}

// New returns a Stream seeded for reproducibility. A zero seed picks a
// time-based one.
func New(seed int64) *Stream {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// SubSeed derives a deterministic per-partition seed from the global seed.
// The mix is splitmix64-style so that adjacent partition indexes do not
// produce correlated streams.
func SubSeed(seed int64, partition int) int64 {
	z := uint64(seed) + uint64(partition+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	out := int64(z ^ (z >> 31))
	if out == 0 {
		// Zero means "time-based" to New; keep sub-seeds deterministic.
		out = 1
	}
	return out
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func (s *Stream) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Float64Between returns a uniform float in [lo, hi).
func (s *Stream) Float64Between(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// Float64 returns a uniform float in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Gauss samples a normal value with the given mean and standard deviation,
// clamped into [lo, hi].
func (s *Stream) Gauss(mean, sd, lo, hi float64) float64 {
	v := s.r.NormFloat64()*sd + mean
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Digits returns a string of n random decimal digits.
func (s *Stream) Digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + s.r.Intn(10))
	}
	return string(b)
}

// TimeBetween returns a uniform instant in [lo, hi], truncated to seconds.
func (s *Stream) TimeBetween(lo, hi time.Time) time.Time {
	if !hi.After(lo) {
		return lo
	}
	span := hi.Unix() - lo.Unix()
	return time.Unix(lo.Unix()+s.r.Int63n(span+1), 0).UTC()
}

// WeightedIndex picks an index with probability proportional to its weight.
// Weights must be non-negative with a positive sum; the caller validates.
func (s *Stream) WeightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := s.r.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}

// Pick returns a uniformly chosen element of pool.
func Pick[T any](s *Stream, pool []T) T {
	return pool[s.r.Intn(len(pool))]
}

// Sample returns n distinct elements of pool in random order. If n exceeds
// the pool size the whole pool is returned shuffled.
func Sample[T any](s *Stream, pool []T, n int) []T {
	if n > len(pool) {
		n = len(pool)
	}
	idx := s.r.Perm(len(pool))[:n]
	out := make([]T, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
