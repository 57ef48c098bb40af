// Package generator builds randomized question orders and answer options.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces randomized permutations and option sets.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a uniformly shuffled copy of items. The input is not modified.
func Shuffle[T any](g *Generator, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Perm returns a random permutation of the indices [0, n).
func (g *Generator) Perm(n int) []int {
	if n <= 0 {
		return []int{}
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return Shuffle(g, indices)
}
