// Package wheels provides dense, integer-keyed roulette wheels: samplers
// that select an element with probability proportional to its weight.
//
// Wheels trade generality for speed. Elements are plain ints, weights live
// in a flat array-backed tree of partial sums, and selection is a single
// root-to-leaf descent. For a keyed container with ordered iteration, see
// package wmap.
package wheels

import "fmt"

// Static is a roulette wheel over a fixed set of elements 0..n-1.
type Static struct {
	n int
	// sumWeights represents a complete tree with n leaves. The root of the
	// tree is at index 1. The left child of a node at index i is at i*2, and
	// the right child at i*2+1. The weight of a parent is the sum of its
	// children's weights.
	sumWeights []float64
}

// NewStatic returns a wheel over elements 0..n-1, all with weight zero.
func NewStatic(n int) *Static {
	return &Static{
		n:          n,
		sumWeights: make([]float64, n*2),
	}
}

// SetWeight sets the weight of elem and updates the partial sums on the
// path to the root. The weight must be non-negative.
func (w *Static) SetWeight(elem int, weight float64) {
	i := w.n + elem
	w.sumWeights[i] = weight
	for p := i / 2; p > 0; p = p / 2 {
		l := p * 2
		r := l + 1
		w.sumWeights[p] = w.sumWeights[l] + w.sumWeights[r]
	}
}

// Weight returns the weight of elem.
func (w *Static) Weight(elem int) float64 {
	return w.sumWeights[w.n+elem]
}

// Len returns the number of elements in the wheel.
func (w *Static) Len() int {
	return w.n
}

// TotalWeight returns the sum of all weights.
func (w *Static) TotalWeight() float64 {
	if w.n == 0 {
		return 0
	}
	return w.sumWeights[1]
}

// Roll selects an element accordingly to random number r in [0, 1): the
// probability of selecting an element is its weight divided by the total
// weight. The second return value is false if no element can be selected,
// that is, if the wheel is empty or all weights are zero. Roll panics if r
// is outside [0, 1).
func (w *Static) Roll(r float64) (int, bool) {
	if r < 0 || 1 <= r {
		panic(fmt.Sprintf("wheels: roll must be in [0, 1), got %f", r))
	}
	if w.n == 0 || w.sumWeights[1] == 0 {
		return -1, false
	}

	x := r * w.sumWeights[1]
	i := 1
	for i < w.n {
		l := i * 2
		if x < w.sumWeights[l] {
			i = l
		} else {
			i = l + 1
			x -= w.sumWeights[l]
		}
	}
	return i - w.n, true
}
