package wmap

import "fmt"

// A Source provides the uniform random numbers consumed by Sample. It is
// satisfied by *math/rand.Rand. The map never owns a random source: callers
// pass one in, and seeding it makes sampling fully reproducible.
type Source interface {
	// Float64 returns a uniformly distributed number in [0, 1).
	Float64() float64
}

// Sample draws one key at random, with probability proportional to the
// key's weight relative to the total weight of the map. Keys with weight
// zero are never drawn. Sample consumes exactly one number from src and
// performs no mutation.
func (m *Map[K]) Sample(src Source) (K, error) {
	return m.Roll(src.Float64())
}

// Roll returns the key selected by the random number r in [0, 1). Keys
// partition [0, TotalWeight()) into consecutive intervals in ascending key
// order, each as wide as its key's weight; Roll returns the key whose
// interval contains r*TotalWeight(). Roll panics if r is outside [0, 1).
func (m *Map[K]) Roll(r float64) (K, error) {
	var zero K
	if r < 0 || 1 <= r {
		panic(fmt.Sprintf("wmap: roll must be in [0, 1), got %f", r))
	}
	if m.root == nil {
		return zero, ErrEmpty
	}
	if m.root.sum == 0 {
		return zero, ErrAllZeroWeight
	}

	// Inverse-CDF descent: at each node, the cached sum of the left subtree
	// splits the remaining interval into left / self / right.
	x := r * m.root.sum
	n := m.root
	for {
		if l := n.left; l != nil {
			if x < l.sum {
				n = l
				continue
			}
			x -= l.sum
		}
		if x < n.weight || n.right == nil || n.right.sum == 0 {
			return n.key, nil
		}
		x -= n.weight
		n = n.right
	}
}
