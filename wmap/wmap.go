// Package wmap provides a keyed container with weighted random sampling:
// each key carries a non-negative weight, and sampling returns a key with
// probability proportional to that key's weight relative to the sum of all
// weights.
//
// The container is backed by a height-balanced binary search tree in which
// every node caches the weight sum, the node count, and the height of its
// subtree. Insertion, update, removal, lookup, and sampling all run in
// O(log n) worst case time; iteration visits the keys in ascending order
// using O(log n) auxiliary memory.
package wmap

import (
	"cmp"
	"fmt"
	"math"
)

// Map associates keys with non-negative weights and supports sampling keys
// with probability proportional to their weight. Use [New] or [NewFunc] to
// create a Map.
//
// A Map is not safe for concurrent use. Callers that need concurrent access
// must serialize it externally.
type Map[K any] struct {
	root *node[K]
	cmp  func(K, K) int

	// gen counts mutations. Iterators capture its value when created and
	// use it to detect mutations that happen mid-iteration.
	gen uint64
}

type node[K any] struct {
	key    K
	weight float64
	left   *node[K]
	right  *node[K]

	// Aggregates over the subtree rooted at this node: sum includes the
	// node's own weight, size counts the node itself, and height is the
	// number of edges on the longest path down to a leaf (0 for leaves).
	sum    float64
	size   int
	height int
}

// New returns an empty Map ordered by the natural ordering of K.
func New[K cmp.Ordered]() *Map[K] {
	return &Map[K]{cmp: cmp.Compare[K]}
}

// NewFunc returns an empty Map ordered by the given comparison function. The
// function must return a negative number if a < b, zero if a == b, and a
// positive number if a > b.
func NewFunc[K any](cmp func(a, b K) int) *Map[K] {
	return &Map[K]{cmp: cmp}
}

// Len returns the number of keys in the map in constant time.
func (m *Map[K]) Len() int {
	return m.root.subSize()
}

// TotalWeight returns the sum of the weights of all keys in constant time.
// It returns 0 if the map is empty.
func (m *Map[K]) TotalWeight() float64 {
	return m.root.subSum()
}

// Put sets the weight associated with key, inserting the key if it is not
// already present. The weight must be non-negative and finite; a weight of
// zero keeps the key in the map but excludes it from sampling.
//
// Put validates its arguments before touching the tree: a rejected call
// leaves the map unchanged.
func (m *Map[K]) Put(key K, weight float64) error {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	if m.cmp(key, key) != 0 {
		return fmt.Errorf("%w: %v does not compare equal to itself", ErrInvalidKey, key)
	}
	m.root = m.put(m.root, key, weight)
	m.gen++
	return nil
}

func (m *Map[K]) put(n *node[K], key K, weight float64) *node[K] {
	if n == nil {
		return &node[K]{key: key, weight: weight, sum: weight, size: 1}
	}
	switch c := m.cmp(key, n.key); {
	case c < 0:
		n.left = m.put(n.left, key, weight)
	case c > 0:
		n.right = m.put(n.right, key, weight)
	default:
		n.weight = weight
	}
	return rebalance(n)
}

// Remove deletes key and its weight from the map.
func (m *Map[K]) Remove(key K) error {
	root, found := m.remove(m.root, key)
	if !found {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	m.root = root
	m.gen++
	return nil
}

func (m *Map[K]) remove(n *node[K], key K) (*node[K], bool) {
	if n == nil {
		return nil, false
	}
	found := false
	switch c := m.cmp(key, n.key); {
	case c < 0:
		n.left, found = m.remove(n.left, key)
	case c > 0:
		n.right, found = m.remove(n.right, key)
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		// Two children: relabel this node with its in-order successor and
		// delete the successor node instead. The successor is the leftmost
		// node of the right subtree and has no left child, so the recursive
		// deletion terminates in one of the cases above.
		s := n.right
		for s.left != nil {
			s = s.left
		}
		n.key, n.weight = s.key, s.weight
		n.right, found = m.remove(n.right, s.key)
	}
	if !found {
		return n, false
	}
	return rebalance(n), true
}

// Pop removes key from the map and returns the weight it had.
func (m *Map[K]) Pop(key K) (float64, error) {
	n := m.find(key)
	if n == nil {
		return 0, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	weight := n.weight
	if err := m.Remove(key); err != nil {
		return 0, err
	}
	return weight, nil
}

// Get returns the weight associated with key.
func (m *Map[K]) Get(key K) (float64, error) {
	n := m.find(key)
	if n == nil {
		return 0, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return n.weight, nil
}

// Contains reports whether key is present in the map.
func (m *Map[K]) Contains(key K) bool {
	return m.find(key) != nil
}

func (m *Map[K]) find(key K) *node[K] {
	n := m.root
	for n != nil {
		switch c := m.cmp(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func (n *node[K]) subHeight() int {
	if n == nil {
		return -1
	}
	return n.height
}

func (n *node[K]) subSize() int {
	if n == nil {
		return 0
	}
	return n.size
}

func (n *node[K]) subSum() float64 {
	if n == nil {
		return 0
	}
	return n.sum
}

// update recomputes the node's aggregates from its children. Children must
// already be up to date.
func (n *node[K]) update() {
	n.height = 1 + max(n.left.subHeight(), n.right.subHeight())
	n.size = 1 + n.left.subSize() + n.right.subSize()
	n.sum = n.weight + n.left.subSum() + n.right.subSum()
}

func (n *node[K]) balance() int {
	return n.left.subHeight() - n.right.subHeight()
}

// rotateLeft and rotateRight perform the standard single rotations. They
// return the new subtree root with the aggregates of both rotated nodes
// recomputed, child before parent.
func rotateLeft[K any](n *node[K]) *node[K] {
	r := n.right
	n.right = r.left
	r.left = n
	n.update()
	r.update()
	return r
}

func rotateRight[K any](n *node[K]) *node[K] {
	l := n.left
	n.left = l.right
	l.right = n
	n.update()
	l.update()
	return l
}

// rebalance refreshes the aggregates of n and restores the height invariant
// after an insertion or removal in one of its subtrees. Both subtrees must
// be balanced themselves and differ in height by at most 2.
func rebalance[K any](n *node[K]) *node[K] {
	n.update()
	switch b := n.balance(); {
	case b > 1:
		if n.left.balance() < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case b < -1:
		if n.right.balance() > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	default:
		return n
	}
}
