package wmap

import "iter"

// An Iterator walks the keys of a Map in ascending order. It keeps an
// explicit stack of at most one node per tree level, so a live iterator
// uses O(log n) auxiliary memory regardless of the size of the map.
type Iterator[K any] struct {
	m     *Map[K]
	gen   uint64
	stack []*node[K]
	cur   *node[K]
	err   error
}

// Iter returns an iterator positioned before the smallest key. The iterator
// reflects the content of the map at the time Iter was called: if the map
// is mutated before the iterator is exhausted, Next returns false and Err
// reports ErrConcurrentModification.
func (m *Map[K]) Iter() *Iterator[K] {
	it := &Iterator[K]{
		m:     m,
		gen:   m.gen,
		stack: make([]*node[K], 0, m.root.subHeight()+1),
	}
	it.descend(m.root)
	return it
}

// descend pushes the left spine of the subtree rooted at n.
func (it *Iterator[K]) descend(n *node[K]) {
	for ; n != nil; n = n.left {
		it.stack = append(it.stack, n)
	}
}

// Next advances the iterator to the next key in ascending order. It returns
// false when the iteration is exhausted or when the map was mutated since
// the iterator was created; Err tells the two cases apart.
func (it *Iterator[K]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.gen != it.m.gen {
		it.err = ErrConcurrentModification
		return false
	}
	if len(it.stack) == 0 {
		it.cur = nil
		return false
	}
	it.cur = it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.descend(it.cur.right)
	return true
}

// Key returns the key at the iterator's position. It must only be called
// after a call to Next that returned true.
func (it *Iterator[K]) Key() K {
	return it.cur.key
}

// Weight returns the weight at the iterator's position. It must only be
// called after a call to Next that returned true.
func (it *Iterator[K]) Weight() float64 {
	return it.cur.weight
}

// Err returns ErrConcurrentModification if the map was mutated while the
// iteration was in progress, and nil otherwise.
func (it *Iterator[K]) Err() error {
	return it.err
}

// All returns a sequence of key/weight pairs in ascending key order. The
// sequence panics with ErrConcurrentModification if the map is mutated
// while it is being ranged over.
func (m *Map[K]) All() iter.Seq2[K, float64] {
	return func(yield func(K, float64) bool) {
		it := m.Iter()
		for it.Next() {
			if !yield(it.Key(), it.Weight()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

// Keys returns a sequence of the map's keys in ascending order. Like All,
// it panics with ErrConcurrentModification if the map is mutated while it
// is being ranged over.
func (m *Map[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}
