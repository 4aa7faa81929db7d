package wheels

import "fmt"

// Dynamic is a roulette wheel over an arbitrary, growable set of integer
// elements. Elements are stored in compacted leaf slots; a hash maps each
// element to its slot so that updates and removals stay O(log n).
type Dynamic struct {
	offset  int
	size    int
	weights []float64
	elems   []int
	slots   map[int]int
}

// NewDynamic returns an empty wheel with initial capacity for initSize
// elements. The wheel grows transparently when more elements are added.
func NewDynamic(initSize int) *Dynamic {
	offset := nextPower2(initSize)
	return &Dynamic{
		offset:  offset,
		size:    0,
		weights: make([]float64, offset*2),
		elems:   make([]int, offset*2),
		slots:   make(map[int]int, initSize),
	}
}

func nextPower2(i int) int {
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	return i + 1
}

// Put sets the weight of elem, adding it to the wheel if it is not already
// present. The weight must be non-negative.
func (w *Dynamic) Put(elem int, weight float64) {
	if _, ok := w.slots[elem]; ok {
		w.update(elem, weight)
	} else {
		w.insert(elem, weight)
	}
}

func (w *Dynamic) update(elem int, weight float64) {
	n := w.offset + w.slots[elem]
	w.weights[n] = weight
	w.propagate(n)
}

func (w *Dynamic) insert(elem int, weight float64) {
	if w.offset+w.size == len(w.weights) {
		w.grow()
	}

	n := w.offset + w.size
	w.elems[n] = elem
	w.weights[n] = weight
	w.slots[elem] = w.size
	w.size++

	w.propagate(n)
}

// Remove removes elem from the wheel. Removing an element that is not in
// the wheel is a no-op.
func (w *Dynamic) Remove(elem int) {
	i, ok := w.slots[elem]
	if !ok {
		return
	}

	delete(w.slots, elem)

	// Move the last leaf into the freed slot to keep the leaves compact.
	w.size--
	delNode := w.offset + i
	lastNode := w.offset + w.size

	if delNode != lastNode {
		w.weights[delNode] = w.weights[lastNode]
		w.elems[delNode] = w.elems[lastNode]
		w.slots[w.elems[lastNode]] = i
		w.propagate(delNode)
	}

	w.weights[lastNode] = 0
	w.propagate(lastNode)
}

// Contains reports whether elem is in the wheel.
func (w *Dynamic) Contains(elem int) bool {
	_, ok := w.slots[elem]
	return ok
}

// Weight returns the weight of elem, or 0 if elem is not in the wheel.
func (w *Dynamic) Weight(elem int) float64 {
	if i, ok := w.slots[elem]; ok {
		return w.weights[w.offset+i]
	}
	return 0
}

// Len returns the number of elements in the wheel.
func (w *Dynamic) Len() int {
	return w.size
}

// TotalWeight returns the sum of the weights of all elements.
func (w *Dynamic) TotalWeight() float64 {
	if w.size == 0 {
		return 0
	}
	return w.weights[1]
}

// Roll selects an element accordingly to random number r in [0, 1): the
// probability of selecting an element is its weight divided by the total
// weight. The second return value is false if no element can be selected,
// that is, if the wheel is empty or all weights are zero. Roll panics if r
// is outside [0, 1).
func (w *Dynamic) Roll(r float64) (int, bool) {
	if r < 0 || 1 <= r {
		panic(fmt.Sprintf("wheels: roll must be in [0, 1), got %f", r))
	}
	if w.size == 0 || w.weights[1] == 0 {
		return -1, false
	}

	x := r * w.weights[1]
	i := 1
	for i < w.offset {
		l := i * 2
		if x < w.weights[l] {
			i = l
		} else {
			i = l + 1
			x -= w.weights[l]
		}
	}
	return w.elems[i], true
}

func (w *Dynamic) propagate(i int) {
	for p := i >> 1; p > 0; p = p >> 1 {
		l := p << 1
		r := l + 1
		w.weights[p] = w.weights[l] + w.weights[r]
	}
}

func (w *Dynamic) grow() {
	newOffset := len(w.weights)
	newWeights := make([]float64, newOffset*2)
	newElems := make([]int, newOffset*2)
	copy(newWeights[newOffset:], w.weights[w.offset:])
	copy(newElems[newOffset:], w.elems[w.offset:])
	w.weights = newWeights
	w.elems = newElems
	w.offset = newOffset
	for p := w.offset - 1; p > 0; p-- {
		l := p * 2
		r := l + 1
		w.weights[p] = w.weights[l] + w.weights[r]
	}
}
