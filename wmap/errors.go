package wmap

import "errors"

var (
	// ErrInvalidKey is returned when a key does not compare equal to itself
	// under the map's comparison function (e.g. a NaN key with a naive
	// float comparator).
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidWeight is returned when a weight is negative, NaN, or
	// infinite.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrKeyNotFound is returned by lookups and removals of absent keys.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmpty is returned when a sample is drawn from a map with no keys.
	ErrEmpty = errors.New("empty map")

	// ErrAllZeroWeight is returned when a sample is drawn from a non-empty
	// map in which every key has weight zero.
	ErrAllZeroWeight = errors.New("total weight is zero")

	// ErrConcurrentModification is reported by iterators when the map is
	// mutated while an iteration is in progress.
	ErrConcurrentModification = errors.New("map modified during iteration")
)
