package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Keys collects the keys of a map in no particular order
func Keys[Key comparable, Value any](input map[Key]Value) []Key {
	keys := make([]Key, 0, len(input))

	for key := range input {
		keys = append(keys, key)
	}

	return keys
}

// SortedKeys collects the keys of a map in ascending order, for output
// that has to be deterministic
func SortedKeys[Key constraints.Ordered, Value any](input map[Key]Value) []Key {
	keys := Keys(input)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
