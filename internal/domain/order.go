package domain

import "slices"

// Move returns a copy of items with the element at from relocated to to.
// The element is removed and then inserted, so every other element keeps
// its relative order. Out-of-range indexes return an unchanged copy.
func Move[T any](items []T, from, to int) []T {
	out := slices.Clone(items)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}

// ValidMove reports whether from and to are both valid positions in a
// sequence of length n
func ValidMove(n, from, to int) bool {
	return from >= 0 && from < n && to >= 0 && to < n
}

// OrderMap assigns sequential order IDs, starting at base, to ids in order
func OrderMap(ids []int64, base int64) map[int64]int64 {
	m := make(map[int64]int64, len(ids))
	for i, id := range ids {
		m[id] = base + int64(i)
	}
	return m
}
