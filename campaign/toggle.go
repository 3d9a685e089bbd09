package campaign

import "slices"

// toggle removes v if present, otherwise appends it once.
func toggle[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

// addOnce appends v only when it is absent.
func addOnce[T comparable](set []T, v T) []T {
	if slices.Contains(set, v) {
		return set
	}
	return append(slices.Clone(set), v)
}
