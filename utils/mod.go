package utils

// FindIndex returns the index of the first occurrence of item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the first element with the highest key, or -1
// for an empty slice. Later elements must be strictly greater to win.
func ArgMax[T any, K int | float64](slice []T, key func(T) K) int {
	best := -1
	var bestKey K
	for i, v := range slice {
		if k := key(v); best < 0 || k > bestKey {
			best = i
			bestKey = k
		}
	}
	return best
}
