package utils

// SafeSlice returns at most max leading elements of slice.
func SafeSlice[T any](slice []T, max int) []T {
	if max < 0 || len(slice) < max {
		return slice
	}
	return slice[:max]
}
