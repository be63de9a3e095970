package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// RemoveFirst drops the first occurrence of item, reporting whether one was found.
// The result shares the backing array of slice.
func RemoveFirst[T comparable](slice []T, item T) ([]T, bool) {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice, false
	}
	return append(slice[:i], slice[i+1:]...), true
}

// SwapRemove drops the element at i without preserving order.
func SwapRemove[T any](slice []T, i int) []T {
	last := len(slice) - 1
	slice[i] = slice[last]
	return slice[:last]
}

// Count returns how many elements satisfy keep.
func Count[T any](slice []T, keep func(T) bool) int {
	n := 0
	for _, v := range slice {
		if keep(v) {
			n++
		}
	}
	return n
}
