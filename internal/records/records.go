// Package records holds the ordered in-memory lists behind every admin
// screen and the search filter applied to them.
package records

// Record is a platform resource the admin screens can list and search.
type Record interface {
	RecordID() string
	// Field returns the string value stored under key. Unknown keys report
	// false and are treated as empty by the filter.
	Field(key string) (string, bool)
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf[T Record](list []T, id string) int {
	for i, item := range list {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

// Find returns the record with id.
func Find[T Record](list []T, id string) (T, bool) {
	if i := IndexOf(list, id); i >= 0 {
		return list[i], true
	}
	var zero T
	return zero, false
}

// Clone copies list into a fresh backing array.
func Clone[T any](list []T) []T {
	if list == nil {
		return nil
	}
	out := make([]T, len(list))
	copy(out, list)
	return out
}

// Remove returns list without every record whose id matches.
func Remove[T Record](list []T, id string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if item.RecordID() != id {
			out = append(out, item)
		}
	}
	return out
}

// Replace swaps the record sharing next's id in place. A record that has
// disappeared from the list is appended instead.
func Replace[T Record](list []T, next T) []T {
	out := Clone(list)
	if i := IndexOf(out, next.RecordID()); i >= 0 {
		out[i] = next
		return out
	}
	return append(out, next)
}

// Append adds item at the end without touching list's backing array.
func Append[T Record](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// Insert places item at index i, clamped to the list bounds, without
// touching list's backing array.
func Insert[T any](list []T, i int, item T) []T {
	i = max(0, min(i, len(list)))
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, item)
	return append(out, list[i:]...)
}
