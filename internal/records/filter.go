package records

import "strings"

// SearchState is the live search term and the fields it is matched against.
type SearchState struct {
	Term string
	Keys []string
}

// Active reports whether the search narrows anything.
func (s SearchState) Active() bool {
	return s.Term != ""
}

// Apply filters list with the state's term and keys.
func Apply[T Record](list []T, s SearchState) []T {
	return Filter(list, s.Term, s.Keys)
}

// Filter keeps the records where term is a case-insensitive substring of at
// least one of keys. An empty term returns list itself. Order is preserved.
func Filter[T Record](list []T, term string, keys []string) []T {
	if term == "" {
		return list
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(list))
	for _, item := range list {
		if Matches(item, needle, keys) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether the lowercased needle occurs in any key of item.
func Matches(item Record, needle string, keys []string) bool {
	for _, key := range keys {
		value, _ := item.Field(key)
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

// Keys used by each screen's search box.
var (
	TokenSearchKeys     = []string{"status", "description", "org"}
	LabelSearchKeys     = []string{"name", "description"}
	OrgSearchKeys       = []string{"name"}
	MemberSearchKeys    = []string{"name"}
	BucketSearchKeys    = []string{"name", "retention"}
	DashboardSearchKeys = []string{"name", "description"}
	TaskSearchKeys      = []string{"name", "status", "owner"}
)
