package face

import "strings"

// CompareNames orders names ignoring case. Stores that collate in SQL use
// the same rule.
func CompareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Compare is the list order of every store: name ignoring case, then ID.
func Compare(a, b Face) int {
	if c := CompareNames(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
