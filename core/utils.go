package core

import (
	"math"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Round rounds `val` to `places` decimal places.
func Round(val float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(val*shift) / shift
}

// Page holds optional pagination parameters for list queries.
// The zero value means "no pagination": the full set is returned.
type Page struct {
	Limit  int
	Offset int
}

// Slice applies the page to an in-memory result set of length n,
// returning the [low, high) bounds.
func (p Page) Slice(n int) (int, int) {
	low := p.Offset
	if low > n {
		low = n
	}
	high := n
	if p.Limit > 0 && low+p.Limit < n {
		high = low + p.Limit
	}
	return low, high
}
