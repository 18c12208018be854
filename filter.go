package recon

import (
	"fmt"
	"strings"
)

// TypeFilter selects breaks by classification.
type TypeFilter string

const (
	AllTypes     TypeFilter = "All Types"
	OnlyMismatch TypeFilter = "Mismatch"
	OnlyOrphan   TypeFilter = "Orphan"
)

// ParseTypeFilter accepts "All Types" (or "all", or the empty string),
// "Mismatch" and "Orphan", case-insensitive.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all types":
		return AllTypes, nil
	case "mismatch":
		return OnlyMismatch, nil
	case "orphan":
		return OnlyOrphan, nil
	}
	return "", fmt.Errorf("unknown break type %q, want All Types, Mismatch or Orphan", s)
}

// Filter is a projection over a list of breaks.
// Its zero value accepts every break.
type Filter struct {
	Type    TypeFilter
	TradeID string // case-insensitive substring of the TradeID
}

// Accept reports whether b satisfies both predicates of the filter.
func (f Filter) Accept(b Break) bool {
	switch f.Type {
	case OnlyMismatch:
		if b.Type != Mismatch {
			return false
		}
	case OnlyOrphan:
		if b.Type != Orphan {
			return false
		}
	}
	return strings.Contains(strings.ToLower(b.TradeID), strings.ToLower(f.TradeID))
}

// Apply returns the breaks accepted by the filter, in their original order.
// The input slice is never modified.
func (f Filter) Apply(breaks []Break) []Break {
	out := make([]Break, 0, len(breaks))
	for _, b := range breaks {
		if f.Accept(b) {
			out = append(out, b)
		}
	}
	return out
}

// Filtered returns a copy of the report holding only the breaks accepted by f.
// The summary still describes the whole run.
func (r Report) Filtered(f Filter) Report {
	r.Breaks = f.Apply(r.Breaks)
	return r
}
