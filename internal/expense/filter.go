package expense

import (
	"strings"
	"time"
)

const dateISOFormat = "2006-01-02"

// Criteria narrows a record list. Empty fields impose no constraint;
// all set fields must match (AND).
type Criteria struct {
	Query    string // case-insensitive substring of title
	Category string // exact match
	DateFrom string // inclusive lower bound, YYYY-MM-DD
	DateTo   string // inclusive upper bound, YYYY-MM-DD
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return c.Query == "" && c.Category == "" && c.DateFrom == "" && c.DateTo == ""
}

// Filter returns the subsequence of records matching c, in input order.
// It never mutates its input; callers re-run it against current state.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !matchesQuery(r, c.Query) {
			continue
		}
		if !matchesCategory(r, c.Category) {
			continue
		}
		if !matchesDateRange(r, c.DateFrom, c.DateTo) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r Record, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), strings.ToLower(query))
}

func matchesCategory(r Record, category string) bool {
	if category == "" {
		return true
	}
	return r.Category == category
}

func matchesDateRange(r Record, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	date, err := time.Parse(dateISOFormat, r.Date)
	if err != nil {
		// Keep unparsable rows visible rather than silently hiding them.
		return true
	}
	if from != "" {
		if lower, err := time.Parse(dateISOFormat, from); err == nil && date.Before(lower) {
			return false
		}
	}
	if to != "" {
		if upper, err := time.Parse(dateISOFormat, to); err == nil && date.After(upper) {
			return false
		}
	}
	return true
}
