package expense

import "math"

// CategoryTotal is one per-category subtotal, rounded for display.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// Summary holds the aggregates over a record subsequence. Total carries
// full precision; ByCategory subtotals are rounded to 2 decimal places
// and appear in first-seen input order, one entry per distinct category.
type Summary struct {
	Total      float64
	ByCategory []CategoryTotal
}

// Summarize computes aggregates over its input only. Run it on the
// filter output so totals reflect the active filter.
func Summarize(records []Record) Summary {
	var s Summary
	subtotals := make(map[string]float64, len(records))
	var order []string
	for _, r := range records {
		s.Total += r.Amount
		if _, seen := subtotals[r.Category]; !seen {
			order = append(order, r.Category)
		}
		subtotals[r.Category] += r.Amount
	}
	s.ByCategory = make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		s.ByCategory = append(s.ByCategory, CategoryTotal{
			Category: cat,
			Amount:   round2(subtotals[cat]),
		})
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
