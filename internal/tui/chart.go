package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jrow/pennybook/internal/expense"
)

const chartLabelWidth = 14

// renderBreakdown draws one horizontal bar per category subtotal,
// scaled to the largest absolute subtotal. Bars cycle through the
// palette's accent colors; labels are truncated, never wrapped.
func renderBreakdown(byCategory []expense.CategoryTotal, width int, st styles) string {
	if len(byCategory) == 0 {
		return st.muted.Render("(no data)")
	}

	maxAbs := 0.0
	for _, ct := range byCategory {
		if v := math.Abs(ct.Amount); v > maxAbs {
			maxAbs = v
		}
	}
	if maxAbs <= 0 {
		maxAbs = 1
	}

	barSpace := width - chartLabelWidth - 12
	if barSpace < 5 {
		barSpace = 5
	}

	lines := make([]string, 0, len(byCategory))
	for i, ct := range byCategory {
		w := int(math.Abs(ct.Amount) / maxAbs * float64(barSpace))
		if w < 1 {
			w = 1
		}
		color := st.palette.bars[i%len(st.palette.bars)]
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", w))
		label := padRight(truncate(ct.Category, chartLabelWidth), chartLabelWidth)
		amount := fmt.Sprintf("%10.2f", ct.Amount)
		lines = append(lines, st.label.Render(label)+st.value.Render(amount)+" "+bar)
	}
	return strings.Join(lines, "\n")
}
