package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// stampModal draws modal centered over the top viewHeight rows of base,
// leaving the rows below (status and footer) untouched. Both strings
// may carry ANSI styling; positions are measured in cells, not bytes.
func stampModal(base, modal string, width, viewHeight int) string {
	baseLines := strings.Split(base, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := 0
	for _, line := range modalLines {
		if w := ansi.StringWidth(line); w > modalWidth {
			modalWidth = w
		}
	}
	x := (width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (viewHeight - len(modalLines)) / 2
	if y < 0 {
		y = 0
	}

	for i, line := range modalLines {
		row := y + i
		if row >= viewHeight || row >= len(baseLines) {
			break
		}
		baseLines[row] = spliceLine(baseLines[row], padRight(line, modalWidth), x, width)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine overwrites the cells [x, x+width(insert)) of line with
// insert, keeping the cells on either side in place.
func spliceLine(line, insert string, x, width int) string {
	line = padRight(line, width)

	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(insert)
	right := ansi.TruncateLeft(line, end, "")
	if gap := width - end - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + insert + right
}

// padRight pads s with spaces to the given cell width.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate cuts s to width cells, ending in an ellipsis when it was longer.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
