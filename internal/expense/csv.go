package expense

import (
	"math"
	"strconv"
	"strings"
)

// CSVHeader is the fixed first line of every export.
const CSVHeader = "id,title,amount,category,date"

// EncodeCSV serializes records for export. Every field is wrapped in
// double quotes with internal quotes doubled. Export always operates on
// the full unfiltered store; it is a backup, not a view.
//
// Known limitation: the decoder splits rows on raw commas, so a quoted
// field containing a comma encodes fine but will not decode back into
// the same row. This asymmetry is intentional and covered by tests.
func EncodeCSV(records []Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, CSVHeader)
	for _, r := range records {
		fields := []string{
			quoteField(r.ID),
			quoteField(r.Title),
			quoteField(strconv.FormatFloat(r.Amount, 'f', -1, 64)),
			quoteField(r.Category),
			quoteField(r.Date),
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// DecodeCSV parses export-format text back into records. Rows are split
// positionally on commas, the first line is discarded as a header, blank
// lines are skipped, a single layer of surrounding quotes is stripped
// from each field, and unparsable amounts coerce to zero. No row is ever
// rejected: garbage input yields garbage records, never an error.
func DecodeCSV(text string) []Record {
	var out []Record
	first := true
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			continue
		}
		fields := strings.Split(line, ",")
		// ParseFloat accepts "NaN" and "Inf", which would poison totals
		// and break the JSON snapshot. Same finite-only rule as ParseInput.
		amount, err := strconv.ParseFloat(unquoteField(fieldAt(fields, 2)), 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}
		out = append(out, Record{
			ID:       unquoteField(fieldAt(fields, 0)),
			Title:    unquoteField(fieldAt(fields, 1)),
			Amount:   amount,
			Category: unquoteField(fieldAt(fields, 3)),
			Date:     unquoteField(fieldAt(fields, 4)),
		})
	}
	return out
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// unquoteField strips one layer of surrounding double quotes if present.
// Doubled internal quotes are left as-is; the decoder does not unescape.
func unquoteField(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
