package tui

import (
	"github.com/jrow/pennybook/internal/expense"
)

// ---------------------------------------------------------------------------
// Add/edit form
// ---------------------------------------------------------------------------

const (
	fieldTitle = iota
	fieldAmount
	fieldCategory
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Amount", "Category", "Date"}

// formState holds the pending add/edit input. Validation failures keep
// the state intact so nothing the user typed is lost.
type formState struct {
	fields    [fieldCount]string
	focus     int
	editingID string // empty means add

	// suggestion is set when submit hit an unregistered category that
	// closely matches an existing one; the next enter keeps the typed
	// label, ctrl+y swaps in the suggestion.
	suggestion string
}

func emptyForm(today string) formState {
	var f formState
	f.fields[fieldDate] = today
	return f
}

func formForRecord(r expense.Record) formState {
	var f formState
	f.fields[fieldTitle] = r.Title
	f.fields[fieldAmount] = formatAmount(r.Amount)
	f.fields[fieldCategory] = r.Category
	f.fields[fieldDate] = r.Date
	f.editingID = r.ID
	return f
}

func (f *formState) nextField() {
	f.focus = (f.focus + 1) % fieldCount
}

func (f *formState) prevField() {
	f.focus = (f.focus - 1 + fieldCount) % fieldCount
}

func (f *formState) typeRunes(s string) {
	f.fields[f.focus] += s
	f.suggestion = ""
}

func (f *formState) backspace() {
	field := f.fields[f.focus]
	if len(field) > 0 {
		runes := []rune(field)
		f.fields[f.focus] = string(runes[:len(runes)-1])
	}
	f.suggestion = ""
}

// record validates the pending input. The returned record has no ID for
// adds and the original ID for edits.
func (f *formState) record() (expense.Record, error) {
	r, err := expense.ParseInput(f.fields[fieldTitle], f.fields[fieldAmount], f.fields[fieldCategory], f.fields[fieldDate])
	if err != nil {
		return expense.Record{}, err
	}
	r.ID = f.editingID
	return r, nil
}

// ---------------------------------------------------------------------------
// Filter form
// ---------------------------------------------------------------------------

const (
	filterQuery = iota
	filterCategory
	filterFrom
	filterTo
	filterFieldCount
)

var filterLabels = [filterFieldCount]string{"Search", "Category", "From", "To"}

type filterState struct {
	fields [filterFieldCount]string
	focus  int
}

func filterForCriteria(c expense.Criteria) filterState {
	var f filterState
	f.fields[filterQuery] = c.Query
	f.fields[filterCategory] = c.Category
	f.fields[filterFrom] = c.DateFrom
	f.fields[filterTo] = c.DateTo
	return f
}

func (f filterState) criteria() expense.Criteria {
	return expense.Criteria{
		Query:    f.fields[filterQuery],
		Category: f.fields[filterCategory],
		DateFrom: f.fields[filterFrom],
		DateTo:   f.fields[filterTo],
	}
}

func (f *filterState) nextField() {
	f.focus = (f.focus + 1) % filterFieldCount
}

func (f *filterState) prevField() {
	f.focus = (f.focus - 1 + filterFieldCount) % filterFieldCount
}

func (f *filterState) typeRunes(s string) {
	f.fields[f.focus] += s
}

func (f *filterState) backspace() {
	field := f.fields[f.focus]
	if len(field) > 0 {
		runes := []rune(field)
		f.fields[f.focus] = string(runes[:len(runes)-1])
	}
}

// cycleCategory steps the category field through the registered labels,
// starting and ending at "" (no constraint).
func (f *filterState) cycleCategory(categories []string, backwards bool) {
	options := append([]string{""}, categories...)
	current := 0
	for i, c := range options {
		if c == f.fields[filterCategory] {
			current = i
			break
		}
	}
	if backwards {
		current = (current - 1 + len(options)) % len(options)
	} else {
		current = (current + 1) % len(options)
	}
	f.fields[filterCategory] = options[current]
}
