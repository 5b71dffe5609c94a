package expense

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultCategory is assigned when a record is created without one.
const DefaultCategory = "Other"

// Record is one expense entry. The ID is minted once at creation and
// never changes; every other field is replaced wholesale on update.
type Record struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"` // YYYY-MM-DD
}

// Form validation errors, surfaced to the user as status messages.
var (
	ErrEmptyTitle = errors.New("title is required")
	ErrBadAmount  = errors.New("amount must be a number")
	ErrNoDate     = errors.New("date is required")
)

// ParseInput validates raw form fields and builds a Record without an ID.
// A failed parse leaves no partial state behind; the caller keeps the
// pending input and shows the error.
func ParseInput(title, amount, category, date string) (Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Record{}, ErrEmptyTitle
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return Record{}, ErrBadAmount
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return Record{}, ErrNoDate
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Record{
		Title:    title,
		Amount:   val,
		Category: category,
		Date:     date,
	}, nil
}
