// Package store holds the full ordered record collection plus the
// category registry, persisted as JSON snapshots through a key-value
// backend. It is the single logical writer; there is no locking because
// there is exactly one actor (the user driving the UI).
package store

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jrow/pennybook/internal/expense"
	"github.com/jrow/pennybook/internal/kvstore"
)

// Persisted keys. One snapshot per key, written after every mutation,
// read once at startup.
const (
	keyRecords    = "records"
	keyCategories = "categories"
	keyTheme      = "theme"
)

var ErrNotFound = errors.New("record not found")

// DefaultCategories seeds the registry on a fresh or corrupt store.
func DefaultCategories() []string {
	return []string{
		"Food",
		"Transport",
		"Rent",
		"Utilities",
		"Entertainment",
		"Health",
		"Shopping",
		"Other",
	}
}

// Store is the record store plus category registry. Records are kept
// newest first; categories are unique by exact string with new labels
// prepended and no delete operation.
type Store struct {
	kv         kvstore.Store
	records    []expense.Record
	categories []string
	dark       bool
}

// Open loads the snapshot from kv. Absent or corrupt values fall back
// to the documented defaults; a read failure never surfaces.
func Open(kv kvstore.Store, defaultDark bool) *Store {
	s := &Store{kv: kv, dark: defaultDark}

	if raw, ok, err := kv.Get(keyRecords); err == nil && ok {
		var records []expense.Record
		if json.Unmarshal([]byte(raw), &records) == nil {
			s.records = records
		}
	}

	s.categories = DefaultCategories()
	if raw, ok, err := kv.Get(keyCategories); err == nil && ok {
		var categories []string
		if json.Unmarshal([]byte(raw), &categories) == nil && len(categories) > 0 {
			s.categories = categories
		}
	}

	if raw, ok, err := kv.Get(keyTheme); err == nil && ok {
		var dark bool
		if json.Unmarshal([]byte(raw), &dark) == nil {
			s.dark = dark
		}
	}

	// Registry invariant: every stored category is a registered label,
	// even if the two snapshots drifted apart.
	for _, r := range s.records {
		s.register(r.Category)
	}
	return s
}

// Records returns the full store, newest first.
func (s *Store) Records() []expense.Record {
	out := make([]expense.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Categories returns the registered labels, most recently added first
// within the user-added prefix.
func (s *Store) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Add mints an ID for r, prepends it, registers its category and
// persists the snapshot. The returned record carries the new ID.
func (s *Store) Add(r expense.Record) (expense.Record, error) {
	if r.Category == "" {
		r.Category = expense.DefaultCategory
	}
	r.ID = uuid.NewString()
	s.records = append([]expense.Record{r}, s.records...)
	s.register(r.Category)
	return r, s.persist()
}

// Update replaces the record with r's ID in place.
func (s *Store) Update(r expense.Record) error {
	if r.Category == "" {
		r.Category = expense.DefaultCategory
	}
	for i := range s.records {
		if s.records[i].ID == r.ID {
			s.records[i] = r
			s.register(r.Category)
			return s.persist()
		}
	}
	return ErrNotFound
}

// Delete removes the record with the given ID.
func (s *Store) Delete(id string) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

// Clear removes every record. The category registry is kept.
func (s *Store) Clear() error {
	s.records = nil
	return s.persist()
}

// AddCategory registers a new label, prepended. It reports whether the
// registry changed.
func (s *Store) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || s.registered(name) {
		return false, nil
	}
	s.categories = append([]string{name}, s.categories...)
	return true, s.persistCategories()
}

// ImportCSV decodes text and prepends the records to the store.
// Import is additive: no de-duplication by ID is performed, so
// re-importing the same export doubles the store.
func (s *Store) ImportCSV(text string) (int, error) {
	decoded := expense.DecodeCSV(text)
	if len(decoded) == 0 {
		return 0, nil
	}
	s.records = append(decoded, s.records...)
	for _, r := range decoded {
		s.register(r.Category)
	}
	return len(decoded), s.persist()
}

// ExportCSV serializes the full unfiltered store. Export is a backup,
// independent of any active filter.
func (s *Store) ExportCSV() string {
	return expense.EncodeCSV(s.records)
}

// Dark reports the persisted theme flag (true = dark).
func (s *Store) Dark() bool {
	return s.dark
}

// SetDark persists the theme flag.
func (s *Store) SetDark(dark bool) error {
	s.dark = dark
	data, _ := json.Marshal(s.dark)
	return s.kv.Set(keyTheme, string(data))
}

func (s *Store) register(name string) {
	if name == "" || s.registered(name) {
		return
	}
	s.categories = append([]string{name}, s.categories...)
}

func (s *Store) registered(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Store) persist() error {
	if err := s.persistRecords(); err != nil {
		return err
	}
	return s.persistCategories()
}

func (s *Store) persistRecords() error {
	records := s.records
	if records == nil {
		records = []expense.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(keyRecords, string(data))
}

func (s *Store) persistCategories() error {
	data, err := json.Marshal(s.categories)
	if err != nil {
		return err
	}
	return s.kv.Set(keyCategories, string(data))
}
