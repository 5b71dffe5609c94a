package store

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrow/pennybook/internal/expense"
	"github.com/jrow/pennybook/internal/kvstore"
)

func openTestStore(t *testing.T) (*Store, *kvstore.Memory) {
	t.Helper()
	kv := kvstore.NewMemory()
	return Open(kv, true), kv
}

func TestAddMintsIDAndPrepends(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	coffee, err := s.Add(expense.Record{Title: "Coffee", Amount: 3.5, Category: "Other", Date: "2024-01-05"})
	require.NoError(t, err)
	require.NotEmpty(t, coffee.ID)
	require.Equal(t, 3.5, coffee.Amount)

	rent, err := s.Add(expense.Record{Title: "Rent", Amount: 1200, Category: "Rent", Date: "2024-01-15"})
	require.NoError(t, err)
	require.NotEqual(t, coffee.ID, rent.ID)

	records := s.Records()
	require.Len(t, records, 2)
	require.Equal(t, "Rent", records[0].Title, "newest record comes first")
	require.Equal(t, "Coffee", records[1].Title)
}

func TestAddRegistersNewCategory(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	_, err := s.Add(expense.Record{Title: "Kibble", Amount: 30, Category: "Pets", Date: "2024-01-05"})
	require.NoError(t, err)

	cats := s.Categories()
	require.Equal(t, "Pets", cats[0], "new categories are prepended")
}

func TestAddDefaultsEmptyCategory(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	r, err := s.Add(expense.Record{Title: "Misc", Amount: 1, Date: "2024-01-05"})
	require.NoError(t, err)
	require.Equal(t, expense.DefaultCategory, r.Category)
}

func TestUpdateReplacesByID(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	r, err := s.Add(expense.Record{Title: "Coffee", Amount: 3.5, Category: "Food", Date: "2024-01-05"})
	require.NoError(t, err)

	r.Title = "Espresso"
	r.Amount = 4
	require.NoError(t, s.Update(r))

	records := s.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Espresso", records[0].Title)
	require.Equal(t, r.ID, records[0].ID, "update never changes the ID")
}

func TestUpdateUnknownIDFails(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	err := s.Update(expense.Record{ID: "nope", Title: "x", Date: "2024-01-01"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndClear(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	a, _ := s.Add(expense.Record{Title: "A", Amount: 1, Date: "2024-01-01"})
	_, _ = s.Add(expense.Record{Title: "B", Amount: 2, Date: "2024-01-02"})

	require.NoError(t, s.Delete(a.ID))
	require.Len(t, s.Records(), 1)
	require.ErrorIs(t, s.Delete(a.ID), ErrNotFound)

	require.NoError(t, s.Clear())
	require.Empty(t, s.Records())
	require.NotEmpty(t, s.Categories(), "clear keeps the registry")
}

func TestSnapshotRoundTripThroughKV(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	s := Open(kv, true)
	_, err := s.Add(expense.Record{Title: "Coffee", Amount: 3.5, Category: "Food", Date: "2024-01-05"})
	require.NoError(t, err)
	require.NoError(t, s.SetDark(false))

	reopened := Open(kv, true)
	records := reopened.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Coffee", records[0].Title)
	require.False(t, reopened.Dark())
}

func TestCorruptValuesFallBackToDefaults(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set("records", "{not json"))
	require.NoError(t, kv.Set("categories", "42"))
	require.NoError(t, kv.Set("theme", "maybe"))

	s := Open(kv, true)
	require.Empty(t, s.Records())
	require.Equal(t, DefaultCategories(), s.Categories())
	require.True(t, s.Dark())
}

func TestImportIsAdditiveAndReimportDoubles(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	_, err := s.Add(expense.Record{Title: "Coffee", Amount: 3.5, Category: "Food", Date: "2024-01-05"})
	require.NoError(t, err)

	exported := s.ExportCSV()
	n, err := s.ImportCSV(exported)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, s.Records(), 2, "import never de-duplicates")

	records := s.Records()
	require.Equal(t, records[0].ID, records[1].ID)
}

func TestImportPrependsAndRegistersCategories(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	_, err := s.Add(expense.Record{Title: "Old", Amount: 1, Category: "Food", Date: "2024-01-01"})
	require.NoError(t, err)

	csv := "id,title,amount,category,date\n\"i1\",\"Vet visit\",\"80\",\"Pets\",\"2024-02-01\"\n"
	n, err := s.ImportCSV(csv)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	records := s.Records()
	require.Equal(t, "Vet visit", records[0].Title, "imported records are prepended")
	require.Contains(t, s.Categories(), "Pets")
}

func TestImportNaNAmountStaysFiniteAndPersists(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	s := Open(kv, true)

	csv := "id,title,amount,category,date\n\"1\",\"Mystery\",\"NaN\",\"Other\",\"2024-01-01\"\n"
	n, err := s.ImportCSV(csv)
	require.NoError(t, err, "a NaN amount must not break the snapshot write")
	require.Equal(t, 1, n)

	records := s.Records()
	require.Len(t, records, 1)
	require.False(t, math.IsNaN(records[0].Amount))
	require.Equal(t, 0.0, records[0].Amount)

	// In-memory state and the persisted snapshot must agree.
	reopened := Open(kv, true)
	require.Len(t, reopened.Records(), 1)
	require.Equal(t, 0.0, reopened.Records()[0].Amount)
}

func TestExportIsFullStore(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	_, _ = s.Add(expense.Record{Title: "A", Amount: 1, Category: "Food", Date: "2024-01-01"})
	_, _ = s.Add(expense.Record{Title: "B", Amount: 2, Category: "Rent", Date: "2024-01-02"})

	decoded := expense.DecodeCSV(s.ExportCSV())
	require.Len(t, decoded, 2)
}

func TestPersistedRecordsShapeMatchesContract(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	s := Open(kv, true)
	_, err := s.Add(expense.Record{Title: "Coffee", Amount: 3.5, Category: "Food", Date: "2024-01-05"})
	require.NoError(t, err)

	raw, ok, err := kv.Get("records")
	require.NoError(t, err)
	require.True(t, ok)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &rows))
	require.Len(t, rows, 1)
	for _, field := range []string{"id", "title", "amount", "category", "date"} {
		require.Contains(t, rows[0], field)
	}
}

func TestAddCategory(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	added, err := s.AddCategory("Travel")
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, "Travel", s.Categories()[0])

	added, err = s.AddCategory("Travel")
	require.NoError(t, err)
	require.False(t, added, "uniqueness is by exact string match")

	added, err = s.AddCategory("  ")
	require.NoError(t, err)
	require.False(t, added)
}
