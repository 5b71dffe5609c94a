package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jrow/pennybook/internal/config"
	"github.com/jrow/pennybook/internal/expense"
	"github.com/jrow/pennybook/internal/kvstore"
	"github.com/jrow/pennybook/internal/store"
)

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	st := store.Open(kvstore.NewMemory(), true)
	cfg := config.Config{
		UI:     config.UIConfig{CurrencySymbol: "$", Dark: true},
		Export: config.ExportConfig{Filename: "expenses.csv"},
	}
	m := New(st, cfg)
	m.basePath = t.TempDir()
	m.now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	return m, st
}

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m = press(t, m, keyMsg(string(r)))
	}
	return m
}

var errFake = errors.New("boom")

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestAddExpenseFlow(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, keyMsg("a"))
	require.Equal(t, modeForm, m.mode)
	require.Equal(t, "2026-03-14", m.form.fields[fieldDate])

	m = typeText(t, m, "Morning coffee")
	m = press(t, m, tabKey)
	m = typeText(t, m, "3.5")
	m = press(t, m, tabKey)
	m = typeText(t, m, "Food")
	m = press(t, m, enterKey)

	require.Equal(t, modeList, m.mode)
	records := st.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Morning coffee", records[0].Title)
	require.InDelta(t, 3.5, records[0].Amount, 1e-9)
	require.Equal(t, "Food", records[0].Category)
	require.NotEmpty(t, records[0].ID)
	require.Contains(t, m.status, "Added")
}

func TestAddPrependsNewestFirst(t *testing.T) {
	m, st := newTestModel(t)

	for _, title := range []string{"first", "second"} {
		m = press(t, m, keyMsg("a"))
		m = typeText(t, m, title)
		m = press(t, m, tabKey)
		m = typeText(t, m, "1")
		m = press(t, m, enterKey)
	}

	records := st.Records()
	require.Len(t, records, 2)
	require.Equal(t, "second", records[0].Title)
	require.Equal(t, "first", records[1].Title)
}

func TestFormValidationKeepsInput(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, keyMsg("a"))
	m = press(t, m, tabKey)
	m = typeText(t, m, "12.50")
	m = press(t, m, enterKey)

	// Empty title rejects the submit but loses nothing the user typed.
	require.Equal(t, modeForm, m.mode)
	require.Equal(t, "12.50", m.form.fields[fieldAmount])
	require.Equal(t, "2026-03-14", m.form.fields[fieldDate])
	require.NotEmpty(t, m.status)
	require.Empty(t, st.Records())
}

func TestEditExpenseFlow(t *testing.T) {
	m, st := newTestModel(t)
	added, err := st.Add(expense.Record{Title: "Bus", Amount: 2, Category: "Transport", Date: "2026-03-01"})
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, keyMsg("e"))
	require.Equal(t, modeForm, m.mode)
	require.Equal(t, added.ID, m.form.editingID)
	require.Equal(t, "Bus", m.form.fields[fieldTitle])

	m = typeText(t, m, " pass")
	m = press(t, m, enterKey)

	require.Equal(t, modeList, m.mode)
	records := st.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Bus pass", records[0].Title)
	require.Equal(t, added.ID, records[0].ID)
}

func TestCategorySuggestionAcceptFlow(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, keyMsg("a"))
	m = typeText(t, m, "Bus")
	m = press(t, m, tabKey)
	m = typeText(t, m, "2")
	m = press(t, m, tabKey)
	m = typeText(t, m, "Transprot")
	m = press(t, m, enterKey)

	// First submit only nudges; nothing is stored yet.
	require.Equal(t, modeForm, m.mode)
	require.Equal(t, "Transport", m.form.suggestion)
	require.Contains(t, m.status, "Transport")
	require.Empty(t, st.Records())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "Transport", m.form.fields[fieldCategory])

	m = press(t, m, enterKey)
	records := st.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Transport", records[0].Category)
}

func TestCategorySuggestionSecondEnterKeeps(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, keyMsg("a"))
	m = typeText(t, m, "Bus")
	m = press(t, m, tabKey)
	m = typeText(t, m, "2")
	m = press(t, m, tabKey)
	m = typeText(t, m, "Transprot")
	m = press(t, m, enterKey, enterKey)

	records := st.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Transprot", records[0].Category)
	require.Contains(t, st.Categories(), "Transprot")
}

func TestDeleteConfirmDecline(t *testing.T) {
	m, st := newTestModel(t)
	_, err := st.Add(expense.Record{Title: "Keep me", Amount: 1, Category: "Other", Date: "2026-03-01"})
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, keyMsg("d"))
	require.Equal(t, modeConfirm, m.mode)
	require.Equal(t, confirmDelete, m.confirm)

	m = press(t, m, keyMsg("n"))
	require.Equal(t, modeList, m.mode)
	require.Len(t, st.Records(), 1)
	require.Equal(t, "Cancelled.", m.status)
}

func TestDeleteConfirmAccept(t *testing.T) {
	m, st := newTestModel(t)
	_, err := st.Add(expense.Record{Title: "older", Amount: 1, Category: "Other", Date: "2026-03-01"})
	require.NoError(t, err)
	_, err = st.Add(expense.Record{Title: "newer", Amount: 2, Category: "Other", Date: "2026-03-02"})
	require.NoError(t, err)
	m.refresh()

	// Cursor starts on the newest record.
	m = press(t, m, keyMsg("d"), keyMsg("y"))
	records := st.Records()
	require.Len(t, records, 1)
	require.Equal(t, "older", records[0].Title)
}

func TestClearConfirm(t *testing.T) {
	m, st := newTestModel(t)
	_, err := st.Add(expense.Record{Title: "a", Amount: 1, Category: "Snacks", Date: "2026-03-01"})
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, keyMsg("C"), keyMsg("y"))
	require.Empty(t, st.Records())
	require.Contains(t, st.Categories(), "Snacks")
}

func TestFilterFlow(t *testing.T) {
	m, st := newTestModel(t)
	_, err := st.Add(expense.Record{Title: "Coffee", Amount: 3, Category: "Food", Date: "2026-03-01"})
	require.NoError(t, err)
	_, err = st.Add(expense.Record{Title: "Bus ticket", Amount: 2, Category: "Transport", Date: "2026-03-02"})
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, keyMsg("/"))
	require.Equal(t, modeFilter, m.mode)

	m = typeText(t, m, "bus")
	m = press(t, m, enterKey)

	require.Equal(t, modeList, m.mode)
	require.Equal(t, "bus", m.criteria.Query)
	rows := m.visibleRecords()
	require.Len(t, rows, 1)
	require.Equal(t, "Bus ticket", rows[0].Title)
	require.Equal(t, "1 of 2 records match.", m.status)

	// esc in list mode drops the criteria.
	m = press(t, m, escKey)
	require.True(t, m.criteria.IsZero())
	require.Len(t, m.visibleRecords(), 2)
}

func TestFilterCategoryCycle(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, keyMsg("/"), tabKey)
	require.Equal(t, filterCategory, m.filter.focus)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, st.Categories()[0], m.filter.fields[filterCategory])

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, "", m.filter.fields[filterCategory])
}

func TestThemeToggle(t *testing.T) {
	m, st := newTestModel(t)
	require.True(t, st.Dark())

	m = press(t, m, keyMsg("t"))
	require.False(t, st.Dark())
	require.Equal(t, latte().base, m.styles.palette.base)

	m = press(t, m, keyMsg("t"))
	require.True(t, st.Dark())
	require.Equal(t, mocha().base, m.styles.palette.base)
}

func TestImportAppliesOnFileRead(t *testing.T) {
	m, st := newTestModel(t)
	_, err := st.Add(expense.Record{Title: "existing", Amount: 1, Category: "Other", Date: "2026-03-01"})
	require.NoError(t, err)
	m.refresh()

	text := strings.Join([]string{
		"id,title,amount,category,date",
		"a1,Lunch,9.5,Food,2026-02-01",
		"a2,Train,4,Transport,2026-02-02",
	}, "\n")
	m = press(t, m, fileReadMsg{file: "bank.csv", text: text})

	records := st.Records()
	require.Len(t, records, 3)
	require.Equal(t, "Lunch", records[0].Title)
	require.Equal(t, "existing", records[2].Title)
	require.Equal(t, "Imported 2 records from bank.csv", m.status)
}

func TestImportErrorLeavesStore(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, fileReadMsg{file: "bank.csv", err: errFake})
	require.Empty(t, st.Records())
	require.Contains(t, m.status, "Import failed")
}

func TestViewRendersWithoutSize(t *testing.T) {
	m, st := newTestModel(t)
	_, err := st.Add(expense.Record{Title: "Coffee", Amount: 3, Category: "Food", Date: "2026-03-01"})
	require.NoError(t, err)
	m.refresh()

	// Before the first WindowSizeMsg the view must still render.
	out := m.View()
	require.Contains(t, out, appName)
	require.Contains(t, out, "Coffee")

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	out = m.View()
	require.Contains(t, out, "Coffee")
}

func TestWindowScrollFollowsCursor(t *testing.T) {
	m, st := newTestModel(t)
	for i := 0; i < 30; i++ {
		_, err := st.Add(expense.Record{Title: "row", Amount: 1, Category: "Other", Date: "2026-03-01"})
		require.NoError(t, err)
	}
	m.refresh()
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})

	visible := m.visibleRows()
	require.Greater(t, visible, 0)
	for i := 0; i < visible+3; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, visible+3, m.cursor)
	require.GreaterOrEqual(t, m.cursor, m.topIndex)
	require.Less(t, m.cursor, m.topIndex+visible)
}
