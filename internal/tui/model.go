package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrow/pennybook/internal/config"
	"github.com/jrow/pennybook/internal/expense"
	"github.com/jrow/pennybook/internal/store"
)

const appName = "Pennybook"

// ---------------------------------------------------------------------------
// Modes
// ---------------------------------------------------------------------------

type mode int

const (
	modeList mode = iota
	modeForm
	modeFilter
	modeConfirm
	modePicker
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmClear
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the single-screen Bubble Tea program: record table plus
// overview on top, with form, filter, confirm and import-picker
// overlays. All pipeline work is recomputed from the store snapshot and
// the active criteria on every frame.
type Model struct {
	store  *store.Store
	cfg    config.Config
	keys   keyMap
	styles styles

	mode     mode
	records  []expense.Record
	criteria expense.Criteria

	cursor   int
	topIndex int
	width    int
	height   int
	status   string

	form   formState
	filter filterState

	confirm      confirmAction
	confirmID    string
	confirmTitle string

	fileList  list.Model
	listReady bool
	basePath  string

	now func() time.Time
}

func New(st *store.Store, cfg config.Config) Model {
	styles := newStyles(paletteFor(st.Dark()))
	cwd, _ := os.Getwd()
	m := Model{
		store:    st,
		cfg:      cfg,
		keys:     newKeyMap(),
		styles:   styles,
		basePath: cwd,
		fileList: newFilePicker(styles),
		now:      time.Now,
	}
	m.refresh()
	m.status = "Ready. Press a to add, / to filter, i to import."
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the store snapshot and clamps the cursor into the
// filtered view.
func (m *Model) refresh() {
	m.records = m.store.Records()
	rows := m.visibleRecords()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorInWindow()
}

// visibleRecords is the filtered projection the table and overview
// render from. It never mutates the store.
func (m Model) visibleRecords() []expense.Record {
	return expense.Filter(m.records, m.criteria)
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePicker()
		m.ensureCursorInWindow()
		return m, nil
	case filesLoadedMsg:
		return m.handleFilesLoaded(msg)
	case fileReadMsg:
		return m.handleFileRead(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modePicker:
			return m.updatePicker(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Message handlers
// ---------------------------------------------------------------------------

func (m Model) handleFilesLoaded(msg filesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("File scan error: %v", msg.err)
		m.mode = modeList
		return m, nil
	}
	m.fileList.SetItems(msg.items)
	m.listReady = true
	return m, nil
}

func (m Model) handleFileRead(msg fileReadMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("Import failed: %v", msg.err)
		return m, nil
	}
	count, err := m.store.ImportCSV(msg.text)
	if err != nil {
		m.status = fmt.Sprintf("Import failed: %v", err)
		return m, nil
	}
	m.refresh()
	m.status = fmt.Sprintf("Imported %d records from %s", count, msg.file)
	return m, nil
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("Export failed: %v", msg.err)
		return m, nil
	}
	m.status = fmt.Sprintf("Exported to %s", msg.path)
	return m, nil
}

// ---------------------------------------------------------------------------
// List mode
// ---------------------------------------------------------------------------

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.visibleRecords()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.topIndex {
				m.topIndex--
			}
			if m.topIndex < 0 {
				m.topIndex = 0
			}
		}
		return m, nil
	case "down", "j", "ctrl+n":
		if m.cursor < len(rows)-1 {
			m.cursor++
			visible := m.visibleRows()
			if visible <= 0 {
				visible = 1
			}
			if m.cursor >= m.topIndex+visible {
				m.topIndex++
			}
			maxTop := len(rows) - visible
			if maxTop < 0 {
				maxTop = 0
			}
			if m.topIndex > maxTop {
				m.topIndex = maxTop
			}
		}
		return m, nil
	case "a":
		m.form = emptyForm(m.now().Format("2006-01-02"))
		m.mode = modeForm
		m.status = "New expense."
		return m, nil
	case "e", "enter":
		if m.cursor < len(rows) {
			m.form = formForRecord(rows[m.cursor])
			m.mode = modeForm
			m.status = "Editing expense."
		}
		return m, nil
	case "d":
		if m.cursor < len(rows) {
			m.confirm = confirmDelete
			m.confirmID = rows[m.cursor].ID
			m.confirmTitle = rows[m.cursor].Title
			m.mode = modeConfirm
		}
		return m, nil
	case "C":
		if len(m.records) > 0 {
			m.confirm = confirmClear
			m.mode = modeConfirm
		}
		return m, nil
	case "/":
		m.filter = filterForCriteria(m.criteria)
		m.mode = modeFilter
		return m, nil
	case "esc":
		if !m.criteria.IsZero() {
			m.criteria = expense.Criteria{}
			m.cursor = 0
			m.topIndex = 0
			m.status = "Filter cleared."
		}
		return m, nil
	case "i":
		m.mode = modePicker
		m.listReady = false
		m.fileList.Select(0)
		return m, loadFilesCmd(m.basePath)
	case "x":
		m.status = "Exporting..."
		return m, writeExportCmd(m.store.ExportCSV(), m.cfg.Export.Filename, m.basePath)
	case "t":
		dark := !m.store.Dark()
		if err := m.store.SetDark(dark); err != nil {
			m.status = fmt.Sprintf("Theme not saved: %v", err)
		}
		m.applyTheme(dark)
		return m, nil
	}
	return m, nil
}

func (m *Model) applyTheme(dark bool) {
	m.styles = newStyles(paletteFor(dark))
	m.fileList.Styles.Title = m.styles.title
	m.fileList.SetDelegate(fileItemDelegate{cursor: m.styles.cursor})
}

// ---------------------------------------------------------------------------
// Form mode
// ---------------------------------------------------------------------------

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.status = "Discarded."
		return m, nil
	case tea.KeyTab:
		m.form.nextField()
		return m, nil
	case tea.KeyShiftTab:
		m.form.prevField()
		return m, nil
	case tea.KeyCtrlY:
		if m.form.suggestion != "" {
			m.form.fields[fieldCategory] = m.form.suggestion
			m.form.suggestion = ""
			m.status = "Category replaced."
		}
		return m, nil
	case tea.KeyEnter:
		return m.submitForm()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		m.form.backspace()
		return m, nil
	case tea.KeySpace:
		m.form.typeRunes(" ")
		return m, nil
	case tea.KeyRunes:
		m.form.typeRunes(string(msg.Runes))
		return m, nil
	}
	return m, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	r, err := m.form.record()
	if err != nil {
		// Blocking notification: input stays, nothing mutates.
		m.status = err.Error()
		return m, nil
	}

	// Nudge toward an existing category once; a second enter keeps the
	// typed label and registers it.
	if m.form.suggestion == "" {
		if sugg, ok := m.store.SuggestCategory(r.Category); ok {
			m.form.suggestion = sugg
			m.status = fmt.Sprintf("Unknown category %q. ctrl+y to use %q, enter to keep.", r.Category, sugg)
			return m, nil
		}
	}

	if m.form.editingID == "" {
		added, err := m.store.Add(r)
		if err != nil {
			m.status = fmt.Sprintf("Save failed: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Added %q.", added.Title)
	} else {
		if err := m.store.Update(r); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				m.status = "Record no longer exists."
			} else {
				m.status = fmt.Sprintf("Save failed: %v", err)
			}
			m.mode = modeList
			m.refresh()
			return m, nil
		}
		m.status = fmt.Sprintf("Updated %q.", r.Title)
	}
	m.mode = modeList
	m.refresh()
	return m, nil
}

// ---------------------------------------------------------------------------
// Filter mode
// ---------------------------------------------------------------------------

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.status = "Filter unchanged."
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.filter.nextField()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.filter.prevField()
		return m, nil
	case tea.KeyRight:
		if m.filter.focus == filterCategory {
			m.filter.cycleCategory(m.store.Categories(), false)
		}
		return m, nil
	case tea.KeyLeft:
		if m.filter.focus == filterCategory {
			m.filter.cycleCategory(m.store.Categories(), true)
		}
		return m, nil
	case tea.KeyEnter:
		m.criteria = m.filter.criteria()
		m.cursor = 0
		m.topIndex = 0
		m.mode = modeList
		rows := m.visibleRecords()
		if m.criteria.IsZero() {
			m.status = "Filter cleared."
		} else {
			m.status = fmt.Sprintf("%d of %d records match.", len(rows), len(m.records))
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		m.filter.backspace()
		return m, nil
	case tea.KeySpace:
		m.filter.typeRunes(" ")
		return m, nil
	case tea.KeyRunes:
		m.filter.typeRunes(string(msg.Runes))
		return m, nil
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Confirm mode
// ---------------------------------------------------------------------------

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		switch m.confirm {
		case confirmDelete:
			if err := m.store.Delete(m.confirmID); err != nil {
				m.status = fmt.Sprintf("Delete failed: %v", err)
			} else {
				m.status = fmt.Sprintf("Deleted %q.", m.confirmTitle)
			}
		case confirmClear:
			if err := m.store.Clear(); err != nil {
				m.status = fmt.Sprintf("Clear failed: %v", err)
			} else {
				m.status = "All records cleared."
			}
		}
		m.confirm = confirmNone
		m.mode = modeList
		m.refresh()
		return m, nil
	case "n", "esc":
		// Declining leaves the store untouched.
		m.confirm = confirmNone
		m.mode = modeList
		m.status = "Cancelled."
		return m, nil
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Import picker mode
// ---------------------------------------------------------------------------

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		item, ok := m.fileList.SelectedItem().(fileItem)
		if !ok || item.name == "" {
			m.status = "No file selected."
			return m, nil
		}
		m.status = "Importing..."
		m.mode = modeList
		return m, readFileCmd(item.name, m.basePath)
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

// ---------------------------------------------------------------------------
// Misc helpers
// ---------------------------------------------------------------------------

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
