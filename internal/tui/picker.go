package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// File-picker item (implements list.Item)
// ---------------------------------------------------------------------------

type fileItem struct {
	name string
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.name }

type fileItemDelegate struct {
	cursor lipgloss.Style
}

func (d fileItemDelegate) Height() int  { return 1 }
func (d fileItemDelegate) Spacing() int { return 0 }
func (d fileItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d fileItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(fileItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.cursor.Render("> ")
	}
	line := fmt.Sprintf("%s%s", prefix, entry.name)
	fmt.Fprint(w, padRight(line, m.Width()))
}

func newFilePicker(st styles) list.Model {
	listModel := list.New([]list.Item{}, fileItemDelegate{cursor: st.cursor}, 0, 0)
	listModel.Title = "Import CSV"
	listModel.Styles.Title = st.title
	listModel.Styles.NoItems = lipgloss.NewStyle()
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(false)
	listModel.SetShowHelp(false)
	listModel.DisableQuitKeybindings()
	return listModel
}

// loadFilesCmd returns a Bubble Tea command that scans basePath for CSV files.
func loadFilesCmd(basePath string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(basePath)
		if err != nil {
			return filesLoadedMsg{err: fmt.Errorf("read dir: %w", err)}
		}
		var items []list.Item
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasSuffix(strings.ToLower(name), ".csv") {
				items = append(items, fileItem{name: name})
			}
		}
		return filesLoadedMsg{items: items, err: nil}
	}
}

// readFileCmd returns a command that reads an import file's contents.
// This is the only asynchronous boundary: a single-shot completion, no
// cancellation or timeout semantics.
func readFileCmd(filename, basePath string) tea.Cmd {
	return func() tea.Msg {
		path := filename
		if !filepath.IsAbs(path) {
			path = filepath.Join(basePath, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fileReadMsg{file: filepath.Base(path), err: fmt.Errorf("open csv: %w", err)}
		}
		return fileReadMsg{file: filepath.Base(path), text: string(data)}
	}
}

// writeExportCmd returns a command that writes the export snapshot.
func writeExportCmd(text, filename, basePath string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(basePath, filename)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return exportDoneMsg{path: path, err: fmt.Errorf("write csv: %w", err)}
		}
		return exportDoneMsg{path: path}
	}
}
