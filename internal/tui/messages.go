package tui

import "github.com/charmbracelet/bubbles/list"

// filesLoadedMsg delivers the CSV files found for the import picker.
type filesLoadedMsg struct {
	items []list.Item
	err   error
}

// fileReadMsg delivers an import file's contents. The store mutation
// happens in Update, on the program goroutine, not in the command.
type fileReadMsg struct {
	file string
	text string
	err  error
}

// exportDoneMsg reports the written export file.
type exportDoneMsg struct {
	path string
	err  error
}
