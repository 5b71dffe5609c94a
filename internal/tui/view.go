package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrow/pennybook/internal/expense"
)

const maxChartBars = 8

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() string {
	rows := m.visibleRecords()
	summary := expense.Summarize(rows)

	header := m.renderHeader()
	statusLine := m.renderStatus(m.status)
	footer := m.renderFooter(m.footerBindings())

	overview := m.renderSection("Overview", m.renderOverview(summary, len(rows)))
	table := m.renderSection("Expenses", m.renderTable(rows))
	body := header + "\n\n" + overview + "\n\n" + table

	switch m.mode {
	case modeForm:
		return m.composeOverlay(body, statusLine, footer, m.formView())
	case modeFilter:
		return m.composeOverlay(body, statusLine, footer, m.filterView())
	case modeConfirm:
		return m.composeOverlay(body, statusLine, footer, m.confirmView())
	case modePicker:
		return m.composeOverlay(body, statusLine, footer, m.pickerView())
	}
	return m.placeWithFooter(body, statusLine, footer)
}

func (m Model) footerBindings() []key.Binding {
	switch m.mode {
	case modeForm, modeFilter:
		return m.keys.formBindings()
	case modeConfirm:
		return m.keys.confirmBindings()
	case modePicker:
		return m.keys.pickerBindings()
	}
	return m.keys.listBindings()
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func (m Model) renderHeader() string {
	name := m.styles.headerApp.Render(appName)
	content := name
	if !m.criteria.IsZero() {
		content += "  " + m.styles.status.Render("filter: "+describeCriteria(m.criteria))
	}
	if m.width <= 0 {
		return m.styles.headerBar.Render(content)
	}
	return m.styles.headerBar.Width(m.width).Render(content)
}

func describeCriteria(c expense.Criteria) string {
	var parts []string
	if c.Query != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Query))
	}
	if c.Category != "" {
		parts = append(parts, c.Category)
	}
	if c.DateFrom != "" {
		parts = append(parts, "from "+c.DateFrom)
	}
	if c.DateTo != "" {
		parts = append(parts, "to "+c.DateTo)
	}
	return strings.Join(parts, ", ")
}

func (m Model) renderSection(title, content string) string {
	contentWidth := m.sectionContentWidth()
	header := padRight(m.styles.title.Render(title), contentWidth)
	separator := m.styles.separator.Render(strings.Repeat("─", contentWidth))
	sectionContent := header + "\n" + separator + "\n" + content
	section := m.styles.listBox.Width(m.sectionWidth()).Render(sectionContent)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

func (m Model) renderFooter(bindings []key.Binding) string {
	// Build help text where every character carries the footer background.
	bg := m.styles.palette.mantle
	keyStyle := m.styles.helpKey.Background(bg)
	descStyle := m.styles.helpDesc.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if m.width == 0 {
		return m.styles.footer.Render(content)
	}
	return m.styles.footer.Width(m.width).Render(content)
}

func (m Model) renderStatus(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	if m.width == 0 {
		return m.styles.statusBar.Render(flat)
	}
	return m.styles.statusBar.Width(m.width).Render(flat)
}

func (m Model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Ensure every line is full-width to prevent ghosting from previous frames
	lines := strings.Split(main, "\n")
	for i, line := range lines {
		lines[i] = padRight(line, m.width)
	}
	main = strings.Join(lines, "\n")
	return main + "\n" + statusLine + "\n" + footer
}

func (m Model) composeOverlay(base, statusLine, footer, content string) string {
	baseView := m.placeWithFooter(base, statusLine, footer)
	if m.height == 0 || m.width == 0 {
		return baseView + "\n\n" + content
	}
	modalContent := lipgloss.NewStyle().Width(min(60, m.width-10)).Render(content)
	modal := m.styles.modal.Render(modalContent)
	targetHeight := m.height - 2
	if targetHeight < 1 {
		targetHeight = 1
	}
	return stampModal(baseView, modal, m.width, targetHeight)
}

// ---------------------------------------------------------------------------
// Overview + table
// ---------------------------------------------------------------------------

func (m Model) renderOverview(summary expense.Summary, matched int) string {
	width := m.listContentWidth()

	totalLabel := "Total"
	if !m.criteria.IsZero() {
		totalLabel = "Filtered total"
	}
	lines := []string{
		m.styles.label.Render(fmt.Sprintf("%-14s", totalLabel)) + " " +
			m.styles.value.Render(fmt.Sprintf("%s%12.2f", m.cfg.UI.CurrencySymbol, summary.Total)),
		m.styles.label.Render(fmt.Sprintf("%-14s", "Records")) + " " +
			m.styles.value.Render(fmt.Sprintf("%13d", matched)) +
			m.styles.muted.Render(fmt.Sprintf(" of %d", len(m.records))),
	}

	byCategory := summary.ByCategory
	extra := 0
	if len(byCategory) > maxChartBars {
		extra = len(byCategory) - maxChartBars
		byCategory = byCategory[:maxChartBars]
	}
	if len(byCategory) > 0 {
		lines = append(lines, "", renderBreakdown(byCategory, width, m.styles))
	}
	if extra > 0 {
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("… and %d more categories", extra)))
	}
	for i, line := range lines {
		lines[i] = padRight(line, width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTable(rows []expense.Record) string {
	width := m.listContentWidth()
	cursorWidth := 2
	dateWidth := 10
	amountWidth := 12
	categoryWidth := 14
	titleWidth := width - dateWidth - amountWidth - categoryWidth - cursorWidth - 8
	if titleWidth < 5 {
		titleWidth = 5
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s",
		dateWidth, "Date", amountWidth, "Amount", categoryWidth, "Category", titleWidth, "Title")
	lines := []string{m.styles.tableHeader.Render(header)}

	visible := m.visibleRows()
	end := m.topIndex + visible
	if end > len(rows) {
		end = len(rows)
	}
	for i := m.topIndex; i < end; i++ {
		row := rows[i]
		amountText := fmt.Sprintf("%s%.2f", m.cfg.UI.CurrencySymbol, row.Amount)
		amountField := padRight(amountText, amountWidth)
		if row.Amount < 0 {
			amountField = m.styles.credit.Render(amountField)
		} else {
			amountField = m.styles.debit.Render(amountField)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = m.styles.cursor.Render("> ")
		}
		dateField := padRight(row.Date, dateWidth)
		categoryField := padRight(truncate(row.Category, categoryWidth), categoryWidth)
		titleField := padRight(truncate(row.Title, titleWidth), titleWidth)
		lines = append(lines, prefix+dateField+"  "+amountField+"  "+categoryField+"  "+titleField)
	}

	if len(rows) == 0 {
		lines = append(lines, m.styles.muted.Render("  No expenses yet. Press a to add one."))
	}

	// Scroll indicator
	total := len(rows)
	if total > 0 && visible > 0 {
		start := m.topIndex + 1
		endIdx := m.topIndex + visible
		if endIdx > total {
			endIdx = total
		}
		indicator := m.styles.scroll.Render(fmt.Sprintf("── showing %d-%d of %d ──", start, endIdx, total))
		lines = append(lines, indicator)
	}

	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Overlay content
// ---------------------------------------------------------------------------

func (m Model) formView() string {
	title := "Add expense"
	if m.form.editingID != "" {
		title = "Edit expense"
	}
	lines := []string{m.styles.title.Render(title), ""}
	for i := 0; i < fieldCount; i++ {
		lines = append(lines, m.renderField(fieldLabels[i], m.form.fields[i], i == m.form.focus))
	}
	if m.form.suggestion != "" {
		lines = append(lines, "", m.styles.status.Render(fmt.Sprintf("Did you mean %q? ctrl+y to accept.", m.form.suggestion)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) filterView() string {
	lines := []string{m.styles.title.Render("Filter expenses"), ""}
	for i := 0; i < filterFieldCount; i++ {
		value := m.filter.fields[i]
		if i == filterCategory && value == "" {
			value = "(any)"
		}
		lines = append(lines, m.renderField(filterLabels[i], value, i == m.filter.focus))
	}
	lines = append(lines, "", m.styles.muted.Render("←/→ cycle categories, enter to apply"))
	return strings.Join(lines, "\n")
}

func (m Model) renderField(label, value string, focused bool) string {
	labelStyle := m.styles.label
	marker := "  "
	if focused {
		labelStyle = m.styles.fieldFocus
		marker = m.styles.cursor.Render("> ")
		value += m.styles.cursor.Render("▏")
	}
	return marker + labelStyle.Render(fmt.Sprintf("%-9s", label)) + " " + value
}

func (m Model) confirmView() string {
	var question string
	switch m.confirm {
	case confirmClear:
		question = fmt.Sprintf("Delete all %d records?", len(m.records))
	default:
		question = fmt.Sprintf("Delete %q?", m.confirmTitle)
	}
	return strings.Join([]string{
		m.styles.title.Render("Confirm"),
		"",
		question,
		"",
		m.styles.helpKey.Render("y") + m.styles.helpDesc.Render(" yes   ") +
			m.styles.helpKey.Render("n") + m.styles.helpDesc.Render(" no"),
	}, "\n")
}

func (m Model) pickerView() string {
	if !m.listReady {
		return "Loading CSV files..."
	}
	if len(m.fileList.Items()) == 0 {
		return m.styles.muted.Render("No .csv files in " + m.basePath)
	}
	return m.fileList.View()
}

// ---------------------------------------------------------------------------
// Layout helpers
// ---------------------------------------------------------------------------

func (m *Model) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	frameV := m.styles.listBox.GetVerticalFrameSize()
	headerHeight := 1
	headerGap := 1
	sectionHeaderHeight := 2
	overviewHeight := frameV + sectionHeaderHeight + m.overviewLineCount()
	sectionGap := 1
	tableHeaderHeight := 1
	scrollIndicator := 1
	available := m.height - 2 - headerHeight - headerGap - overviewHeight - sectionGap - frameV - sectionHeaderHeight - tableHeaderHeight - scrollIndicator
	if available < 3 {
		available = 3
	}
	if available > 20 {
		available = 20
	}
	return available
}

func (m *Model) overviewLineCount() int {
	categories := len(expense.Summarize(m.visibleRecords()).ByCategory)
	if categories == 0 {
		return 2
	}
	if categories > maxChartBars {
		return 2 + 1 + maxChartBars + 1
	}
	return 2 + 1 + categories
}

func (m *Model) listContentWidth() int {
	if m.width == 0 {
		return 80
	}
	contentWidth := m.sectionContentWidth()
	if contentWidth < 20 {
		return 20
	}
	return contentWidth
}

func (m *Model) sectionContentWidth() int {
	if m.width == 0 {
		return 80
	}
	frameH := m.styles.listBox.GetHorizontalFrameSize()
	contentWidth := m.sectionWidth() - frameH
	if contentWidth < 1 {
		contentWidth = 1
	}
	return contentWidth
}

func (m *Model) sectionWidth() int {
	if m.width == 0 {
		return 80
	}
	width := m.width - 4
	if width < 20 {
		width = m.width
	}
	return width
}

func (m *Model) resizePicker() {
	if m.width == 0 || m.height == 0 {
		return
	}
	listWidth := min(70, m.width-6)
	if listWidth < 40 {
		listWidth = 40
	}
	m.fileList.SetWidth(listWidth)
	m.fileList.SetHeight(min(14, m.height-8))
}

func (m *Model) ensureCursorInWindow() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	rows := len(m.visibleRecords())
	if m.cursor < m.topIndex {
		m.topIndex = m.cursor
	} else if m.cursor >= m.topIndex+visible {
		m.topIndex = m.cursor - visible + 1
	}
	maxTop := rows - visible
	if maxTop < 0 {
		maxTop = 0
	}
	if m.topIndex > maxTop {
		m.topIndex = maxTop
	}
	if m.topIndex < 0 {
		m.topIndex = 0
	}
}
