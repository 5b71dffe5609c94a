package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes — true-color hex values
// https://catppuccin.com/palette
// The persisted theme flag picks Mocha (dark) or Latte (light).
// ---------------------------------------------------------------------------

type palette struct {
	text     lipgloss.Color
	subtext1 lipgloss.Color
	subtext0 lipgloss.Color
	overlay1 lipgloss.Color
	overlay0 lipgloss.Color
	surface2 lipgloss.Color
	surface1 lipgloss.Color
	surface0 lipgloss.Color
	base     lipgloss.Color
	mantle   lipgloss.Color

	accent  lipgloss.Color
	focus   lipgloss.Color
	success lipgloss.Color
	danger  lipgloss.Color
	warning lipgloss.Color
	info    lipgloss.Color
	value   lipgloss.Color

	// bars are cycled through for the category breakdown chart.
	bars []lipgloss.Color
}

func mocha() palette {
	return palette{
		text:     "#cdd6f4",
		subtext1: "#bac2de",
		subtext0: "#a6adc8",
		overlay1: "#7f849c",
		overlay0: "#6c7086",
		surface2: "#585b70",
		surface1: "#45475a",
		surface0: "#313244",
		base:     "#1e1e2e",
		mantle:   "#181825",

		accent:  "#f5c2e7",
		focus:   "#b4befe",
		success: "#a6e3a1",
		danger:  "#f38ba8",
		warning: "#f9e2af",
		info:    "#94e2d5",
		value:   "#fab387",

		bars: []lipgloss.Color{
			"#a6e3a1", "#94e2d5", "#fab387", "#89b4fa",
			"#cba6f7", "#f5c2e7", "#f2cdcd", "#74c7ec",
			"#b4befe", "#f9e2af", "#eba0ac", "#89dceb",
		},
	}
}

func latte() palette {
	return palette{
		text:     "#4c4f69",
		subtext1: "#5c5f77",
		subtext0: "#6c6f85",
		overlay1: "#8c8fa1",
		overlay0: "#9ca0b0",
		surface2: "#acb0be",
		surface1: "#bcc0cc",
		surface0: "#ccd0da",
		base:     "#eff1f5",
		mantle:   "#e6e9ef",

		accent:  "#ea76cb",
		focus:   "#7287fd",
		success: "#40a02b",
		danger:  "#d20f39",
		warning: "#df8e1d",
		info:    "#179299",
		value:   "#fe640b",

		bars: []lipgloss.Color{
			"#40a02b", "#179299", "#fe640b", "#1e66f5",
			"#8839ef", "#ea76cb", "#dd7878", "#209fb5",
			"#7287fd", "#df8e1d", "#e64553", "#04a5e5",
		},
	}
}

func paletteFor(dark bool) palette {
	if dark {
		return mocha()
	}
	return latte()
}

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

type styles struct {
	palette palette

	title       lipgloss.Style
	headerBar   lipgloss.Style
	headerApp   lipgloss.Style
	status      lipgloss.Style
	statusBar   lipgloss.Style
	footer      lipgloss.Style
	helpKey     lipgloss.Style
	helpDesc    lipgloss.Style
	listBox     lipgloss.Style
	modal       lipgloss.Style
	tableHeader lipgloss.Style
	credit      lipgloss.Style
	debit       lipgloss.Style
	cursor      lipgloss.Style
	scroll      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	muted       lipgloss.Style
	fieldFocus  lipgloss.Style
	separator   lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		palette: p,

		title: lipgloss.NewStyle().Foreground(p.accent).Bold(true),

		headerBar: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.mantle).
			Padding(0, 2),

		headerApp: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		status: lipgloss.NewStyle().Foreground(p.subtext0),

		statusBar: lipgloss.NewStyle().
			Foreground(p.subtext1).
			Background(p.surface0).
			Padding(0, 2),

		footer: lipgloss.NewStyle().
			Foreground(p.subtext0).
			Background(p.mantle).
			Padding(0, 2),

		helpKey: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		helpDesc: lipgloss.NewStyle().
			Foreground(p.subtext0),

		listBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.surface1).
			Padding(0, 1),

		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),

		tableHeader: lipgloss.NewStyle().
			Foreground(p.subtext0).
			Bold(true),

		credit: lipgloss.NewStyle().Foreground(p.success),
		debit:  lipgloss.NewStyle().Foreground(p.danger),

		cursor: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		scroll: lipgloss.NewStyle().Foreground(p.overlay1),
		label:  lipgloss.NewStyle().Foreground(p.subtext0),
		value:  lipgloss.NewStyle().Foreground(p.value),
		muted:  lipgloss.NewStyle().Foreground(p.overlay1),

		fieldFocus: lipgloss.NewStyle().Foreground(p.focus).Bold(true),

		separator: lipgloss.NewStyle().Foreground(p.surface2),
	}
}
