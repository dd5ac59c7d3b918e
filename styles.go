package main

import "github.com/charmbracelet/lipgloss"

type uiTheme string

const (
	themeDark  uiTheme = "dark"
	themeLight uiTheme = "light"
)

func themeFromString(value string) uiTheme {
	if value == string(themeLight) {
		return themeLight
	}
	return themeDark
}

func (t uiTheme) toggle() uiTheme {
	if t == themeLight {
		return themeDark
	}
	return themeLight
}

func (t uiTheme) label() string {
	if t == themeLight {
		return "☀ Light"
	}
	return "☾ Dark"
}

type colorPalette struct {
	text      lipgloss.Color
	textMuted lipgloss.Color
	border    lipgloss.Color
	selection lipgloss.Color
	accent    lipgloss.Color
	danger    lipgloss.Color
	dangerFg  lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	surface   lipgloss.Color
}

var (
	darkPalette = colorPalette{
		text:      lipgloss.Color("#E5E7EB"),
		textMuted: lipgloss.Color("#9CA3AF"),
		border:    lipgloss.Color("#374151"),
		selection: lipgloss.Color("#1E3A8A"),
		accent:    lipgloss.Color("#60A5FA"),
		danger:    lipgloss.Color("#B91C1C"),
		dangerFg:  lipgloss.Color("#FEF2F2"),
		success:   lipgloss.Color("#34D399"),
		warning:   lipgloss.Color("#FBBF24"),
		surface:   lipgloss.Color("#111827"),
	}
	lightPalette = colorPalette{
		text:      lipgloss.Color("#111827"),
		textMuted: lipgloss.Color("#6B7280"),
		border:    lipgloss.Color("#D1D5DB"),
		selection: lipgloss.Color("#DBEAFE"),
		accent:    lipgloss.Color("#2563EB"),
		danger:    lipgloss.Color("#DC2626"),
		dangerFg:  lipgloss.Color("#FFFFFF"),
		success:   lipgloss.Color("#059669"),
		warning:   lipgloss.Color("#D97706"),
		surface:   lipgloss.Color("#F9FAFB"),
	}
)

func paletteFor(theme uiTheme) colorPalette {
	if theme == themeLight {
		return lightPalette
	}
	return darkPalette
}

type styles struct {
	palette colorPalette

	app, topBar, title, badge, plan    lipgloss.Style
	banner, bannerAction               lipgloss.Style
	toolbar, toolItem, toolDanger      lipgloss.Style
	toolAction                         lipgloss.Style
	panel, columnTitle, empty          lipgloss.Style
	tabActive, tabInactive, footerItem lipgloss.Style
	statusBar, statusSeg, statusHint   lipgloss.Style
	cmdOverlay, cmdPrompt, cmdHint     lipgloss.Style
	tableHeader, tableCell, tableSel   lipgloss.Style
	runIdle, runActive, runDone        lipgloss.Style
}

func newStyles(theme uiTheme) styles {
	p := paletteFor(theme)
	base := lipgloss.NewStyle().Foreground(p.text)
	panelBorder := lipgloss.NormalBorder()

	return styles{
		palette:      p,
		app:          base,
		topBar:       base.Copy().Padding(0, 1),
		title:        base.Copy().Bold(true),
		badge:        base.Copy().Foreground(p.textMuted),
		plan:         base.Copy().Foreground(p.accent).Bold(true),
		banner:       lipgloss.NewStyle().Foreground(p.dangerFg).Background(p.danger).Padding(0, 1),
		bannerAction: lipgloss.NewStyle().Foreground(p.danger).Background(p.dangerFg).Bold(true).Padding(0, 1),
		toolbar:      base.Copy().Padding(0, 1),
		toolItem:     base.Copy().Padding(0, 1).Foreground(p.textMuted),
		toolDanger:   base.Copy().Padding(0, 1).Foreground(p.danger).Bold(true),
		toolAction:   base.Copy().Padding(0, 1).Foreground(p.accent).Bold(true),
		panel:        base.Copy().BorderStyle(panelBorder).BorderForeground(p.border),
		columnTitle:  base.Copy().Bold(true).Padding(0, 1),
		empty:        base.Copy().Foreground(p.textMuted).Padding(1, 2),
		tabActive:    base.Copy().Bold(true).Underline(true).Padding(0, 1),
		tabInactive:  base.Copy().Foreground(p.textMuted).Padding(0, 1),
		footerItem:   base.Copy().Foreground(p.accent).Padding(0, 1),
		statusBar:    base.Copy().Padding(0, 1),
		statusSeg:    base.Copy().Padding(0, 1).MarginRight(1),
		statusHint:   base.Copy().Foreground(p.textMuted),
		cmdOverlay:   base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(1, 2),
		cmdPrompt:    base.Copy().Bold(true),
		cmdHint:      base.Copy().Faint(true),
		tableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.textMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			BorderBottom(true).
			Padding(0, 1),
		tableCell: lipgloss.NewStyle().Padding(0, 1),
		tableSel: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.selection).
			Bold(true),
		runIdle:   base.Copy().Foreground(p.textMuted),
		runActive: base.Copy().Foreground(p.warning).Bold(true),
		runDone:   base.Copy().Foreground(p.success).Bold(true),
	}
}
