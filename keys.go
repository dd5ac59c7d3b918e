package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up, down, left, right key.Binding
	top, bottom           key.Binding
	toggleSelect          key.Binding
	edit                  key.Binding
	search                key.Binding
	cycleSort             key.Binding
	sortColumn            key.Binding
	cycleFilter           key.Binding
	toggleColumn          key.Binding
	deleteSelected        key.Binding
	run                   key.Binding
	stop                  key.Binding
	addRow                key.Binding
	addSheet              key.Binding
	nextSheet, prevSheet  key.Binding
	toggleTheme           key.Binding
	payNow                key.Binding
	toggleAutoRun         key.Binding
	copyCell, copyRows    key.Binding
	exportCSV, exportXLSX key.Binding
	cancelJob             key.Binding
	toggleLogs            key.Binding
	toggleHelp            key.Binding
	quit                  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first row"),
		),
		bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last row"),
		),
		toggleSelect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select row"),
		),
		edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit cell"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		cycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		sortColumn: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort by column"),
		),
		cycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		toggleColumn: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "show/hide column"),
		),
		deleteSelected: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete selected"),
		),
		run: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "enrich data"),
		),
		stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		addRow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add row"),
		),
		addSheet: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new sheet"),
		),
		nextSheet: key.NewBinding(
			key.WithKeys("]", "tab"),
			key.WithHelp("]", "next sheet"),
		),
		prevSheet: key.NewBinding(
			key.WithKeys("[", "shift+tab"),
			key.WithHelp("[", "prev sheet"),
		),
		toggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		payNow: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pay now"),
		),
		toggleAutoRun: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "auto-run"),
		),
		copyCell: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cell"),
		),
		copyRows: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy rows"),
		),
		exportCSV: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export csv"),
		),
		exportXLSX: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "export xlsx"),
		),
		cancelJob: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "cancel hook"),
		),
		toggleLogs: key.NewBinding(
			key.WithKeys("f6"),
			key.WithHelp("F6", "toggle logs"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.toggleSelect,
		k.edit,
		k.search,
		k.run,
		k.addRow,
		k.addSheet,
		k.toggleHelp,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.top, k.bottom},
		{k.toggleSelect, k.edit, k.deleteSelected, k.addRow, k.copyCell, k.copyRows},
		{k.search, k.cycleSort, k.sortColumn, k.cycleFilter, k.toggleColumn},
		{k.run, k.stop, k.toggleAutoRun, k.addSheet, k.nextSheet, k.prevSheet},
		{k.exportCSV, k.exportXLSX, k.cancelJob, k.toggleLogs},
		{k.toggleTheme, k.payNow, k.toggleHelp, k.quit},
	}
}

// columnKeyIndex maps the digit keys onto AllFields positions.
func columnKeyIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
