package main

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/bekirdag/bitscale-grid/internal/grid"
)

const (
	indexColumnWidth  = 4
	selectColumnWidth = 3
	loadingCell       = "░░░░░░"
)

var defaultFieldWidths = map[grid.Field]int{
	grid.FieldName:     18,
	grid.FieldDate:     13,
	grid.FieldCompany:  14,
	grid.FieldWebsite:  18,
	grid.FieldLinkedIn: 24,
	grid.FieldEmail:    24,
}

// gridTable renders the derived view through bubbles/table. The row cursor
// is kept here rather than in the table so an empty view never leaves the
// table with a negative cursor.
type gridTable struct {
	table  table.Model
	rows   []grid.DisplayRow
	fields []grid.Field
	cursor int
	col    int
	width  int
	height int
}

func newGridTable(s styles) *gridTable {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)
	g := &gridTable{table: t, height: 10}
	g.ApplyStyles(s)
	return g
}

func (g *gridTable) ApplyStyles(s styles) {
	tStyles := table.DefaultStyles()
	tStyles.Header = s.tableHeader
	tStyles.Cell = s.tableCell
	tStyles.Selected = s.tableSel
	g.table.SetStyles(tStyles)
}

// SetData replaces the displayed rows. The cursor stays on the same display
// position, clamped to the new length.
func (g *gridTable) SetData(rows []grid.DisplayRow, fields []grid.Field, selection *grid.Selection) {
	g.rows = rows
	g.fields = fields
	if g.col >= len(fields) {
		g.col = len(fields) - 1
	}
	if g.col < 0 {
		g.col = 0
	}
	// rows must never carry more cells than there are columns
	g.table.SetRows(nil)
	g.table.SetColumns(g.columns())

	tableRows := make([]table.Row, len(rows))
	for i, dr := range rows {
		tableRows[i] = g.renderRow(dr, selection)
	}
	g.table.SetRows(tableRows)
	g.clampCursor()
}

func (g *gridTable) renderRow(dr grid.DisplayRow, selection *grid.Selection) table.Row {
	box := "[ ]"
	if selection != nil && selection.Has(dr.Row.ID) {
		box = "[x]"
	}
	cells := table.Row{strconv.Itoa(dr.Index), box}
	for _, f := range g.fields {
		cells = append(cells, cellText(dr.Row, f))
	}
	return cells
}

func cellText(row grid.Row, f grid.Field) string {
	if row.Loading {
		return loadingCell
	}
	value := row.Value(f)
	if value == "" && f == grid.FieldEmail {
		return "—"
	}
	return value
}

func (g *gridTable) columns() []table.Column {
	widths := g.fieldWidths()
	cols := []table.Column{
		{Title: "#", Width: indexColumnWidth},
		{Title: "", Width: selectColumnWidth},
	}
	for i, f := range g.fields {
		title := f.Label()
		if i == g.col {
			title = "▸ " + title
		}
		cols = append(cols, table.Column{Title: title, Width: widths[i]})
	}
	return cols
}

// fieldWidths shrinks the default widths evenly when the terminal is too
// narrow to fit them, never below eight cells.
func (g *gridTable) fieldWidths() []int {
	widths := make([]int, len(g.fields))
	total := 0
	for i, f := range g.fields {
		widths[i] = defaultFieldWidths[f]
		total += widths[i]
	}
	// two cells of padding per column
	available := g.width - indexColumnWidth - selectColumnWidth - 2*(len(g.fields)+2)
	if g.width <= 0 || total <= available || len(widths) == 0 {
		return widths
	}
	excess := total - available
	per := (excess + len(widths) - 1) / len(widths)
	for i := range widths {
		widths[i] = max(widths[i]-per, 8)
	}
	return widths
}

func (g *gridTable) SetSize(width, height int) {
	if height < 4 {
		height = 4
	}
	g.width = width
	g.height = height
	g.table.SetWidth(width)
	g.table.SetHeight(height)
	g.table.SetColumns(g.columns())
	g.clampCursor()
}

func (g *gridTable) clampCursor() {
	if g.cursor >= len(g.rows) {
		g.cursor = len(g.rows) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	if len(g.rows) > 0 {
		g.table.SetCursor(g.cursor)
	}
}

func (g *gridTable) Move(delta int) {
	g.cursor += delta
	g.clampCursor()
}

func (g *gridTable) GotoTop() {
	g.cursor = 0
	g.clampCursor()
}

func (g *gridTable) GotoBottom() {
	g.cursor = len(g.rows) - 1
	g.clampCursor()
}

func (g *gridTable) MoveColumn(delta int) {
	if len(g.fields) == 0 {
		return
	}
	g.col = (g.col + delta + len(g.fields)) % len(g.fields)
	g.table.SetColumns(g.columns())
}

func (g *gridTable) Current() (grid.DisplayRow, bool) {
	if g.cursor < 0 || g.cursor >= len(g.rows) {
		return grid.DisplayRow{}, false
	}
	return g.rows[g.cursor], true
}

func (g *gridTable) CurrentField() (grid.Field, bool) {
	if g.col < 0 || g.col >= len(g.fields) {
		return "", false
	}
	return g.fields[g.col], true
}

func (g *gridTable) Empty() bool {
	return len(g.rows) == 0
}

func (g *gridTable) View() string {
	return g.table.View()
}
