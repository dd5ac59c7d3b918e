package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/bekirdag/bitscale-grid/internal/grid"
)

const creditLimit = 500

type inputMode int

const (
	modeGrid inputMode = iota
	modeSearch
	modeEdit
	modePayment
)

// runTickMsg is one step of an enrichment run. Ticks whose run id is no
// longer live are dropped by the controller.
type runTickMsg struct {
	RunID int
}

// rowLoadedMsg ends the loading placeholder of a freshly added row.
type rowLoadedMsg struct {
	SheetID int
	RowID   int
}

var sortPresets = []grid.SortConfig{
	{},
	{Key: grid.FieldName, Direction: grid.SortAsc},
	{Key: grid.FieldName, Direction: grid.SortDesc},
	{Key: grid.FieldCompany, Direction: grid.SortAsc},
}

type modelOptions struct {
	Config     *uiConfig
	ConfigPath string
	Theme      uiTheme
	ExportDir  string
	Logger     *zap.Logger
	Telemetry  *telemetryLogger
	Exports    *exportStore
	Clipboard  func(string) error
	Now        func() time.Time
}

type model struct {
	keys   keyMap
	help   help.Model
	styles styles
	theme  uiTheme

	store     *grid.Store
	run       *grid.RunController
	selection *grid.Selection
	viewCfg   grid.ViewConfig
	visible   map[grid.Field]bool
	view      []grid.DisplayRow
	autoRun   bool

	table    *gridTable
	search   textinput.Model
	editor   textinput.Model
	progress progress.Model
	spinner  spinner.Model
	logs     *logPanel
	showLogs bool
	jobs     *jobManager

	mode        inputMode
	editSheetID int
	editRowID   int
	editField   grid.Field

	config     *uiConfig
	configPath string
	exportDir  string
	logger     *zap.Logger
	telemetry  *telemetryLogger
	exports    *exportStore
	clipboard  func(string) error
	now        func() time.Time

	toastMessage string
	toastExpires time.Time

	width  int
	height int
}

func initialModel(opts modelOptions) *model {
	if opts.Config == nil {
		opts.Config = &uiConfig{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	theme := opts.Theme
	if theme == "" {
		theme = themeFromString(opts.Config.Theme)
	}
	s := newStyles(theme)
	setMarkdownTheme(theme)

	search := textinput.New()
	search.Prompt = "🔍 "
	search.Placeholder = "Search rows"
	search.CharLimit = 120
	search.Width = 24

	editor := textinput.New()
	editor.Prompt = "› "
	editor.CharLimit = 256
	editor.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		keys:       newKeyMap(),
		help:       help.New(),
		styles:     s,
		theme:      theme,
		store:      grid.NewSeededStore(),
		run:        grid.NewRunController(),
		selection:  grid.NewSelection(),
		viewCfg:    grid.ViewConfig{Filter: grid.FilterAll},
		visible:    opts.Config.visibleColumns(),
		autoRun:    opts.Config.AutoRun,
		table:      newGridTable(s),
		search:     search,
		editor:     editor,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(24)),
		spinner:    spin,
		logs:       newLogPanel(),
		jobs:       newJobManager(),
		config:     opts.Config,
		configPath: opts.ConfigPath,
		exportDir:  opts.ExportDir,
		logger:     opts.Logger,
		telemetry:  opts.Telemetry,
		exports:    opts.Exports,
		clipboard:  opts.Clipboard,
		now:        opts.Now,
	}
	m.store.SetClock(opts.Now)
	m.loadExportHistory()
	m.refreshGrid()
	return m
}

func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runTickMsg:
		return m, m.handleRunTick(msg)

	case rowLoadedMsg:
		if m.store.MarkLoaded(msg.SheetID, msg.RowID) {
			m.refreshGrid()
		}
		return m, nil

	case jobMsg:
		return m, tea.Batch(m.handleJobMessage(msg), m.jobs.Handle(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.mode {
		case modeSearch:
			return m, m.updateSearch(msg)
		case modeEdit:
			return m, m.updateEditor(msg)
		case modePayment:
			return m, m.updatePayment(msg)
		}
		return m, m.handleGridKey(msg)
	}
	return m, nil
}

func (m *model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.up):
		m.table.Move(-1)
	case key.Matches(msg, m.keys.down):
		m.table.Move(1)
	case key.Matches(msg, m.keys.left):
		m.table.MoveColumn(-1)
	case key.Matches(msg, m.keys.right):
		m.table.MoveColumn(1)
	case key.Matches(msg, m.keys.top):
		m.table.GotoTop()
	case key.Matches(msg, m.keys.bottom):
		m.table.GotoBottom()
	case key.Matches(msg, m.keys.toggleSelect):
		if dr, ok := m.table.Current(); ok {
			m.toggleRowSelection(dr.Row.ID)
		}
	case key.Matches(msg, m.keys.edit):
		return m.openEditor()
	case key.Matches(msg, m.keys.search):
		m.mode = modeSearch
		return m.search.Focus()
	case key.Matches(msg, m.keys.cycleSort):
		m.setSort(nextSortPreset(m.viewCfg.Sort))
	case key.Matches(msg, m.keys.sortColumn):
		if f, ok := m.table.CurrentField(); ok {
			m.setSort(nextColumnSort(m.viewCfg.Sort, f))
		}
	case key.Matches(msg, m.keys.cycleFilter):
		m.setFilter(m.viewCfg.Filter.Next())
	case key.Matches(msg, m.keys.toggleColumn):
		if idx, ok := columnKeyIndex(msg.String()); ok {
			m.toggleColumn(grid.AllFields[idx])
		}
	case key.Matches(msg, m.keys.deleteSelected):
		m.deleteSelected()
	case key.Matches(msg, m.keys.run):
		return m.startRun()
	case key.Matches(msg, m.keys.stop):
		m.cancelRun()
	case key.Matches(msg, m.keys.addRow):
		return m.addRow()
	case key.Matches(msg, m.keys.addSheet):
		m.addSheet()
	case key.Matches(msg, m.keys.nextSheet):
		m.cycleSheet(1)
	case key.Matches(msg, m.keys.prevSheet):
		m.cycleSheet(-1)
	case key.Matches(msg, m.keys.toggleTheme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.payNow):
		m.openPayment()
	case key.Matches(msg, m.keys.toggleAutoRun):
		m.toggleAutoRun()
	case key.Matches(msg, m.keys.copyCell):
		m.copyCell()
	case key.Matches(msg, m.keys.copyRows):
		m.copyRows()
	case key.Matches(msg, m.keys.exportCSV):
		return m.exportView(exportCSV)
	case key.Matches(msg, m.keys.exportXLSX):
		return m.exportView(exportXLSX)
	case key.Matches(msg, m.keys.cancelJob):
		m.cancelJob()
	case key.Matches(msg, m.keys.toggleLogs):
		m.showLogs = !m.showLogs
		m.layout()
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case msg.Type == tea.KeyEsc:
		if m.viewCfg.SearchTerm != "" {
			m.search.SetValue("")
			m.setSearchTerm("")
		}
	}
	return nil
}

func (m *model) quit() tea.Cmd {
	m.cancelRun()
	return tea.Quit
}

func (m *model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeGrid
		return nil
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.setSearchTerm("")
		m.mode = modeGrid
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != m.viewCfg.SearchTerm {
		m.setSearchTerm(value)
	}
	return cmd
}

func (m *model) openEditor() tea.Cmd {
	dr, ok := m.table.Current()
	if !ok {
		m.setToast("Nothing to edit", 3*time.Second)
		return nil
	}
	field, ok := m.table.CurrentField()
	if !ok {
		return nil
	}
	if dr.Row.Loading {
		m.setToast("Row is still loading", 3*time.Second)
		return nil
	}
	if !field.Editable() {
		m.setToast(field.Label()+" is read-only", 3*time.Second)
		return nil
	}
	m.editSheetID = m.store.ActiveSheetID()
	m.editRowID = dr.Row.ID
	m.editField = field
	m.editor.SetValue(dr.Row.Value(field))
	m.editor.CursorEnd()
	m.mode = modeEdit
	return m.editor.Focus()
}

func (m *model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.updateField(m.editSheetID, m.editRowID, m.editField, m.editor.Value())
		m.closeEditor()
		return nil
	case tea.KeyEsc:
		m.closeEditor()
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *model) closeEditor() {
	m.editor.Blur()
	m.editor.SetValue("")
	m.mode = modeGrid
}

func (m *model) openPayment() {
	m.mode = modePayment
	m.logger.Info("payment modal opened")
	m.emitTelemetry("payment_modal_opened", map[string]string{"sheet": m.activeSheetName()})
}

func (m *model) updatePayment(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "y":
		m.mode = modeGrid
		m.setToast("Redirecting to Stripe...", 4*time.Second)
	case "esc", "n", "c", "q":
		m.mode = modeGrid
	}
	return nil
}

func (m *model) toggleRowSelection(id int) {
	m.selection.Toggle(id)
	m.refreshGrid()
}

func (m *model) updateField(sheetID, rowID int, field grid.Field, value string) {
	if !m.store.UpdateField(sheetID, rowID, field, value) {
		m.setToast("Row is no longer available", 3*time.Second)
		return
	}
	m.logger.Debug("cell updated", zap.Int("sheet_id", sheetID), zap.Int("row_id", rowID), zap.String("field", string(field)))
	m.refreshGrid()
}

func (m *model) deleteSelected() {
	if m.selection.Len() == 0 {
		m.setToast("Select rows to delete first", 3*time.Second)
		return
	}
	removed := m.store.DeleteRows(m.store.ActiveSheetID(), m.selection.Set())
	m.selection.Clear()
	m.refreshGrid()
	m.logger.Info("rows deleted", zap.Int("count", removed))
	m.emitTelemetry("rows_deleted", map[string]string{
		"sheet": m.activeSheetName(),
		"count": strconv.Itoa(removed),
	})
	m.setToast(fmt.Sprintf("Deleted %d %s", removed, ternary(removed == 1, "row", "rows")), 4*time.Second)
}

func (m *model) startRun() tea.Cmd {
	runID, ok := m.run.Start()
	if !ok {
		return nil
	}
	m.logger.Info("enrichment run started", zap.Int("run_id", runID), zap.Int("progress", m.run.Progress()))
	m.emitTelemetry("run_started", map[string]string{
		"sheet":    m.activeSheetName(),
		"run_id":   strconv.Itoa(runID),
		"progress": strconv.Itoa(m.run.Progress()),
	})
	return runTickCmd(runID)
}

func runTickCmd(runID int) tea.Cmd {
	return tea.Tick(grid.TickInterval, func(time.Time) tea.Msg {
		return runTickMsg{RunID: runID}
	})
}

func rowLoadedCmd(sheetID, rowID int) tea.Cmd {
	return tea.Tick(grid.LoadingDelay, func(time.Time) tea.Msg {
		return rowLoadedMsg{SheetID: sheetID, RowID: rowID}
	})
}

// handleRunTick applies one tick: progress and any injected row land in the
// same Update, so the next View shows both or neither.
func (m *model) handleRunTick(msg runTickMsg) tea.Cmd {
	sheetID := m.store.ActiveSheetID()
	res := m.run.Tick(msg.RunID, m.store.RowCount(sheetID))
	if !res.Applied {
		m.logger.Debug("stale run tick dropped", zap.Int("run_id", msg.RunID))
		return nil
	}
	m.logger.Debug("run tick", zap.Int("run_id", msg.RunID), zap.Int("progress", res.Progress))
	if res.Inject {
		if row, ok := m.store.InjectRow(sheetID, grid.EnrichedRow()); ok {
			m.emitTelemetry("row_injected", map[string]string{
				"sheet":  m.activeSheetName(),
				"row_id": strconv.Itoa(row.ID),
			})
		}
	}
	m.refreshGrid()
	if res.Done {
		m.logger.Info("enrichment run completed", zap.Int("run_id", msg.RunID))
		m.emitTelemetry("run_completed", map[string]string{
			"sheet":  m.activeSheetName(),
			"run_id": strconv.Itoa(msg.RunID),
		})
		m.setToast("Enrichment complete", 4*time.Second)
		return nil
	}
	return runTickCmd(msg.RunID)
}

func (m *model) cancelRun() {
	runID := m.run.RunID()
	if !m.run.Cancel() {
		return
	}
	m.logger.Info("enrichment run stopped", zap.Int("run_id", runID), zap.Int("progress", m.run.Progress()))
	m.emitTelemetry("run_stopped", map[string]string{
		"sheet":    m.activeSheetName(),
		"run_id":   strconv.Itoa(runID),
		"progress": strconv.Itoa(m.run.Progress()),
	})
	m.setToast("Enrichment stopped", 3*time.Second)
}

func (m *model) addRow() tea.Cmd {
	sheetID := m.store.ActiveSheetID()
	row, ok := m.store.AddRow(sheetID)
	if !ok {
		return nil
	}
	m.refreshGrid()
	m.emitTelemetry("row_added", map[string]string{
		"sheet":  m.activeSheetName(),
		"row_id": strconv.Itoa(row.ID),
	})
	cmds := []tea.Cmd{rowLoadedCmd(sheetID, row.ID)}
	if m.autoRun {
		cmds = append(cmds, m.startRun())
	}
	return tea.Batch(cmds...)
}

func (m *model) addSheet() {
	sheet := m.store.CreateSheet()
	m.table.GotoTop()
	m.refreshGrid()
	m.emitTelemetry("sheet_created", map[string]string{"sheet": sheet.Name})
	m.setToast("Created "+sheet.Name, 3*time.Second)
}

func (m *model) switchSheet(id int) {
	if id == m.store.ActiveSheetID() || !m.store.SetActive(id) {
		return
	}
	m.table.GotoTop()
	m.refreshGrid()
}

func (m *model) cycleSheet(delta int) {
	sheets := m.store.Sheets()
	if len(sheets) < 2 {
		return
	}
	active := m.store.ActiveSheetID()
	idx := 0
	for i, sh := range sheets {
		if sh.ID == active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(sheets)) % len(sheets)
	m.switchSheet(sheets[idx].ID)
}

func (m *model) setSearchTerm(term string) {
	m.viewCfg.SearchTerm = term
	m.refreshGrid()
}

func (m *model) setSort(cfg grid.SortConfig) {
	m.viewCfg.Sort = cfg
	m.refreshGrid()
}

func (m *model) setFilter(filter grid.FilterStatus) {
	m.viewCfg.Filter = filter
	m.refreshGrid()
}

func (m *model) toggleColumn(f grid.Field) {
	m.visible[f] = !m.visible[f]
	m.config.setVisibleColumns(m.visible)
	m.persistConfig()
	m.refreshGrid()
}

func (m *model) toggleTheme() {
	m.theme = m.theme.toggle()
	m.styles = newStyles(m.theme)
	m.table.ApplyStyles(m.styles)
	setMarkdownTheme(m.theme)
	m.config.Theme = string(m.theme)
	m.persistConfig()
}

func (m *model) toggleAutoRun() {
	m.autoRun = !m.autoRun
	m.config.AutoRun = m.autoRun
	m.persistConfig()
	m.setToast("Auto-run "+ternary(m.autoRun, "on", "off"), 3*time.Second)
}

func (m *model) persistConfig() {
	if m.configPath == "" {
		return
	}
	if err := saveUIConfig(m.config, m.configPath); err != nil {
		m.logger.Warn("saving ui config failed", zap.Error(err))
		m.setToast("Settings not saved: "+err.Error(), 5*time.Second)
	}
}

// refreshGrid recomputes the derived view after any state change.
func (m *model) refreshGrid() {
	m.view = grid.DeriveView(m.store.Rows(m.store.ActiveSheetID()), m.viewCfg)
	m.table.SetData(m.view, m.visibleFields(), m.selection)
}

func (m *model) visibleFields() []grid.Field {
	fields := make([]grid.Field, 0, len(grid.AllFields))
	for _, f := range grid.AllFields {
		if m.visible[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

func (m *model) activeSheetName() string {
	if sheet, ok := m.store.Sheet(m.store.ActiveSheetID()); ok {
		return sheet.Name
	}
	return ""
}

func nextSortPreset(current grid.SortConfig) grid.SortConfig {
	for i, preset := range sortPresets {
		if preset == current {
			return sortPresets[(i+1)%len(sortPresets)]
		}
	}
	return sortPresets[0]
}

// nextColumnSort steps a column through ascending, descending and unsorted.
func nextColumnSort(current grid.SortConfig, f grid.Field) grid.SortConfig {
	if current.Key != f {
		return grid.SortConfig{Key: f, Direction: grid.SortAsc}
	}
	if current.Direction == grid.SortAsc {
		return grid.SortConfig{Key: f, Direction: grid.SortDesc}
	}
	return grid.SortConfig{}
}

func (m *model) copyCell() {
	dr, ok := m.table.Current()
	if !ok {
		return
	}
	field, ok := m.table.CurrentField()
	if !ok {
		return
	}
	m.writeClipboard(dr.Row.Value(field), "Copied "+field.Label())
}

// copyRows copies the checked rows in display order, or the focused row
// when nothing is checked.
func (m *model) copyRows() {
	var rows []grid.DisplayRow
	if m.selection.Len() > 0 {
		for _, dr := range m.view {
			if m.selection.Has(dr.Row.ID) {
				rows = append(rows, dr)
			}
		}
	} else if dr, ok := m.table.Current(); ok {
		rows = append(rows, dr)
	}
	if len(rows) == 0 {
		m.setToast("No rows to copy", 3*time.Second)
		return
	}
	table := buildExportTable(m.activeSheetName(), rows, m.visibleFields())
	m.writeClipboard(tsvRows(table, true), fmt.Sprintf("Copied %d %s", len(rows), ternary(len(rows) == 1, "row", "rows")))
}

func (m *model) writeClipboard(text, notice string) {
	if err := m.clipboard(text); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.setToast("Clipboard unavailable: "+err.Error(), 5*time.Second)
		return
	}
	m.setToast(notice, 3*time.Second)
}

func (m *model) exportView(format exportFormat) tea.Cmd {
	sheet := m.activeSheetName()
	table := buildExportTable(sheet, m.view, m.visibleFields())
	now := m.now()
	path, err := writeExport(m.exportDir, table, format, now)
	if err != nil {
		m.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		m.setToast("Export failed: "+err.Error(), 6*time.Second)
		return nil
	}
	if _, err := m.exports.Add(exportRecord{
		Path:      path,
		Sheet:     sheet,
		Format:    string(format),
		Rows:      len(table.Rows),
		CreatedAt: now,
	}); err != nil {
		m.logger.Warn("recording export failed", zap.String("path", path), zap.Error(err))
	}
	m.logger.Info("export written", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	m.emitTelemetry("export_written", map[string]string{
		"sheet":  sheet,
		"format": string(format),
		"rows":   strconv.Itoa(len(table.Rows)),
		"path":   path,
	})
	m.appendLog(fmt.Sprintf("[export] %s (%d rows)", path, len(table.Rows)))
	m.setToast(fmt.Sprintf("Exported %d rows to %s", len(table.Rows), filepath.Base(path)), 5*time.Second)
	return m.runExportHook(path)
}

func (m *model) runExportHook(path string) tea.Cmd {
	parts, err := shellquote.Split(m.config.ExportHook)
	if err != nil {
		m.logger.Warn("parsing export hook failed", zap.String("hook", m.config.ExportHook), zap.Error(err))
		m.appendLog(fmt.Sprintf("[job] export hook skipped: %v", err))
		m.setToast("Export hook not run: "+err.Error(), 6*time.Second)
		return nil
	}
	if len(parts) == 0 {
		return nil
	}
	args := append(append([]string{}, parts[1:]...), path)
	id, cmd := m.jobs.Enqueue(jobRequest{
		title:   "export hook",
		dir:     filepath.Dir(path),
		command: parts[0],
		args:    args,
	})
	m.appendLog(fmt.Sprintf("[job] #%d queued: %s", id, shellquote.Join(append([]string{parts[0]}, args...)...)))
	return cmd
}

func (m *model) loadExportHistory() {
	records, err := m.exports.Recent(5)
	if err != nil {
		m.logger.Warn("reading export history failed", zap.Error(err))
		return
	}
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		m.appendLog(fmt.Sprintf("[history] %s %s (%d rows) %s",
			rec.CreatedAt.Format("Jan 2 15:04"), strings.ToUpper(rec.Format), rec.Rows, rec.Path))
	}
}

func (m *model) handleJobMessage(msg jobMsg) tea.Cmd {
	switch message := msg.(type) {
	case jobStartedMsg:
		m.logger.Info("job started", zap.Int("job_id", message.ID), zap.String("title", message.Title))
		m.appendLog(fmt.Sprintf("[job] #%d %s started", message.ID, message.Title))
	case jobLogMsg:
		m.appendLog(message.Line)
	case jobFinishedMsg:
		switch {
		case message.Err == nil:
			m.appendLog(fmt.Sprintf("[job] #%d %s finished", message.ID, message.Title))
			m.setToast(message.Title+" finished", 4*time.Second)
		case isInterruptError(message.Err):
			m.appendLog(fmt.Sprintf("[job] #%d %s cancelled", message.ID, message.Title))
			m.setToast(message.Title+" cancelled", 4*time.Second)
		default:
			m.logger.Warn("job failed", zap.Int("job_id", message.ID), zap.Error(message.Err))
			m.appendLog(fmt.Sprintf("[job] #%d %s failed: %v", message.ID, message.Title, message.Err))
			m.setToast(message.Title+" failed", 6*time.Second)
		}
	}
	return nil
}

func (m *model) cancelJob() {
	id, ok := m.jobs.Cancel()
	if !ok {
		m.setToast("No hook job to cancel", 3*time.Second)
		return
	}
	m.appendLog(fmt.Sprintf("[job] #%d cancel requested", id))
}

func isInterruptError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "signal: interrupt") || strings.Contains(text, "interrupted") || strings.Contains(text, "cancelled")
}

func (m *model) appendLog(line string) {
	m.logs.Append(line)
}

func (m *model) emitTelemetry(event string, fields map[string]string) {
	if m.telemetry == nil {
		return
	}
	m.telemetry.Emit(event, fields)
}

func (m *model) setToast(msg string, duration time.Duration) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		m.toastMessage = ""
		m.toastExpires = time.Time{}
		return
	}
	if duration <= 0 {
		duration = 5 * time.Second
	}
	m.toastMessage = trimmed
	m.toastExpires = m.now().Add(duration)
}

func ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
