package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bekirdag/bitscale-grid/internal/grid"
)

var testNow = time.Date(2024, 10, 12, 9, 30, 0, 0, time.UTC)

type testHarness struct {
	m      *model
	copied []string
}

func newTestModel(t *testing.T, opts modelOptions) *testHarness {
	t.Helper()
	h := &testHarness{}
	if opts.Config == nil {
		opts.Config = &uiConfig{}
	}
	if opts.ExportDir == "" {
		opts.ExportDir = filepath.Join(t.TempDir(), "exports")
	}
	opts.Logger = zap.NewNop()
	opts.Now = func() time.Time { return testNow }
	opts.Clipboard = func(text string) error {
		h.copied = append(h.copied, text)
		return nil
	}
	h.m = initialModel(opts)
	h.m.Update(tea.WindowSizeMsg{Width: 160, Height: 48})
	return h
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *testHarness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = h.m.Update(msg)
	}
	return cmd
}

func (h *testHarness) typeText(text string) {
	for _, r := range text {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *testHarness) tick(n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		cmd = h.send(runTickMsg{RunID: h.m.run.RunID()})
	}
	return cmd
}

func TestInitialModelRendersSeededSheet(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	require.Len(t, h.m.view, 3)

	view := h.m.View()
	for _, want := range []string{"Mike Braham", "Alex Johnson", "Sarah Thompson", "3 / 500 Credits", "Free Plan", bannerText, "Idle", "Bitscale grid only", "Enrich Data"} {
		assert.Contains(t, view, want)
	}
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("/"))
	require.Equal(t, modeSearch, h.m.mode)

	h.typeText("amazon")
	require.Len(t, h.m.view, 1)
	assert.Equal(t, "Alex Johnson", h.m.view[0].Row.Name)

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeGrid, h.m.mode)
	assert.Equal(t, "amazon", h.m.viewCfg.SearchTerm)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, h.m.viewCfg.SearchTerm)
	assert.Len(t, h.m.view, 3)
}

func TestRunProgressesInjectsAndCompletes(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	require.NotNil(t, h.send(keys("r")))
	require.True(t, h.m.run.Running())
	assert.Contains(t, h.m.View(), "Processing")

	h.tick(8)
	assert.Equal(t, 40, h.m.run.Progress())
	assert.Equal(t, 3, h.m.store.RowCount(1))

	h.tick(1)
	assert.Equal(t, 45, h.m.run.Progress())
	assert.Equal(t, 4, h.m.store.RowCount(1), "progress and injection land in the same update")
	assert.Len(t, h.m.view, 4)

	require.NotNil(t, h.tick(10))
	assert.Equal(t, 95, h.m.run.Progress())
	assert.Equal(t, grid.InjectRowLimit, h.m.store.RowCount(1))

	assert.Nil(t, h.tick(1), "no tick is scheduled after completion")
	assert.Equal(t, grid.RunCompleted, h.m.run.Status())
	assert.Equal(t, 100, h.m.run.Progress())
	assert.Contains(t, h.m.View(), "Done")
}

func TestStopDropsInFlightTickAndRestartResumes(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("r"))
	oldRun := h.m.run.RunID()
	h.tick(3)

	h.send(keys("x"))
	assert.Equal(t, grid.RunStopped, h.m.run.Status())
	assert.Nil(t, h.send(runTickMsg{RunID: oldRun}))
	assert.Equal(t, 15, h.m.run.Progress())

	h.send(keys("r"))
	require.True(t, h.m.run.Running())
	assert.NotEqual(t, oldRun, h.m.run.RunID())
	assert.Nil(t, h.send(runTickMsg{RunID: oldRun}))
	assert.Equal(t, 15, h.m.run.Progress())

	h.tick(1)
	assert.Equal(t, 20, h.m.run.Progress())
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("r"))
	runID := h.m.run.RunID()
	assert.Nil(t, h.send(keys("r")))
	assert.Equal(t, runID, h.m.run.RunID())
}

func TestInjectedRowsFollowActiveSheet(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("r"))
	h.send(keys("n"))
	require.Equal(t, 2, h.m.store.ActiveSheetID())

	h.tick(9)
	assert.Equal(t, 3, h.m.store.RowCount(1))
	assert.Equal(t, 1, h.m.store.RowCount(2))
}

func TestAddRowShowsPlaceholderUntilLoaded(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	require.NotNil(t, h.send(keys("a")))
	rows := h.m.store.Rows(1)
	require.Len(t, rows, 4)
	added := rows[3]
	assert.True(t, added.Loading)
	assert.Equal(t, grid.StatusPending, added.Status)
	assert.Equal(t, "Oct 12, 2024", added.Date)
	assert.Contains(t, h.m.View(), loadingCell)

	h.send(rowLoadedMsg{SheetID: 1, RowID: added.ID})
	row, ok := h.m.store.Row(1, added.ID)
	require.True(t, ok)
	assert.False(t, row.Loading)
}

func TestDeletedRowIsNotResurrectedByLoadTimer(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("a"))
	added := h.m.store.Rows(1)[3]

	h.send(keys("G"), keys(" "), keys("d"))
	require.Equal(t, 3, h.m.store.RowCount(1))

	h.send(rowLoadedMsg{SheetID: 1, RowID: added.ID})
	assert.Equal(t, 3, h.m.store.RowCount(1))
	_, ok := h.m.store.Row(1, added.ID)
	assert.False(t, ok)
}

func TestAutoRunStartsRunWhenAddingRow(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("A"))
	require.True(t, h.m.autoRun)
	h.send(keys("a"))
	assert.True(t, h.m.run.Running())
}

func TestSelectionAndBulkDelete(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys(" "), keys("j"), keys(" "))
	assert.Equal(t, 2, h.m.selection.Len())
	assert.Contains(t, h.m.View(), "Delete (2)")

	h.send(keys("d"))
	assert.Zero(t, h.m.selection.Len())
	rows := h.m.store.Rows(1)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sarah Thompson", rows[0].Name)
}

func TestDeleteWithoutSelectionLeavesRows(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("d"))
	assert.Equal(t, 3, h.m.store.RowCount(1))
	assert.Equal(t, "Select rows to delete first", h.m.toastMessage)
}

func TestEditCellWritesThroughStore(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeEdit, h.m.mode)
	assert.Equal(t, "Mike Braham", h.m.editor.Value())

	h.m.editor.SetValue("Michael Braham")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeGrid, h.m.mode)
	row, ok := h.m.store.Row(1, 1)
	require.True(t, ok)
	assert.Equal(t, "Michael Braham", row.Name)
	assert.Equal(t, grid.StatusFound, row.Status)
}

func TestEditEscapeDiscardsChanges(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.m.editor.SetValue("Nobody")
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	row, _ := h.m.store.Row(1, 1)
	assert.Equal(t, "Mike Braham", row.Name)
}

func TestDateAndLoadingCellsRefuseEdits(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("l"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeGrid, h.m.mode)
	assert.Equal(t, "Date is read-only", h.m.toastMessage)

	h.send(keys("h"), keys("a"), keys("G"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeGrid, h.m.mode)
	assert.Equal(t, "Row is still loading", h.m.toastMessage)
}

func TestSortAndFilterKeys(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("s"))
	assert.Equal(t, "Alex Johnson", h.m.view[0].Row.Name)
	h.send(keys("s"))
	assert.Equal(t, "Sarah Thompson", h.m.view[0].Row.Name)
	assert.Contains(t, h.m.View(), "Name (Z-A)")

	h.send(keys("f"))
	assert.Len(t, h.m.view, 2)
	h.send(keys("f"))
	require.Len(t, h.m.view, 1)
	assert.Equal(t, "Sarah Thompson", h.m.view[0].Row.Name)
	h.send(keys("f"))
	assert.Len(t, h.m.view, 3)
}

func TestSortByFocusedColumnCycles(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("l"), keys("l"), keys("S"))
	assert.Equal(t, grid.SortConfig{Key: grid.FieldCompany, Direction: grid.SortAsc}, h.m.viewCfg.Sort)
	assert.Equal(t, "Alex Johnson", h.m.view[0].Row.Name)
	h.send(keys("S"))
	assert.Equal(t, grid.SortDesc, h.m.viewCfg.Sort.Direction)
	h.send(keys("S"))
	assert.False(t, h.m.viewCfg.Sort.IsSet())
}

func TestToggleColumnPersistsHiddenColumns(t *testing.T) {
	dir := t.TempDir()
	cfg, path := loadUIConfig(dir)
	h := newTestModel(t, modelOptions{Config: cfg, ConfigPath: path})

	h.send(keys("6"))
	assert.Len(t, h.m.visibleFields(), 5)
	assert.NotContains(t, h.m.View(), "mike@google.com")

	reloaded, _ := loadUIConfig(dir)
	assert.Equal(t, []string{"email"}, reloaded.HiddenColumns)

	h.send(keys("6"))
	assert.Len(t, h.m.visibleFields(), 6)
}

func TestNewSheetStartsEmptyAndTabsSwitch(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("n"))
	assert.Equal(t, 2, h.m.store.ActiveSheetID())
	view := h.m.View()
	assert.Contains(t, view, emptySheetText)
	assert.Contains(t, view, "Sheet 2")
	assert.Contains(t, view, "0 / 500 Credits")

	h.send(keys("["))
	assert.Equal(t, 1, h.m.store.ActiveSheetID())
	assert.Len(t, h.m.view, 3)
	h.send(keys("]"))
	assert.Equal(t, 2, h.m.store.ActiveSheetID())
}

func TestSelectionSurvivesSheetSwitch(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys(" "), keys("n"))
	assert.Equal(t, 1, h.m.selection.Len())
	h.send(keys("d"))
	assert.Zero(t, h.m.selection.Len())
	assert.Equal(t, 3, h.m.store.RowCount(1))
}

func TestCopyCellAndRows(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("y"))
	require.Len(t, h.copied, 1)
	assert.Equal(t, "Mike Braham", h.copied[0])

	h.send(keys("Y"))
	require.Len(t, h.copied, 2)
	lines := strings.Split(h.copied[1], "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#\tName\tDate"))
	assert.True(t, strings.HasPrefix(lines[1], "1\tMike Braham"))
}

func TestExportWritesFileHistoryAndTelemetry(t *testing.T) {
	configDir := t.TempDir()
	store, err := openExportStore(configDir)
	require.NoError(t, err)
	defer store.Close()
	telemetry := newTelemetryLogger(telemetryPath(configDir), "session", "tester")
	exportDir := filepath.Join(configDir, "exports")

	h := newTestModel(t, modelOptions{ExportDir: exportDir, Exports: store, Telemetry: telemetry})
	h.send(keys("f"))
	h.send(tea.KeyMsg{Type: tea.KeyCtrlE})

	records, err := store.Recent(5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "csv", records[0].Format)
	assert.Equal(t, 2, records[0].Rows)
	assert.Equal(t, exportDir, filepath.Dir(records[0].Path))
	_, err = os.Stat(records[0].Path)
	require.NoError(t, err)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlX})
	records, err = store.Recent(5)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var exported int
	for _, ev := range readTelemetry(t, telemetryPath(configDir)) {
		if ev.Event == "export_written" {
			exported++
			assert.Equal(t, "Bitscale grid only", ev.Sheet)
		}
	}
	assert.Equal(t, 2, exported)
	assert.Contains(t, strings.Join(h.m.logs.Lines(), "\n"), "[export]")
}

func TestExportHistoryShownOnStartup(t *testing.T) {
	configDir := t.TempDir()
	store, err := openExportStore(configDir)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.Add(exportRecord{Path: "/tmp/old.csv", Sheet: "Bitscale grid only", Format: "csv", Rows: 3, CreatedAt: testNow})
	require.NoError(t, err)

	h := newTestModel(t, modelOptions{Exports: store})
	lines := h.m.logs.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "/tmp/old.csv")
}

func TestRunTelemetryEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.jsonl")
	h := newTestModel(t, modelOptions{Telemetry: newTelemetryLogger(path, "s", "u")})
	h.send(keys("r"))
	h.tick(9)
	h.send(keys("x"))

	var names []string
	for _, ev := range readTelemetry(t, path) {
		names = append(names, ev.Event)
	}
	assert.Equal(t, []string{"run_started", "row_injected", "run_stopped"}, names)
}

func TestPaymentModalProceedAndCancel(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("p"))
	require.Equal(t, modePayment, h.m.mode)
	assert.Contains(t, h.m.View(), "Proceed to Payment")

	h.send(keys("q"))
	assert.Equal(t, modeGrid, h.m.mode)
	assert.Empty(t, h.m.toastMessage)

	h.send(keys("p"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeGrid, h.m.mode)
	assert.Equal(t, "Redirecting to Stripe...", h.m.toastMessage)
}

func TestThemeToggleIsSaved(t *testing.T) {
	dir := t.TempDir()
	cfg, path := loadUIConfig(dir)
	h := newTestModel(t, modelOptions{Config: cfg, ConfigPath: path, Theme: themeDark})
	h.send(keys("t"))
	assert.Equal(t, themeLight, h.m.theme)
	assert.Contains(t, h.m.View(), "Light")

	reloaded, _ := loadUIConfig(dir)
	assert.Equal(t, "light", reloaded.Theme)
}

func TestQuitCancelsRun(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(keys("r"))
	require.NotNil(t, h.send(keys("q")))
	assert.Equal(t, grid.RunStopped, h.m.run.Status())
}

func TestJobMessagesReachLogPanel(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(
		jobStartedMsg{Title: "export hook", ID: 7},
		jobLogMsg{Title: "export hook", Line: "uploaded leads.csv", ID: 7},
		jobFinishedMsg{Title: "export hook", ID: 7},
	)
	lines := h.m.logs.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "uploaded leads.csv", lines[1])
	assert.Equal(t, "export hook finished", h.m.toastMessage)

	h.send(tea.KeyMsg{Type: tea.KeyF6})
	assert.True(t, h.m.showLogs)
	assert.Contains(t, h.m.View(), "uploaded leads.csv")
}

// drainJobs runs the command chain, feeding job messages into the model,
// until it runs dry or stop reports true. The unfinished chain is returned.
func (h *testHarness) drainJobs(t *testing.T, stop func(jobMsg) bool, cmds ...tea.Cmd) []tea.Cmd {
	t.Helper()
	pending := append([]tea.Cmd(nil), cmds...)
	for len(pending) > 0 {
		cmd := pending[0]
		pending = pending[1:]
		if cmd == nil {
			continue
		}
		switch msg := execCmd(t, cmd).(type) {
		case tea.BatchMsg:
			pending = append(pending, msg...)
		case jobMsg:
			pending = append(pending, h.send(msg))
			if stop != nil && stop(msg) {
				return pending
			}
		}
	}
	return nil
}

func TestExportHookStreamsOutputIntoLogPanel(t *testing.T) {
	requireShell(t)
	h := newTestModel(t, modelOptions{Config: &uiConfig{ExportHook: `sh -c 'echo "uploaded; done"'`}})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, cmd)
	h.drainJobs(t, nil, cmd)

	logs := strings.Join(h.m.logs.Lines(), "\n")
	assert.Contains(t, logs, "[job] #1 export hook started")
	assert.Contains(t, logs, "uploaded; done")
	assert.Contains(t, logs, "[job] #1 export hook finished")
	assert.Equal(t, "export hook finished", h.m.toastMessage)
	assert.False(t, h.m.jobs.Running())
}

func TestCancelRunningExportHook(t *testing.T) {
	requireShell(t)
	h := newTestModel(t, modelOptions{Config: &uiConfig{ExportHook: `sh -c 'exec sleep 5'`}})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, cmd)
	rest := h.drainJobs(t, func(msg jobMsg) bool {
		_, started := msg.(jobStartedMsg)
		return started
	}, cmd)
	require.True(t, h.m.jobs.Running())

	h.send(tea.KeyMsg{Type: tea.KeyCtrlK})
	h.drainJobs(t, nil, rest...)

	logs := strings.Join(h.m.logs.Lines(), "\n")
	assert.Contains(t, logs, "[job] #1 cancel requested")
	assert.Contains(t, logs, "[job] #1 export hook cancelled")
	assert.Equal(t, "export hook cancelled", h.m.toastMessage)
	assert.False(t, h.m.jobs.Running())
}

func TestExportHookWithUnbalancedQuotesIsSkipped(t *testing.T) {
	h := newTestModel(t, modelOptions{Config: &uiConfig{ExportHook: `sh -c 'echo hi`}})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Nil(t, cmd)
	assert.False(t, h.m.jobs.Running())
	assert.Contains(t, h.m.toastMessage, "Export hook not run")
	assert.Contains(t, strings.Join(h.m.logs.Lines(), "\n"), "[job] export hook skipped")
}

func TestCancelJobWithNothingRunning(t *testing.T) {
	h := newTestModel(t, modelOptions{})
	h.send(tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, "No hook job to cancel", h.m.toastMessage)
}

func TestNextSortPreset(t *testing.T) {
	cfg := grid.SortConfig{}
	var seen []string
	for i := 0; i < len(sortPresets); i++ {
		cfg = nextSortPreset(cfg)
		seen = append(seen, cfg.String())
	}
	assert.Equal(t, []string{"Name (A-Z)", "Name (Z-A)", "Company (A-Z)", "None"}, seen)
	assert.Equal(t, grid.SortConfig{}, nextSortPreset(grid.SortConfig{Key: grid.FieldEmail, Direction: grid.SortAsc}))
}
