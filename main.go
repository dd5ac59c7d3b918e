package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	themeFlag     string
	configDirFlag string
	exportDirFlag string
	verbose       bool
	historyLimit  int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bitscale-grid",
	Short: "Spreadsheet-style contact grid with simulated enrichment",
	Long: `bitscale-grid opens an in-memory contact grid in the terminal.

Rows can be searched, sorted, filtered, edited and exported to CSV or XLSX.
"Enrich Data" runs a simulated enrichment that advances a progress bar and
appends synthetic rows. Nothing is persisted except settings, logs and the
export history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newFileLogger(resolveConfigDir(configDirFlag), verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGrid()
	},
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List recent exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listExports(cmd.OutOrStdout(), resolveConfigDir(configDirFlag), historyLimit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Settings, log and history directory (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "Color theme: light or dark (default: saved setting)")
	rootCmd.Flags().StringVar(&exportDirFlag, "export-dir", "", "Directory for CSV/XLSX exports")
	exportsCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of exports to show")

	rootCmd.AddCommand(exportsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runGrid() error {
	configDir := resolveConfigDir(configDirFlag)
	cfg, cfgPath := loadUIConfig(configDir)

	theme := uiTheme("")
	if strings.TrimSpace(themeFlag) != "" {
		theme = themeFromString(strings.ToLower(strings.TrimSpace(themeFlag)))
	}
	exportDir := cfg.resolveExportDir(configDir)
	if strings.TrimSpace(exportDirFlag) != "" {
		exportDir = expandHome(strings.TrimSpace(exportDirFlag))
	}

	exports, err := openExportStore(configDir)
	if err != nil {
		logger.Warn("export history unavailable", zap.Error(err))
	}
	defer exports.Close()

	sessionID := newTelemetrySessionID()
	telemetry := newTelemetryLogger(telemetryPath(configDir), sessionID, resolveTelemetryUserID())
	logger.Info("starting grid",
		zap.String("session_id", sessionID),
		zap.String("config_dir", configDir),
		zap.String("export_dir", exportDir))

	m := initialModel(modelOptions{
		Config:     cfg,
		ConfigPath: cfgPath,
		Theme:      theme,
		ExportDir:  exportDir,
		Logger:     logger,
		Telemetry:  telemetry,
		Exports:    exports,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run grid: %w", err)
	}
	return nil
}

func listExports(w io.Writer, configDir string, limit int) error {
	store, err := openExportStore(configDir)
	if err != nil {
		return fmt.Errorf("open export history: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("read export history: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No exports yet.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(w, "%s  %-4s  %5d rows  %-24s  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"), strings.ToUpper(rec.Format), rec.Rows, rec.Sheet, rec.Path)
	}
	return nil
}
