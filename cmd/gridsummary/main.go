// Command gridsummary turns the grid's telemetry.jsonl into a per-session
// JSON report.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type telemetryEvent struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	Sheet     string            `json:"sheet,omitempty"`
	ExtraJSON map[string]string `json:"extra_json,omitempty"`
}

type sessionSummary struct {
	SessionID         string    `json:"session_id"`
	UserID            string    `json:"user_id,omitempty"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	RunsStarted       int       `json:"runs_started"`
	RunsCompleted     int       `json:"runs_completed"`
	RunsStopped       int       `json:"runs_stopped"`
	RowsInjected      int       `json:"rows_injected"`
	RowsAdded         int       `json:"rows_added"`
	RowsDeleted       int       `json:"rows_deleted"`
	SheetsCreated     int       `json:"sheets_created"`
	Exports           int       `json:"exports"`
	PaymentModalOpens int       `json:"payment_modal_opens"`
	FinalProgress     int       `json:"final_progress"`
	Sheets            []string  `json:"sheets"`
}

type summaryReport struct {
	Source   string           `json:"source"`
	Events   int              `json:"events"`
	Skipped  int              `json:"skipped_lines"`
	Sessions []sessionSummary `json:"sessions"`
}

var (
	inputPath  string
	outputPath string
	sessionArg string
)

var rootCmd = &cobra.Command{
	Use:          "gridsummary",
	Short:        "Summarise bitscale-grid telemetry per session",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(inputPath) == "" {
			return errors.New("missing --in path")
		}
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open telemetry: %w", err)
		}
		defer f.Close()

		events, skipped, err := parseEvents(f)
		if err != nil {
			return fmt.Errorf("parse telemetry: %w", err)
		}
		report := buildReport(inputPath, events, skipped, sessionArg)

		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if outputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		}
		if err := os.WriteFile(outputPath, append(encoded, '\n'), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&inputPath, "in", "", "telemetry.jsonl path (required)")
	rootCmd.Flags().StringVar(&outputPath, "out", "", "output JSON path (optional, defaults to stdout)")
	rootCmd.Flags().StringVar(&sessionArg, "session", "", "only report this session id")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gridsummary: %v\n", err)
		os.Exit(1)
	}
}

// parseEvents reads one event per line. Lines that are not valid events are
// counted and skipped.
func parseEvents(r io.Reader) ([]telemetryEvent, int, error) {
	var (
		scanner = bufio.NewScanner(r)
		events  []telemetryEvent
		skipped int
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev telemetryEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Event == "" {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return events, skipped, nil
}

func buildReport(source string, events []telemetryEvent, skipped int, onlySession string) summaryReport {
	report := summaryReport{Source: source, Skipped: skipped}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })

	sessions := map[string]*sessionSummary{}
	sheetsSeen := map[string]map[string]bool{}
	var order []string
	for _, ev := range events {
		if onlySession != "" && ev.SessionID != onlySession {
			continue
		}
		report.Events++
		s, ok := sessions[ev.SessionID]
		if !ok {
			s = &sessionSummary{SessionID: ev.SessionID, UserID: ev.UserID, StartTime: ev.Timestamp}
			sessions[ev.SessionID] = s
			sheetsSeen[ev.SessionID] = map[string]bool{}
			order = append(order, ev.SessionID)
		}
		s.EndTime = ev.Timestamp
		if ev.Sheet != "" && !sheetsSeen[ev.SessionID][ev.Sheet] {
			sheetsSeen[ev.SessionID][ev.Sheet] = true
			s.Sheets = append(s.Sheets, ev.Sheet)
		}
		applyEvent(s, ev)
	}

	for _, id := range order {
		report.Sessions = append(report.Sessions, *sessions[id])
	}
	return report
}

func applyEvent(s *sessionSummary, ev telemetryEvent) {
	switch ev.Event {
	case "run_started":
		s.RunsStarted++
		s.FinalProgress = intField(ev, "progress", s.FinalProgress)
	case "run_completed":
		s.RunsCompleted++
		s.FinalProgress = 100
	case "run_stopped":
		s.RunsStopped++
		s.FinalProgress = intField(ev, "progress", s.FinalProgress)
	case "row_injected":
		s.RowsInjected++
	case "row_added":
		s.RowsAdded++
	case "rows_deleted":
		s.RowsDeleted += intField(ev, "count", 0)
	case "sheet_created":
		s.SheetsCreated++
	case "export_written":
		s.Exports++
	case "payment_modal_opened":
		s.PaymentModalOpens++
	}
}

func intField(ev telemetryEvent, key string, fallback int) int {
	raw, ok := ev.ExtraJSON[key]
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}
