package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTelemetry = `{"session_id":"s1","user_id":"ann","timestamp":"2024-10-12T08:00:00Z","event":"run_started","sheet":"Bitscale grid only","extra_json":{"progress":"0"}}
{"session_id":"s1","user_id":"ann","timestamp":"2024-10-12T08:00:01Z","event":"row_injected","sheet":"Bitscale grid only","extra_json":{"row_id":"4"}}
not json
{"session_id":"s1","user_id":"ann","timestamp":"2024-10-12T08:00:02Z","event":"run_stopped","sheet":"Bitscale grid only","extra_json":{"progress":"55"}}
{"session_id":"s2","timestamp":"2024-10-12T09:00:00Z","event":"sheet_created","sheet":"Sheet 2"}

{"session_id":"s1","user_id":"ann","timestamp":"2024-10-12T08:00:05Z","event":"rows_deleted","sheet":"Sheet 2","extra_json":{"count":"3"}}
{"session_id":"s2","timestamp":"2024-10-12T09:00:03Z","event":"run_completed","sheet":"Sheet 2"}
{"session_id":"s2","timestamp":"2024-10-12T09:00:04Z","event":"export_written","sheet":"Sheet 2","extra_json":{"format":"csv"}}
`

func TestParseEventsSkipsMalformedLines(t *testing.T) {
	events, skipped, err := parseEvents(strings.NewReader(sampleTelemetry))
	require.NoError(t, err)
	assert.Len(t, events, 7)
	assert.Equal(t, 1, skipped)
}

func TestBuildReportGroupsBySession(t *testing.T) {
	events, skipped, err := parseEvents(strings.NewReader(sampleTelemetry))
	require.NoError(t, err)

	report := buildReport("telemetry.jsonl", events, skipped, "")
	require.Len(t, report.Sessions, 2)
	assert.Equal(t, 7, report.Events)

	s1 := report.Sessions[0]
	assert.Equal(t, "s1", s1.SessionID)
	assert.Equal(t, "ann", s1.UserID)
	assert.Equal(t, 1, s1.RunsStarted)
	assert.Equal(t, 1, s1.RunsStopped)
	assert.Equal(t, 1, s1.RowsInjected)
	assert.Equal(t, 3, s1.RowsDeleted)
	assert.Equal(t, 55, s1.FinalProgress)
	assert.Equal(t, []string{"Bitscale grid only", "Sheet 2"}, s1.Sheets)

	s2 := report.Sessions[1]
	assert.Equal(t, 1, s2.SheetsCreated)
	assert.Equal(t, 1, s2.RunsCompleted)
	assert.Equal(t, 1, s2.Exports)
	assert.Equal(t, 100, s2.FinalProgress)
}

func TestBuildReportSessionFilter(t *testing.T) {
	events, _, err := parseEvents(strings.NewReader(sampleTelemetry))
	require.NoError(t, err)

	report := buildReport("telemetry.jsonl", events, 0, "s2")
	require.Len(t, report.Sessions, 1)
	assert.Equal(t, "s2", report.Sessions[0].SessionID)
	assert.Equal(t, 3, report.Events)
}
