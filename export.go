package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bekirdag/bitscale-grid/internal/grid"
)

type exportFormat string

const (
	exportCSV  exportFormat = "csv"
	exportXLSX exportFormat = "xlsx"
)

// exportTable is the displayed view flattened to strings: visible columns
// only, in display order.
type exportTable struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

func buildExportTable(sheet string, view []grid.DisplayRow, fields []grid.Field) exportTable {
	table := exportTable{Sheet: sheet}
	table.Header = append(table.Header, "#")
	for _, f := range fields {
		table.Header = append(table.Header, f.Label())
	}
	for _, dr := range view {
		record := []string{fmt.Sprintf("%d", dr.Index)}
		for _, f := range fields {
			record = append(record, dr.Row.Value(f))
		}
		table.Rows = append(table.Rows, record)
	}
	return table
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func exportFileName(sheet string, format exportFormat, now time.Time) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(sheet), "-"), "-")
	if base == "" {
		base = "sheet"
	}
	return fmt.Sprintf("%s-%s.%s", base, now.Format("20060102-150405"), format)
}

func writeExport(dir string, table exportTable, format exportFormat, now time.Time) (string, error) {
	if err := ensureDir(dir); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, exportFileName(table.Sheet, format, now))
	var err error
	switch format {
	case exportCSV:
		err = writeCSV(path, table)
	case exportXLSX:
		err = writeXLSX(path, table)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, table exportTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return f.Close()
}

// xlsx sheet names are capped at 31 characters and may not contain []:*?/\
var invalidSheetChars = regexp.MustCompile(`[\[\]:*?/\\]`)

func xlsxSheetName(name string) string {
	clean := strings.TrimSpace(invalidSheetChars.ReplaceAllString(name, " "))
	if clean == "" {
		clean = "Sheet1"
	}
	if len(clean) > 31 {
		clean = clean[:31]
	}
	return clean
}

func writeXLSX(path string, table exportTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := xlsxSheetName(table.Sheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name xlsx sheet: %w", err)
	}

	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, record := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for j, v := range record {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, bold)
	}
	if last, err := excelize.ColumnNumberToName(len(table.Header)); err == nil && len(table.Header) > 1 {
		_ = f.SetColWidth(sheet, "B", last, 22)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

// tsvRows renders rows for the clipboard: tab separated, one line per row.
func tsvRows(table exportTable, withHeader bool) string {
	var lines []string
	if withHeader {
		lines = append(lines, strings.Join(table.Header, "\t"))
	}
	for _, record := range table.Rows {
		cleaned := make([]string, len(record))
		for i, v := range record {
			cleaned[i] = strings.NewReplacer("\t", " ", "\n", " ").Replace(v)
		}
		lines = append(lines, strings.Join(cleaned, "\t"))
	}
	return strings.Join(lines, "\n")
}
