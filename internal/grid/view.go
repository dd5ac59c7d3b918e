package grid

import (
	"sort"
	"strings"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig with an empty Key leaves rows in append order.
type SortConfig struct {
	Key       Field
	Direction SortDirection
}

func (c SortConfig) IsSet() bool {
	return c.Key != ""
}

func (c SortConfig) String() string {
	if !c.IsSet() {
		return "None"
	}
	if c.Direction == SortDesc {
		return c.Key.Label() + " (Z-A)"
	}
	return c.Key.Label() + " (A-Z)"
}

type FilterStatus string

const (
	FilterAll     FilterStatus = "all"
	FilterFound   FilterStatus = "found"
	FilterMissing FilterStatus = "missing"
)

func (f FilterStatus) String() string {
	switch f {
	case FilterFound:
		return "Found Only"
	case FilterMissing:
		return "Missing Only"
	default:
		return "Show All"
	}
}

func (f FilterStatus) Next() FilterStatus {
	switch f {
	case FilterAll:
		return FilterFound
	case FilterFound:
		return FilterMissing
	default:
		return FilterAll
	}
}

type ViewConfig struct {
	SearchTerm string
	Sort       SortConfig
	Filter     FilterStatus
}

type DisplayRow struct {
	Index int
	Row   Row
}

// DeriveView applies search, then the email-presence filter, then a stable
// case-insensitive sort, and numbers the result from 1.
func DeriveView(rows []Row, cfg ViewConfig) []DisplayRow {
	result := SearchRows(rows, cfg.SearchTerm)
	result = FilterRows(result, cfg.Filter)
	result = SortRows(result, cfg.Sort)

	out := make([]DisplayRow, len(result))
	for i, row := range result {
		out[i] = DisplayRow{Index: i + 1, Row: row}
	}
	return out
}

func SearchRows(rows []Row, term string) []Row {
	if term == "" {
		return append([]Row(nil), rows...)
	}
	needle := strings.ToLower(term)
	var out []Row
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), needle) ||
			strings.Contains(strings.ToLower(row.Company), needle) {
			out = append(out, row)
		}
	}
	return out
}

func FilterRows(rows []Row, filter FilterStatus) []Row {
	var out []Row
	for _, row := range rows {
		switch filter {
		case FilterFound:
			if !row.HasEmail() {
				continue
			}
		case FilterMissing:
			if row.HasEmail() {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

func SortRows(rows []Row, cfg SortConfig) []Row {
	out := append([]Row(nil), rows...)
	if !cfg.IsSet() {
		return out
	}
	desc := cfg.Direction == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		left := strings.ToLower(out[i].Value(cfg.Key))
		right := strings.ToLower(out[j].Value(cfg.Key))
		if desc {
			return left > right
		}
		return left < right
	})
	return out
}
