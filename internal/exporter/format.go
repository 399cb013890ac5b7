package exporter

import (
	"strings"

	"demandcli/pkg/contracts/domain"
)

// Column names appended to processed sheets.
const (
	ProblemsColumn = "PROBLEMAS"
	StatusColumn   = "STATUS"
)

// problemSeparator joins multiple problems into one output cell.
const problemSeparator = "; "

// sheetHeaders returns the output header row for a validated sheet: the
// normalized columns plus the validation columns.
func sheetHeaders(sheet *domain.ValidatedSheet) []string {
	headers := make([]string, 0, len(sheet.Columns)+2)
	headers = append(headers, sheet.Columns...)
	return append(headers, ProblemsColumn, StatusColumn)
}

// recordRow renders one validated record as output cells in header order.
func recordRow(sheet *domain.ValidatedSheet, rec domain.ValidatedRecord) []string {
	row := make([]string, 0, len(sheet.Columns)+2)
	for _, col := range sheet.Columns {
		row = append(row, rec.Record.Get(col).String())
	}
	row = append(row,
		strings.Join(rec.Outcome.Problems, problemSeparator),
		string(rec.Outcome.Severity))
	return row
}
