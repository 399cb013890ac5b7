package domain

import (
	"strconv"
	"time"
)

// CellKind identifies the scalar type held by a Cell.
type CellKind int

const (
	// CellEmpty marks a missing or unset value.
	CellEmpty CellKind = iota
	// CellText holds a free-text value.
	CellText
	// CellNumber holds a numeric value (monetary amounts after normalization).
	CellNumber
	// CellDate holds a calendar date.
	CellDate
)

// Cell is a single untyped spreadsheet value. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// TextCell creates a text-valued cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell creates a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// DateCell creates a date-valued cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell the way it appears in an output sheet.
// Empty cells render as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Record is a single demand row: an ordered mapping from column name to cell.
// Records are never mutated in place; normalization produces a new record.
type Record struct {
	Columns []string
	Values  map[string]Cell
}

// NewRecord creates an empty record with the given column order.
func NewRecord(columns []string) Record {
	return Record{
		Columns: columns,
		Values:  make(map[string]Cell, len(columns)),
	}
}

// Get returns the cell for a column, or an empty cell when the column is
// absent from the record.
func (r Record) Get(column string) Cell {
	return r.Values[column]
}

// Sheet is one named tabular collection of demand records.
type Sheet struct {
	Name    string
	Columns []string
	Records []Record
}

// Severity is the three-level quality classification of a validated record.
type Severity string

const (
	// SeverityOK marks a record with no validation problems.
	SeverityOK Severity = "OK"
	// SeverityWarning marks a record with problems not involving the date field.
	SeverityWarning Severity = "AVISO"
	// SeverityCritical marks a record whose date field is missing or out of range.
	SeverityCritical Severity = "CRÍTICO"
)

// Outcome is the validation result attached to one normalized record.
// Problems are ordered: date checks first, then required fields in their
// configured enumeration order.
type Outcome struct {
	Problems []string `json:"problemas"`
	Severity Severity `json:"status"`
}

// ValidatedRecord pairs a normalized record with its validation outcome.
type ValidatedRecord struct {
	Record  Record
	Outcome Outcome
}

// ValidatedSheet is the processed form of one input sheet: every record
// normalized and validated, plus the sheet-level aggregate report.
type ValidatedSheet struct {
	Name    string
	Columns []string
	Records []ValidatedRecord
	Report  SheetReport
}
