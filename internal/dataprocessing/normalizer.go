package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"demandcli/pkg/contracts/domain"
)

// ColumnType identifies which normalizer applies to a column.
type ColumnType int

const (
	// ColumnText applies free-text normalization (default).
	ColumnText ColumnType = iota
	// ColumnDate applies the date fallback-chain parser.
	ColumnDate
	// ColumnCurrency applies monetary normalization.
	ColumnCurrency
)

// currencyMarkers are the column-name substrings that mark a monetary column.
var currencyMarkers = []string{"VALOR", "VLR", "SALDO", "DESCONTO"}

// NormalizeColumnName canonicalizes a column name: trimmed and upper-cased.
func NormalizeColumnName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// InferColumnType determines the semantic type of a column from its name.
// Date columns take priority over currency columns.
func InferColumnType(name string) ColumnType {
	name = NormalizeColumnName(name)
	if strings.Contains(name, "DATA") {
		return ColumnDate
	}
	for _, marker := range currencyMarkers {
		if strings.Contains(name, marker) {
			return ColumnCurrency
		}
	}
	return ColumnText
}

// ColumnTypes computes the type tag for every column once up front,
// keyed by normalized column name.
func ColumnTypes(columns []string) map[string]ColumnType {
	types := make(map[string]ColumnType, len(columns))
	for _, col := range columns {
		types[NormalizeColumnName(col)] = InferColumnType(col)
	}
	return types
}

// dateLayouts is the fixed-order fallback chain for date parsing. Day-first
// layouts come before their ambiguous counterparts so mixed manual entry
// resolves to the day/month/year reading dominant in the source data.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/06",
	"2006/01/02",
	"02.01.2006",
	"02.01.06",
	"2006.01.02",
}

// genericDateLayouts are the permissive last-resort layouts tried after the
// fixed chain is exhausted.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// NormalizeDate converts a cell to a canonical date. Date-typed cells pass
// through unchanged. Strings are tried against the fixed layout chain, first
// success wins, then against the permissive layouts. Returns false when no
// parse succeeds or the cell is empty.
func NormalizeDate(c domain.Cell) (time.Time, bool) {
	switch c.Kind {
	case domain.CellDate:
		return c.Date, true
	case domain.CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		for _, layout := range genericDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// NormalizeCurrency converts a cell to a monetary amount. Missing or
// unparseable values become 0.0: currency absence means "no value" for
// aggregation, not unset. Strings have the R$ prefix stripped, thousands
// separator periods removed, and the decimal comma converted.
func NormalizeCurrency(c domain.Cell) float64 {
	switch c.Kind {
	case domain.CellNumber:
		return c.Number
	case domain.CellText:
		s := strings.TrimSpace(c.Text)
		s = strings.TrimPrefix(s, "R$")
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		s = strings.TrimSpace(s)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0.0
		}
		return v
	}
	return 0.0
}

// NormalizeText converts a cell to canonical free text: stringified, trimmed
// and upper-cased. Returns false for empty cells, whitespace-only values and
// the literal "NAN" (stringification artifact of a missing marker).
func NormalizeText(c domain.Cell) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	s := strings.ToUpper(strings.TrimSpace(c.String()))
	if s == "" || s == "NAN" {
		return "", false
	}
	return s, true
}

// NormalizeRecord applies the per-column normalizers to a raw record,
// producing a new record with canonical column names and values. Values
// that fail conversion become empty cells (dates, text) or zero (currency).
func NormalizeRecord(rec domain.Record, types map[string]ColumnType) domain.Record {
	out := domain.NewRecord(make([]string, 0, len(rec.Columns)))
	for _, col := range rec.Columns {
		norm := NormalizeColumnName(col)
		out.Columns = append(out.Columns, norm)

		cell := rec.Get(col)
		switch types[norm] {
		case ColumnDate:
			if t, ok := NormalizeDate(cell); ok {
				out.Values[norm] = domain.DateCell(t)
			} else {
				out.Values[norm] = domain.Cell{}
			}
		case ColumnCurrency:
			out.Values[norm] = domain.NumberCell(NormalizeCurrency(cell))
		default:
			if s, ok := NormalizeText(cell); ok {
				out.Values[norm] = domain.TextCell(s)
			} else {
				out.Values[norm] = domain.Cell{}
			}
		}
	}
	return out
}
