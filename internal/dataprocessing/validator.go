package dataprocessing

import (
	"strings"
	"time"

	"demandcli/pkg/contracts/domain"
)

// DateColumn is the normalized name of the demand date column.
const DateColumn = "DATA"

// Problem messages are kept in the source-data language because they are
// written back into the processed workbook and consumed by reviewers.
const (
	problemDateMissing    = "Data não definida"
	problemDateOutOfRange = "Data fora do intervalo esperado"
	problemFieldMissing   = " não definido"
)

// Validator applies a rule set to normalized records. Validation doubles as
// discovery: unrecognized closed-domain values are added to the rule set's
// discovery sets instead of being flagged as problems.
type Validator struct {
	rules   *RuleSet
	dateMin time.Time
	dateMax time.Time
}

// NewValidator creates a validator with the inclusive accepted date range.
func NewValidator(rules *RuleSet, dateMin, dateMax time.Time) *Validator {
	return &Validator{rules: rules, dateMin: dateMin, dateMax: dateMax}
}

// ValidateRecord checks one normalized record and returns its outcome.
// Checks run in fixed order: the date first, then each required field in
// enumeration order, so the problem list order is reproducible.
func (v *Validator) ValidateRecord(rec domain.Record) domain.Outcome {
	var problems []string

	date := rec.Get(DateColumn)
	if date.Kind != domain.CellDate {
		problems = append(problems, problemDateMissing)
	} else if date.Date.Before(v.dateMin) || date.Date.After(v.dateMax) {
		problems = append(problems, problemDateOutOfRange)
	}

	for _, field := range v.rules.Required() {
		cell := rec.Get(field.Column)
		if cell.IsEmpty() {
			problems = append(problems, field.Label+problemFieldMissing)
			continue
		}
		if v.rules.HasClosedDomain(field.Column) && !v.rules.IsValid(field.Column, cell.Text) {
			v.rules.Discover(field.Column, cell.Text)
		}
	}

	return domain.Outcome{
		Problems: problems,
		Severity: SeverityFor(problems),
	}
}

// SeverityFor derives the severity purely from the problem list: critical
// iff any problem concerns the date field, warning for any other non-empty
// list, otherwise OK.
func SeverityFor(problems []string) domain.Severity {
	if len(problems) == 0 {
		return domain.SeverityOK
	}
	for _, p := range problems {
		if strings.Contains(p, "Data") {
			return domain.SeverityCritical
		}
	}
	return domain.SeverityWarning
}
