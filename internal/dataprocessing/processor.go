package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	pipeerrors "demandcli/internal/errors"
	"demandcli/pkg/contracts/domain"
)

// distributionColumns maps report distribution keys to the columns whose
// value frequencies are tracked per sheet.
var distributionColumns = map[string]string{
	"bancos":    "BANCO",
	"diretores": "DIRETOR",
}

// ProcessorConfig holds configuration options for the Processor.
type ProcessorConfig struct {
	DateMin time.Time // inclusive lower bound for accepted dates
	DateMax time.Time // inclusive upper bound for accepted dates
	TopN    int       // size bound for frequency tables
}

// DefaultProcessorConfig returns the standard processing configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		DateMin: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		DateMax: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		TopN:    10,
	}
}

// Processor orchestrates normalization, validation and aggregation across
// sheets. One Processor owns one RuleSet, so discovery state is scoped to a
// single run and runs stay independent.
type Processor struct {
	logger    *slog.Logger
	rules     *RuleSet
	validator *Validator
	topN      int
}

// NewProcessor creates a processor for one pipeline run.
func NewProcessor(logger *slog.Logger, rules *RuleSet, cfg ProcessorConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	return &Processor{
		logger:    logger,
		rules:     rules,
		validator: NewValidator(rules, cfg.DateMin, cfg.DateMax),
		topN:      cfg.TopN,
	}
}

// Rules returns the rule set owned by this processor.
func (p *Processor) Rules() *RuleSet {
	return p.rules
}

// ProcessSheet runs the full pipeline over one sheet: normalize every
// record, validate it against the shared rule set, then compute the
// sheet-level aggregates. Structural failures (no rows, required column
// absent from the schema) return an error; everything else degrades to
// report content.
func (p *Processor) ProcessSheet(ctx context.Context, sheet domain.Sheet) (*domain.ValidatedSheet, error) {
	p.logger.InfoContext(ctx, "processing sheet",
		slog.String("sheet", sheet.Name),
		slog.Int("record_count", len(sheet.Records)))

	if len(sheet.Records) == 0 {
		return nil, pipeerrors.EmptySheet(sheet.Name)
	}

	columns := make([]string, 0, len(sheet.Columns))
	columnSet := make(map[string]struct{}, len(sheet.Columns))
	for _, col := range sheet.Columns {
		norm := NormalizeColumnName(col)
		columns = append(columns, norm)
		columnSet[norm] = struct{}{}
	}

	if _, ok := columnSet[DateColumn]; !ok {
		return nil, pipeerrors.MissingColumn(sheet.Name, DateColumn)
	}
	for _, field := range p.rules.Required() {
		if _, ok := columnSet[field.Column]; !ok {
			return nil, pipeerrors.MissingColumn(sheet.Name, field.Column)
		}
	}

	before := p.rules.Discovered()
	types := ColumnTypes(sheet.Columns)

	validated := make([]domain.ValidatedRecord, 0, len(sheet.Records))
	for _, rec := range sheet.Records {
		normalized := NormalizeRecord(rec, types)
		validated = append(validated, domain.ValidatedRecord{
			Record:  normalized,
			Outcome: p.validator.ValidateRecord(normalized),
		})
	}

	report := p.buildSheetReport(sheet.Name, columns, validated)
	report.NewValues = newDiscoveries(before, p.rules.Discovered())

	p.logger.InfoContext(ctx, "sheet processed",
		slog.String("sheet", sheet.Name),
		slog.Int("total", report.TotalRecords),
		slog.Int("ok", report.StatusCounts[domain.SeverityOK]),
		slog.Int("warnings", report.StatusCounts[domain.SeverityWarning]),
		slog.Int("critical", report.StatusCounts[domain.SeverityCritical]))

	return &domain.ValidatedSheet{
		Name:    sheet.Name,
		Columns: columns,
		Records: validated,
		Report:  report,
	}, nil
}

// ProcessSheets processes every sheet sequentially with partial success:
// a structural failure in one sheet is recorded and does not abort its
// siblings. The returned map holds the per-sheet errors, keyed by name.
func (p *Processor) ProcessSheets(ctx context.Context, sheets []domain.Sheet) ([]*domain.ValidatedSheet, map[string]error) {
	var processed []*domain.ValidatedSheet
	failures := make(map[string]error)

	for _, sheet := range sheets {
		result, err := p.ProcessSheet(ctx, sheet)
		if err != nil {
			p.logger.ErrorContext(ctx, "sheet processing failed",
				slog.String("sheet", sheet.Name),
				slog.String("error", err.Error()))
			failures[sheet.Name] = err
			continue
		}
		processed = append(processed, result)
	}

	return processed, failures
}

// buildSheetReport computes the aggregate statistics for one sheet.
func (p *Processor) buildSheetReport(name string, columns []string, records []domain.ValidatedRecord) domain.SheetReport {
	statusCounts := make(map[domain.Severity]int, 3)
	problemFreq := make(map[string]int)
	missing := make(map[string]int, len(columns))
	for _, col := range columns {
		missing[col] = 0
	}

	valueFreq := make(map[string]map[string]int, len(distributionColumns))
	for key := range distributionColumns {
		valueFreq[key] = make(map[string]int)
	}

	for _, rec := range records {
		statusCounts[rec.Outcome.Severity]++
		for _, problem := range rec.Outcome.Problems {
			problemFreq[problem]++
		}
		for _, col := range rec.Record.Columns {
			if rec.Record.Get(col).IsEmpty() {
				missing[col]++
			}
		}
		for key, col := range distributionColumns {
			if cell := rec.Record.Get(col); cell.Kind == domain.CellText {
				valueFreq[key][cell.Text]++
			}
		}
	}

	distributions := make(map[string][]domain.ValueCount, len(valueFreq)+1)
	for key, freq := range valueFreq {
		distributions[key] = topValues(freq, p.topN)
	}
	statusDist := make(map[string]int, len(statusCounts))
	for sev, count := range statusCounts {
		statusDist[string(sev)] = count
	}
	distributions["status"] = topValues(statusDist, p.topN)

	return domain.SheetReport{
		Sheet:          name,
		TotalRecords:   len(records),
		StatusCounts:   statusCounts,
		TopProblems:    topProblems(problemFreq, p.topN),
		MissingByField: missing,
		Distributions:  distributions,
	}
}

// topValues returns the n most frequent values, count descending with value
// ascending as the tiebreak so output is deterministic.
func topValues(freq map[string]int, n int) []domain.ValueCount {
	counts := make([]domain.ValueCount, 0, len(freq))
	for value, count := range freq {
		counts = append(counts, domain.ValueCount{Value: value, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// topProblems returns the n most frequent problem messages.
func topProblems(freq map[string]int, n int) []domain.ProblemCount {
	counts := make([]domain.ProblemCount, 0, len(freq))
	for problem, count := range freq {
		counts = append(counts, domain.ProblemCount{Problem: problem, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Problem < counts[j].Problem
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// newDiscoveries returns the values present in after but not in before,
// per column. Both arguments are sorted snapshots from RuleSet.Discovered.
func newDiscoveries(before, after map[string][]string) map[string][]string {
	if len(after) == 0 {
		return nil
	}
	seen := make(map[string]map[string]struct{}, len(before))
	for column, values := range before {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		seen[column] = set
	}

	out := make(map[string][]string)
	for column, values := range after {
		for _, v := range values {
			if _, ok := seen[column][v]; !ok {
				out[column] = append(out[column], v)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
