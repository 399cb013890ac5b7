package dataprocessing

import (
	"time"

	"github.com/google/uuid"

	"demandcli/pkg/contracts/domain"
)

// reportTimeFormat is the timestamp format used in the report metadata.
const reportTimeFormat = "2006-01-02 15:04:05"

// BuildReport assembles the final structured report from the processed
// sheets and the final rule-set state. The result contains only primitive
// types and is handed directly to the serialization layer.
func BuildReport(sheets []*domain.ValidatedSheet, rules *RuleSet) *domain.Report {
	report := &domain.Report{
		Meta: domain.ReportMeta{
			RunID:       uuid.NewString(),
			GeneratedAt: time.Now().Format(reportTimeFormat),
			ValidValues: rules.ValidValues(),
			Discovered:  rules.Discovered(),
		},
		Sheets: make(map[string]domain.SheetReport, len(sheets)),
	}
	for _, sheet := range sheets {
		report.Sheets[sheet.Name] = sheet.Report
	}
	return report
}
