package domain

// ProblemCount is one entry of the problem-frequency table.
type ProblemCount struct {
	Problem string `json:"problema"`
	Count   int    `json:"ocorrencias"`
}

// ValueCount is one entry of a value-frequency distribution.
type ValueCount struct {
	Value string `json:"valor"`
	Count int    `json:"ocorrencias"`
}

// SheetReport aggregates the validation results of one sheet.
// It contains only primitive, serializable types.
type SheetReport struct {
	Sheet          string                  `json:"aba"`
	TotalRecords   int                     `json:"total_registros"`
	StatusCounts   map[Severity]int        `json:"status"`
	TopProblems    []ProblemCount          `json:"problemas_frequentes"`
	MissingByField map[string]int          `json:"campos_vazios"`
	Distributions  map[string][]ValueCount `json:"distribuicoes"`
	// NewValues holds the closed-domain values first seen while processing
	// this sheet, keyed by column.
	NewValues map[string][]string `json:"valores_novos,omitempty"`
}

// ReportMeta is the metadata block of a pipeline report.
type ReportMeta struct {
	RunID       string              `json:"run_id"`
	GeneratedAt string              `json:"data_processamento"`
	ValidValues map[string][]string `json:"regras_validacao"`
	// Discovered is the final state of the discovery sets across all sheets.
	Discovered map[string][]string `json:"valores_descobertos,omitempty"`
}

// Report is the final structured pipeline report, the hand-off boundary to
// the JSON/HTML serialization layer.
type Report struct {
	Meta   ReportMeta             `json:"meta"`
	Sheets map[string]SheetReport `json:"resultados"`
}
