package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"demandcli/pkg/contracts/domain"
)

// JSONWriter writes the structured pipeline report.
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new report writer.
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger}
}

// WriteReport serializes the report as indented JSON.
func (w *JSONWriter) WriteReport(path string, report *domain.Report) error {
	w.logger.Info("writing report",
		slog.String("path", path),
		slog.Int("sheet_count", len(report.Sheets)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteComparative serializes a comparative analysis result as indented
// JSON. The value is any serializable report structure.
func (w *JSONWriter) WriteComparative(path string, report interface{}) error {
	w.logger.Info("writing comparative report", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparative report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write comparative report: %w", err)
	}
	return nil
}
