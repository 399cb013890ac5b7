package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"demandcli/pkg/contracts/domain"
)

// ExcelWriter writes processed workbooks.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new processed-workbook writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteProcessed writes the validated sheets into one workbook, each sheet
// under its source name with the validation columns appended. Dates render
// in ISO form and currency as plain numbers.
func (w *ExcelWriter) WriteProcessed(path string, sheets []*domain.ValidatedSheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	w.logger.Info("writing processed workbook",
		slog.String("path", path),
		slog.Int("sheet_count", len(sheets)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
			}
		}

		if err := writeSheetRow(f, sheet.Name, 1, sheetHeaders(sheet)); err != nil {
			return err
		}
		for r, rec := range sheet.Records {
			if err := writeSheetRow(f, sheet.Name, r+2, recordRow(sheet, rec)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeSheetRow writes one row of string cells starting at column A.
func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell for row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", row, sheet, err)
	}
	return nil
}
