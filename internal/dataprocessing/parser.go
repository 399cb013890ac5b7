package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	pipeerrors "demandcli/internal/errors"
	"demandcli/pkg/contracts/domain"
)

// ParseWorkbook reads the named sheets from an Excel workbook into raw
// sheets. The first non-empty row of each sheet is the header; subsequent
// rows become records of text cells, with empty strings mapped to empty
// cells. Requested sheets missing from the workbook are skipped with a
// warning so one bad workbook layout does not abort the run; if none of the
// requested sheets exist the workbook is unusable and an error is returned.
//
// An empty sheetNames slice reads every sheet in the workbook.
func ParseWorkbook(path string, sheetNames []string, logger *slog.Logger) ([]domain.Sheet, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if len(sheetNames) == 0 {
		sheetNames = f.GetSheetList()
	}

	var sheets []domain.Sheet
	for _, name := range sheetNames {
		rows, err := f.GetRows(name)
		if err != nil {
			logger.Warn("sheet not found in workbook",
				slog.String("workbook", path),
				slog.String("sheet", name))
			continue
		}

		sheet := buildSheet(name, rows)
		logger.Info("sheet loaded",
			slog.String("sheet", name),
			slog.Int("columns", len(sheet.Columns)),
			slog.Int("records", len(sheet.Records)))
		sheets = append(sheets, sheet)
	}

	if len(sheets) == 0 {
		return nil, pipeerrors.Wrap(pipeerrors.ErrSheetNotFound,
			pipeerrors.CodeSheetNotFound,
			fmt.Sprintf("workbook %s contains none of the requested sheets", path))
	}

	return sheets, nil
}

// buildSheet converts raw cell rows to a Sheet. Fully-empty rows are
// skipped; short rows are padded with empty cells.
func buildSheet(name string, rows [][]string) domain.Sheet {
	sheet := domain.Sheet{Name: name}

	headerRow := -1
	for i, row := range rows {
		if !rowEmpty(row) {
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return sheet
	}

	for _, header := range rows[headerRow] {
		sheet.Columns = append(sheet.Columns, header)
	}

	for _, row := range rows[headerRow+1:] {
		if rowEmpty(row) {
			continue
		}
		rec := domain.NewRecord(sheet.Columns)
		for i, col := range sheet.Columns {
			var value string
			if i < len(row) {
				value = row[i]
			}
			if strings.TrimSpace(value) == "" {
				rec.Values[col] = domain.Cell{}
			} else {
				rec.Values[col] = domain.TextCell(value)
			}
		}
		sheet.Records = append(sheet.Records, rec)
	}

	return sheet
}

// rowEmpty reports whether every cell of the row is blank.
func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
