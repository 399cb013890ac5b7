package dataprocessing

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	pipeerrors "demandcli/internal/errors"
	"demandcli/pkg/contracts/domain"
)

// writeTestWorkbook creates an xlsx file with the given sheets, each a grid
// of string cells.
func writeTestWorkbook(t *testing.T, path string, sheets map[string][][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestParseWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DEMANDAS_2025.xlsx")
	writeTestWorkbook(t, path, map[string][][]string{
		"DEMANDAS JULIO": {
			{"DATA", "RESPONSAVEL", "SITUACAO", "BANCO", "DIRETOR"},
			{"31/01/2025", "JULIO", "QUITADO", "BRADESCO", "JULIO"},
			{"", "", "", "", ""},
			{"01/02/2025", "JULIO", "PENDENTE", "", "JULIO"},
		},
	})

	sheets, err := ParseWorkbook(path, []string{"DEMANDAS JULIO"}, slog.Default())
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "DEMANDAS JULIO", sheet.Name)
	assert.Equal(t, []string{"DATA", "RESPONSAVEL", "SITUACAO", "BANCO", "DIRETOR"}, sheet.Columns)
	// The fully-empty row is skipped.
	require.Len(t, sheet.Records, 2)

	assert.Equal(t, domain.TextCell("31/01/2025"), sheet.Records[0].Get("DATA"))
	// Blank cells come through as missing, not empty strings.
	assert.True(t, sheet.Records[1].Get("BANCO").IsEmpty())
}

func TestParseWorkbook_MissingSheetIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DEMANDAS_2025.xlsx")
	writeTestWorkbook(t, path, map[string][][]string{
		"QUITADOS": {
			{"DATA", "BANCO"},
			{"31/01/2025", "BRADESCO"},
		},
	})

	sheets, err := ParseWorkbook(path, []string{"QUITADOS", "DOES NOT EXIST"}, slog.Default())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "QUITADOS", sheets[0].Name)
}

func TestParseWorkbook_NoRequestedSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DEMANDAS_2025.xlsx")
	writeTestWorkbook(t, path, map[string][][]string{
		"OUTRA ABA": {{"DATA"}},
	})

	_, err := ParseWorkbook(path, []string{"DEMANDAS JULIO"}, slog.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeerrors.ErrSheetNotFound)
}

func TestParseWorkbook_AllSheetsWhenUnspecified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DEMANDAS_2025.xlsx")
	writeTestWorkbook(t, path, map[string][][]string{
		"ABA UM":  {{"DATA"}, {"31/01/2025"}},
		"ABA DOIS": {{"DATA"}, {"01/02/2025"}},
	})

	sheets, err := ParseWorkbook(path, nil, slog.Default())
	require.NoError(t, err)
	assert.Len(t, sheets, 2)
}

func TestParseWorkbook_OpenFailure(t *testing.T) {
	_, err := ParseWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), nil, slog.Default())
	assert.Error(t, err)
}

func TestBuildSheet_LeadingEmptyRowsBeforeHeader(t *testing.T) {
	sheet := buildSheet("QUITADOS", [][]string{
		{"", ""},
		{"DATA", "BANCO"},
		{"31/01/2025", "BRADESCO"},
	})

	assert.Equal(t, []string{"DATA", "BANCO"}, sheet.Columns)
	require.Len(t, sheet.Records, 1)
}

func TestBuildSheet_ShortRowsPadded(t *testing.T) {
	sheet := buildSheet("QUITADOS", [][]string{
		{"DATA", "BANCO", "DIRETOR"},
		{"31/01/2025"},
	})

	require.Len(t, sheet.Records, 1)
	assert.True(t, sheet.Records[0].Get("BANCO").IsEmpty())
	assert.True(t, sheet.Records[0].Get("DIRETOR").IsEmpty())
}
