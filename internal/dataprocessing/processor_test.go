package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipeerrors "demandcli/internal/errors"
	"demandcli/pkg/contracts/domain"
)

// rawDemandSheet builds a raw sheet from literal rows in column order
// DATA, RESPONSAVEL, SITUACAO, BANCO, DIRETOR. Empty strings become
// missing cells, as the workbook parser produces them.
func rawDemandSheet(name string, rows [][]string) domain.Sheet {
	columns := []string{"Data", "Responsavel", "Situacao", "Banco", "Diretor"}
	sheet := domain.Sheet{Name: name, Columns: columns}
	for _, row := range rows {
		rec := domain.NewRecord(columns)
		for i, col := range columns {
			if row[i] == "" {
				rec.Values[col] = domain.Cell{}
			} else {
				rec.Values[col] = domain.TextCell(row[i])
			}
		}
		sheet.Records = append(sheet.Records, rec)
	}
	return sheet
}

func testProcessor(t *testing.T) *Processor {
	t.Helper()
	return NewProcessor(nil, testRuleSet(t), DefaultProcessorConfig())
}

func TestProcessSheet_EndToEnd(t *testing.T) {
	p := testProcessor(t)
	sheet := rawDemandSheet("DEMANDAS JULIO", [][]string{
		{"31/01/2025", "JULIO", "QUITADO", "BRADESCO", "JULIO"},
		{"invalid", "JULIO", "QUITADO", "BRADESCO", "JULIO"},
		{"01/02/2025", "JULIO", "QUITADO", "UNKNOWNBANK", "JULIO"},
		{"", "JULIO", "QUITADO", "BRADESCO", "JULIO"},
	})

	result, err := p.ProcessSheet(context.Background(), sheet)
	require.NoError(t, err)
	require.Len(t, result.Records, 4)

	wantSeverities := []domain.Severity{
		domain.SeverityOK,
		domain.SeverityCritical,
		domain.SeverityOK,
		domain.SeverityCritical,
	}
	for i, want := range wantSeverities {
		assert.Equal(t, want, result.Records[i].Outcome.Severity, "record %d", i)
	}

	// Unknown institution is discovery-logged, never a problem.
	assert.Equal(t, []string{"UNKNOWNBANK"}, p.Rules().Discovered()["BANCO"])
	assert.Equal(t, map[string][]string{"BANCO": {"UNKNOWNBANK"}}, result.Report.NewValues)

	report := result.Report
	assert.Equal(t, 4, report.TotalRecords)
	assert.Equal(t, 2, report.StatusCounts[domain.SeverityOK])
	assert.Equal(t, 0, report.StatusCounts[domain.SeverityWarning])
	assert.Equal(t, 2, report.StatusCounts[domain.SeverityCritical])
}

func TestProcessSheet_NormalizesColumnsAndValues(t *testing.T) {
	p := testProcessor(t)
	sheet := rawDemandSheet("QUITADOS", [][]string{
		{"31/01/2025", " julio ", "quitado", " bradesco ", "julio"},
	})

	result, err := p.ProcessSheet(context.Background(), sheet)
	require.NoError(t, err)

	assert.Equal(t, []string{"DATA", "RESPONSAVEL", "SITUACAO", "BANCO", "DIRETOR"}, result.Columns)
	rec := result.Records[0].Record
	assert.Equal(t, "BRADESCO", rec.Get("BANCO").Text)
	assert.Equal(t, "QUITADO", rec.Get("SITUACAO").Text)
	assert.Equal(t, domain.CellDate, rec.Get("DATA").Kind)
}

func TestProcessSheet_EmptySheetIsStructuralFailure(t *testing.T) {
	p := testProcessor(t)
	sheet := domain.Sheet{Name: "QUITADOS", Columns: []string{"DATA", "RESPONSAVEL", "SITUACAO", "BANCO", "DIRETOR"}}

	_, err := p.ProcessSheet(context.Background(), sheet)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeerrors.ErrEmptySheet)
}

func TestProcessSheet_MissingColumnIsStructuralFailure(t *testing.T) {
	p := testProcessor(t)

	tests := []struct {
		name    string
		columns []string
	}{
		{"no date column", []string{"RESPONSAVEL", "SITUACAO", "BANCO", "DIRETOR"}},
		{"no director column", []string{"DATA", "RESPONSAVEL", "SITUACAO", "BANCO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := domain.Sheet{Name: "QUITADOS", Columns: tt.columns}
			rec := domain.NewRecord(tt.columns)
			for _, col := range tt.columns {
				rec.Values[col] = domain.TextCell("X")
			}
			sheet.Records = append(sheet.Records, rec)

			_, err := p.ProcessSheet(context.Background(), sheet)
			require.Error(t, err)
			assert.ErrorIs(t, err, pipeerrors.ErrMissingColumn)
		})
	}
}

func TestProcessSheets_PartialSuccess(t *testing.T) {
	p := testProcessor(t)
	good := rawDemandSheet("DEMANDAS JULIO", [][]string{
		{"31/01/2025", "JULIO", "QUITADO", "BRADESCO", "JULIO"},
	})
	bad := domain.Sheet{Name: "QUITADOS"}

	processed, failures := p.ProcessSheets(context.Background(), []domain.Sheet{bad, good})

	require.Len(t, processed, 1)
	assert.Equal(t, "DEMANDAS JULIO", processed[0].Name)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures["QUITADOS"], pipeerrors.ErrEmptySheet)
}

func TestProcessSheet_AggregatesProblemsAndMissing(t *testing.T) {
	p := testProcessor(t)
	sheet := rawDemandSheet("DEMANDA LEANDROADRIANO", [][]string{
		{"31/01/2025", "LEANDRO", "PENDENTE", "BRADESCO", ""},
		{"31/01/2025", "ADRIANO", "PENDENTE", "BRADESCO", ""},
		{"", "LEANDRO", "PENDENTE", "SANTANDER", "ADRIANO"},
	})

	result, err := p.ProcessSheet(context.Background(), sheet)
	require.NoError(t, err)
	report := result.Report

	require.NotEmpty(t, report.TopProblems)
	assert.Equal(t, domain.ProblemCount{Problem: "Diretor não definido", Count: 2}, report.TopProblems[0])
	assert.Equal(t, 2, report.MissingByField["DIRETOR"])
	assert.Equal(t, 1, report.MissingByField["DATA"])
	assert.Equal(t, 0, report.MissingByField["BANCO"])

	banks := report.Distributions["bancos"]
	require.NotEmpty(t, banks)
	assert.Equal(t, domain.ValueCount{Value: "BRADESCO", Count: 2}, banks[0])
	assert.Contains(t, report.Distributions, "diretores")
	assert.Contains(t, report.Distributions, "status")
}

func TestProcessSheet_TopNBoundsFrequencyTables(t *testing.T) {
	rules := testRuleSet(t)
	cfg := DefaultProcessorConfig()
	cfg.TopN = 1
	p := NewProcessor(nil, rules, cfg)

	sheet := rawDemandSheet("QUITADOS", [][]string{
		{"31/01/2025", "JULIO", "QUITADO", "BRADESCO", "JULIO"},
		{"31/01/2025", "JULIO", "QUITADO", "SANTANDER", "JULIO"},
		{"31/01/2025", "JULIO", "QUITADO", "OMNI", "JULIO"},
	})

	result, err := p.ProcessSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Len(t, result.Report.Distributions["bancos"], 1)
}
