package dataprocessing

import (
	"log/slog"
	"sort"
	"time"

	"demandcli/pkg/contracts/domain"
)

// Comparative analytics over processed demand data: settlement metrics for
// the two organizational groups, aggregation arithmetic only.

// Group labels and membership for the comparative analysis.
const (
	GroupJulio          = "JULIO"
	GroupLeandroAdriano = "LEANDRO/ADRIANO"

	// settledStatus marks a demand as settled in the situation column.
	settledStatus = "QUITADO"
)

// GroupMetrics holds the settlement metrics of one organizational group.
type GroupMetrics struct {
	Group        string              `json:"grupo"`
	TotalSettled int                 `json:"total_quitacoes"`
	DailyAverage float64             `json:"media_diaria"`
	BanksServed  int                 `json:"bancos_atendidos"`
	ByBank       []domain.ValueCount `json:"por_banco"`
}

// ComparativeReport is the serializable result of a comparative analysis.
type ComparativeReport struct {
	GeneratedAt string         `json:"data_processamento"`
	Groups      []GroupMetrics `json:"grupos"`
}

// Analyzer computes comparative settlement metrics from raw sheets. Input
// records are normalized with the standard column pipeline first, so the
// analyzer accepts both freshly parsed and previously processed workbooks.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates a comparative analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Compare aggregates settled demands per organizational group across the
// given sheets: totals, daily averages over distinct settlement dates,
// distinct banks served and per-bank settlement counts.
func (a *Analyzer) Compare(sheets []domain.Sheet) *ComparativeReport {
	type groupState struct {
		total  int
		days   map[string]struct{}
		byBank map[string]int
	}
	states := map[string]*groupState{
		GroupJulio:          {days: make(map[string]struct{}), byBank: make(map[string]int)},
		GroupLeandroAdriano: {days: make(map[string]struct{}), byBank: make(map[string]int)},
	}

	for _, sheet := range sheets {
		types := ColumnTypes(sheet.Columns)
		for _, raw := range sheet.Records {
			rec := NormalizeRecord(raw, types)

			if rec.Get("SITUACAO").Text != settledStatus {
				continue
			}
			group, ok := groupFor(rec.Get("RESPONSAVEL").Text)
			if !ok {
				continue
			}

			state := states[group]
			state.total++
			if date := rec.Get(DateColumn); date.Kind == domain.CellDate {
				state.days[date.Date.Format("2006-01-02")] = struct{}{}
			}
			if bank := rec.Get("BANCO"); bank.Kind == domain.CellText {
				state.byBank[bank.Text]++
			}
		}
	}

	report := &ComparativeReport{
		GeneratedAt: time.Now().Format(reportTimeFormat),
	}
	for _, group := range []string{GroupJulio, GroupLeandroAdriano} {
		state := states[group]
		metrics := GroupMetrics{
			Group:        group,
			TotalSettled: state.total,
			BanksServed:  len(state.byBank),
			ByBank:       allValues(state.byBank),
		}
		if len(state.days) > 0 {
			metrics.DailyAverage = float64(state.total) / float64(len(state.days))
		}
		report.Groups = append(report.Groups, metrics)

		a.logger.Info("group metrics computed",
			slog.String("group", group),
			slog.Int("total_settled", metrics.TotalSettled),
			slog.Int("banks_served", metrics.BanksServed))
	}

	return report
}

// groupFor maps an owner to its organizational group.
func groupFor(owner string) (string, bool) {
	switch owner {
	case "JULIO":
		return GroupJulio, true
	case "LEANDRO", "ADRIANO":
		return GroupLeandroAdriano, true
	default:
		return "", false
	}
}

// allValues returns every value count sorted by count descending, value
// ascending.
func allValues(freq map[string]int) []domain.ValueCount {
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
	return counts
}
