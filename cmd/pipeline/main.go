// Command pipeline runs the demand processing batch job: it discovers the
// most recent input workbook, normalizes and validates every configured
// sheet, and writes the processed workbook, per-sheet CSV extracts, and the
// JSON report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"demandcli/internal/config"
	"demandcli/internal/dataprocessing"
	"demandcli/internal/exporter"
	"demandcli/internal/files"
	"demandcli/internal/infrastructure"
	"demandcli/internal/validation"
	"demandcli/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "optional YAML configuration file")
	inDir := flag.String("in", "", "input directory for workbooks (overrides config)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	inputFile := flag.String("file", "", "process this workbook instead of discovering the latest input")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *inDir != "" {
		cfg.Paths.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := run(context.Background(), cfg, *inputFile, logger); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, inputFile string, logger *slog.Logger) error {
	logger.Info("starting", slog.String("version", contracts.GetVersionString()))

	fv := validation.NewFileValidator(logger)
	if err := fv.ValidateOutputDirectory(cfg.Paths.OutputDir); err != nil {
		return err
	}

	input := inputFile
	if input == "" {
		if err := fv.ValidateInputDirectory(cfg.Paths.InputDir, cfg.Pipeline.InputPrefix+"*"); err != nil {
			return err
		}
		latest, err := files.NewDiscovery(logger).LatestWorkbook(cfg.Paths.InputDir, cfg.Pipeline.InputPrefix)
		if err != nil {
			return err
		}
		input = latest.Path
	} else if err := fv.ValidateFile(input); err != nil {
		return err
	}

	logger.Info("starting pipeline run",
		slog.String("input", input),
		slog.Any("sheets", cfg.Pipeline.Sheets))

	sheets, err := dataprocessing.ParseWorkbook(input, cfg.Pipeline.Sheets, logger)
	if err != nil {
		return err
	}

	dateMin, dateMax := cfg.Rules.DateBounds()
	processor := dataprocessing.NewProcessor(logger, dataprocessing.RuleSetFromConfig(cfg.Rules), dataprocessing.ProcessorConfig{
		DateMin: dateMin,
		DateMax: dateMax,
		TopN:    cfg.Pipeline.TopN,
	})

	processed, failures := processor.ProcessSheets(ctx, sheets)
	if len(processed) == 0 {
		return fmt.Errorf("every sheet failed processing (%d failures)", len(failures))
	}

	timestamp := time.Now().Format("20060102_1504")
	outputDir := filepath.Join(cfg.Paths.OutputDir, "output_"+timestamp)

	excelPath := filepath.Join(outputDir, fmt.Sprintf("DEMANDAS_PROCESSADO_%s.xlsx", timestamp))
	if err := exporter.NewExcelWriter(logger).WriteProcessed(excelPath, processed); err != nil {
		return err
	}

	csvWriter := exporter.NewCSVWriter(logger)
	for _, sheet := range processed {
		csvPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.csv", sanitizeName(sheet.Name), timestamp))
		if err := csvWriter.WriteValidatedSheet(csvPath, sheet); err != nil {
			return err
		}
	}

	report := dataprocessing.BuildReport(processed, processor.Rules())
	reportPath := filepath.Join(outputDir, fmt.Sprintf("relatorio_processamento_%s.json", timestamp))
	if err := exporter.NewJSONWriter(logger).WriteReport(reportPath, report); err != nil {
		return err
	}

	logger.Info("pipeline run complete",
		slog.String("output_dir", outputDir),
		slog.Int("sheets_processed", len(processed)),
		slog.Int("sheets_failed", len(failures)))

	return nil
}

// sanitizeName makes a sheet name safe for use in a file name.
func sanitizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
