// Command comparative computes settlement metrics per organizational group
// from a processed workbook and writes them as a JSON report. Without -file
// it picks the most recent processed workbook under the output directory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"demandcli/internal/config"
	"demandcli/internal/dataprocessing"
	"demandcli/internal/exporter"
	"demandcli/internal/files"
	"demandcli/internal/infrastructure"
	"demandcli/pkg/contracts"
)

// processedPrefix matches workbooks produced by the pipeline command.
const processedPrefix = "DEMANDAS_PROCESSADO_"

func main() {
	configFile := flag.String("config", "", "optional YAML configuration file")
	inputFile := flag.String("file", "", "processed workbook to analyze (defaults to the most recent)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := run(cfg, *inputFile, logger); err != nil {
		logger.Error("comparative analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, inputFile string, logger *slog.Logger) error {
	input := inputFile
	if input == "" {
		latest, err := latestProcessed(cfg.Paths.OutputDir, logger)
		if err != nil {
			return err
		}
		input = latest
	}

	sheets, err := dataprocessing.ParseWorkbook(input, nil, logger)
	if err != nil {
		return err
	}

	report := dataprocessing.NewAnalyzer(logger).Compare(sheets)

	outPath := filepath.Join(cfg.Paths.OutputDir,
		fmt.Sprintf("analise_comparativa_%s.json", time.Now().Format("20060102_1504")))
	if err := exporter.NewJSONWriter(logger).WriteComparative(outPath, report); err != nil {
		return err
	}

	logger.Info("comparative analysis complete",
		slog.String("input", input),
		slog.String("output", outPath))
	return nil
}

// latestProcessed finds the newest processed workbook, searching the output
// directory and its per-run subdirectories.
func latestProcessed(outputDir string, logger *slog.Logger) (string, error) {
	discovery := files.NewDiscovery(logger)

	var newest *files.FileInfo
	dirs := []string{outputDir}
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to read output directory %s: %w", outputDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(outputDir, entry.Name()))
		}
	}

	for _, dir := range dirs {
		latest, err := discovery.LatestWorkbook(dir, processedPrefix)
		if err != nil {
			continue
		}
		if newest == nil || latest.ModTime.After(newest.ModTime) {
			copied := latest
			newest = &copied
		}
	}

	if newest == nil {
		return "", fmt.Errorf("no processed workbook found under %s", outputDir)
	}
	return newest.Path, nil
}
