// Command grant-chart fetches the TidyTuesday SFI grants dataset, aggregates
// total funding per research body, and renders the top 10 as a horizontal
// bar chart PNG alongside CSV and Excel reports of the same totals.
//
// The pipeline is strictly sequential: load, clean, aggregate, render,
// export. Any failure aborts the run with no partial output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/emmanuelprah/Tidytuesday/internal/chart"
	"github.com/emmanuelprah/Tidytuesday/internal/config"
	"github.com/emmanuelprah/Tidytuesday/internal/dataset"
	"github.com/emmanuelprah/Tidytuesday/internal/exporter"
	"github.com/emmanuelprah/Tidytuesday/internal/grants"
	"github.com/emmanuelprah/Tidytuesday/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "path to config file (defaults to config.yaml if present)")
	flag.Parse()

	// Optional .env file for local overrides; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := run(cfg, logger); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	ctx := context.Background()

	// Load
	loader := dataset.NewLoader(cfg.Dataset, paths, logger)
	raw, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("Loaded dataset",
		slog.String("date", cfg.Dataset.Date),
		slog.String("table", cfg.Dataset.Table),
		slog.Int("rows", raw.Len()))

	// Clean and select
	cleaned, err := dataset.CleanAndSelect(raw)
	if err != nil {
		return err
	}

	// Aggregate
	records := grants.RecordsFromTable(cleaned)
	aggregator := grants.NewAggregator(cfg.Chart.TopN, logger)
	totals := aggregator.TopInstitutions(records)
	logger.Info("Aggregated funding totals",
		slog.Int("records", len(records)),
		slog.Int("institutions", len(totals)))

	// Render
	renderer, err := chart.NewRenderer(cfg.Chart, logger)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	img, err := renderer.Render(totals)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	// Export
	writer := exporter.NewWriter(paths, logger)
	chartPath, err := writer.WriteChartPNG(img, cfg.Dataset.Date)
	if err != nil {
		return err
	}
	csvPath, err := writer.WriteTopInstitutionsCSV(totals, cfg.Dataset.Date)
	if err != nil {
		return err
	}
	xlsxPath, err := writer.WriteTopInstitutionsXLSX(totals, cfg.Dataset.Date)
	if err != nil {
		return err
	}

	logger.Info("Chart generated successfully",
		slog.String("chart", chartPath),
		slog.String("csv", csvPath),
		slog.String("xlsx", xlsxPath))

	printTopInstitutions(totals)
	return nil
}

// printTopInstitutions prints the ranking to stdout, mirroring the chart
func printTopInstitutions(totals []grants.InstitutionTotal) {
	if len(totals) == 0 {
		return
	}

	fmt.Println("\n=== TOP FUNDED RESEARCH BODIES ===")
	fmt.Println("Rank | Total Commitment | Research Body")
	fmt.Println("-----|------------------|---------------")
	for i, t := range totals {
		fmt.Printf("%4d | %16.0f | %s\n", i+1, t.TotalFunding, t.ResearchBody)
	}
}
