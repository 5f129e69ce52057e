package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"airimpact/internal/analysis"
	"airimpact/internal/charts"
	"airimpact/internal/config"
	"airimpact/internal/fetchers"
	"airimpact/internal/ingest"
	"airimpact/internal/llm"
	"airimpact/internal/logger"
	"airimpact/internal/models"
	"airimpact/internal/reports"
	"airimpact/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, ingest.ErrMissingDataSource) {
			fmt.Fprintf(os.Stderr, "Error: dataset not found at '%s'.\n", cfg.CSVPath)
			fmt.Fprintln(os.Stderr, "Download the city-level daily air quality CSV to that path, or set DATASET_URL to fetch it automatically.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run executes the full pipeline: ingest, analyze, render, store.
func run(ctx context.Context, cfg *config.Config) error {
	if cfg.DatasetURL != "" {
		if err := fetchers.NewDatasetFetcher().EnsureLocal(ctx, cfg.CSVPath, cfg.DatasetURL); err != nil {
			logger.Warnf("Dataset download failed: %v", err)
		}
	}

	phases := models.DefaultPhases()
	phase, ok := models.PhaseByName(phases, cfg.Phase)
	if !ok {
		return fmt.Errorf("unknown policy phase %q", cfg.Phase)
	}

	preparer, err := ingest.NewPreparer(cfg.City, phases)
	if err != nil {
		return err
	}

	series, err := preparer.PrepareFile(cfg.CSVPath)
	if err != nil {
		return err
	}

	cmp, err := analysis.Compare(series, cfg.Phase)
	if err != nil {
		return err
	}

	reports.WriteConsole(os.Stdout, cmp)

	var advisories []models.Advisory
	if cfg.AdvisoryFeedURL != "" {
		advisories, err = fetchers.NewAdvisoryFetcher().Fetch(ctx, cfg.AdvisoryFeedURL)
		if err != nil {
			logger.Warnf("Skipping advisories: %v", err)
			advisories = nil
		}
	}

	var narrative string
	if cfg.OpenAIAPIKey != "" {
		narrative, err = llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel).GenerateNarrative(ctx, cmp, cfg.City)
		if err != nil {
			logger.Warnf("Skipping narrative: %v", err)
			narrative = ""
		}
	} else {
		logger.Debug("OPENAI_API_KEY not set, skipping narrative generation")
	}

	chartDir, err := os.MkdirTemp("", "airimpact-charts-")
	if err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	defer os.RemoveAll(chartDir)

	chartGen := charts.NewGenerator(chartDir)
	pngFiles, err := chartGen.GeneratePNGCharts(series, cmp)
	if err != nil {
		logger.Warnf("Chart generation incomplete: %v", err)
	}
	snippets := chartGen.GenerateSnippets(series, phase, cmp)

	reportGen := reports.NewGenerator(cfg.City)
	markdownReport := reportGen.BuildMarkdown(cmp, narrative, advisories)
	now := time.Now().UTC()
	htmlReport := reportGen.BuildCompleteHTML(reportGen.MarkdownToHTML(markdownReport), cmp, snippets, now)

	store, err := storage.NewStorageClient(ctx, storage.DeploymentMode(cfg.DeploymentMode), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.StoreFile(ctx, []byte(htmlReport), "index.html", now); err != nil {
		return err
	}
	if err := store.StoreFile(ctx, []byte(markdownReport), "analysis.md", now); err != nil {
		return err
	}
	for _, f := range pngFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			logger.Warnf("Skipping chart %s: %v", f, err)
			continue
		}
		if err := store.StoreFile(ctx, data, filepath.Base(f), now); err != nil {
			return err
		}
	}

	logger.Infof("Report stored under %s", storage.GenerateReportFolderPath(now))
	return nil
}
