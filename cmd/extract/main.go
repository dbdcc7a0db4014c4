package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/idworks/idscan/internal/common"
	"github.com/idworks/idscan/internal/export"
	"github.com/idworks/idscan/internal/llm"
	"github.com/idworks/idscan/internal/pipeline"
)

func main() {
	var (
		imagesDir  = flag.String("images", "", "preprocessed images directory (overrides PREPROCESSED_DIR)")
		resultsDir = flag.String("results", "", "results directory (overrides RESULTS_DIR)")
		xlsxOut    = flag.String("xlsx", "", "optional XLSX export path")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *imagesDir != "" {
		cfg.Paths.PreprocessedDir = *imagesDir
	}
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateLLM(); err != nil {
		logger.Error("missing inference credentials", "error", err)
		os.Exit(1)
	}
	logger.Info("extract.config",
		"endpoint", cfg.LLM.Endpoint,
		"model", cfg.LLM.Model,
	)

	client := llm.NewClient(llm.Config{
		APIKey:   cfg.LLM.APIKey,
		Endpoint: cfg.LLM.Endpoint,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	}, logger)

	batch := pipeline.NewExtractBatch(cfg, client, logger)
	records, stats, err := batch.Run(context.Background())
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	if *xlsxOut != "" {
		xlsxBytes, err := export.WriteXLSX(records, logger)
		if err != nil {
			logger.Error("xlsx export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, xlsxBytes, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
	}

	fmt.Println("\n--- Performance & Design Statistics ---")
	fmt.Printf("Number of images processed: %d\n", stats.Images)
	fmt.Printf("Total number of API calls: %d\n", stats.APICalls)
	fmt.Printf("Total time for request: %.2f ms\n", float64(stats.Duration.Microseconds())/1000.0)
	fmt.Printf("Average time per image: %.2f ms\n\n", stats.AverageMsPerImage())

	fmt.Println("Usage / Token Statistics:")
	fmt.Printf("  Prompt tokens: %d\n", stats.Usage.PromptTokens)
	fmt.Printf("  Completion tokens: %d\n", stats.Usage.CompletionTokens)
	fmt.Printf("  Total tokens used: %d\n", stats.Usage.TotalTokens)
}
