package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/idworks/idscan/internal/common"
	"github.com/idworks/idscan/internal/pipeline"
)

func main() {
	var (
		imagesDir  = flag.String("images", "", "source images directory (overrides IMAGES_DIR)")
		outDir     = flag.String("out", "", "preprocessed output directory (overrides PREPROCESSED_DIR)")
		resultsDir = flag.String("results", "", "results directory (overrides RESULTS_DIR)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *imagesDir != "" {
		cfg.Paths.ImagesDir = *imagesDir
	}
	if *outDir != "" {
		cfg.Paths.PreprocessedDir = *outDir
	}
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	batch := pipeline.NewPreprocessBatch(cfg, logger)
	stats, err := batch.Run(context.Background())
	if err != nil {
		logger.Error("preprocessing failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("\n=== PROCESS COMPLETE ===")
	fmt.Printf("Total images processed:          %d\n", stats.Processed())
	fmt.Printf("\nTotal local preprocessing time:  %.4f sec\n", stats.TotalPreprocessTime.Seconds())
	fmt.Printf("Combined original size:          %d bytes\n", stats.CombinedOriginalBytes)
	fmt.Printf("Combined final size:             %d bytes\n", stats.CombinedFinalBytes)
	fmt.Printf("Size reduced (absolute):         %d bytes\n", stats.SizeReduced())
	fmt.Printf("Size reduced (percentage):       %.2f%%\n", stats.SizeReducedPct())
	fmt.Printf("Total runtime (all steps):       %.2f ms\n", float64(stats.TotalRuntime.Microseconds())/1000.0)
}
