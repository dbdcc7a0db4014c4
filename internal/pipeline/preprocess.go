package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/idworks/idscan/constants"
	"github.com/idworks/idscan/internal/common"
	"github.com/idworks/idscan/internal/preprocess"
)

// PreprocessBatch runs stage one: every image under ImagesDir is resized,
// grayscaled, binarized, and written to PreprocessedDir, with a stats
// report under ResultsDir. Strictly sequential, one file at a time.
type PreprocessBatch struct {
	cfg    *common.Config
	pre    *preprocess.Preprocessor
	logger *slog.Logger
}

func NewPreprocessBatch(cfg *common.Config, logger *slog.Logger) *PreprocessBatch {
	if logger == nil {
		logger = slog.Default()
	}
	pre := preprocess.New(preprocess.Config{
		MaxWidth:    cfg.Preprocess.MaxWidth,
		JPEGQuality: cfg.Preprocess.JPEGQuality,
	}, logger)
	return &PreprocessBatch{cfg: cfg, pre: pre, logger: logger}
}

// Run processes the whole input directory and writes the report. By default
// the first unreadable image aborts the run; with ContinueOnError set the
// failure is recorded in the report and the batch moves on.
func (b *PreprocessBatch) Run(ctx context.Context) (preprocess.BatchStats, error) {
	var stats preprocess.BatchStats

	names, err := ListImages(b.cfg.Paths.ImagesDir)
	if err != nil {
		return stats, err
	}
	if len(names) == 0 {
		return stats, common.NewConfigurationError(
			fmt.Sprintf("no images found in the %q folder", b.cfg.Paths.ImagesDir))
	}

	if err := os.MkdirAll(b.cfg.Paths.PreprocessedDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.MkdirAll(b.cfg.Paths.ResultsDir, 0o755); err != nil {
		return stats, fmt.Errorf("create results dir: %w", err)
	}

	overall := time.Now()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		path := filepath.Join(b.cfg.Paths.ImagesDir, name)

		fi, err := os.Stat(path)
		if err != nil {
			return stats, fmt.Errorf("stat %s: %w", path, err)
		}

		idType := constants.DetectIDType(name)
		offset := constants.ThresholdOffset(idType)

		res, err := b.pre.ProcessFile(path, offset)
		if err != nil {
			if b.cfg.Preprocess.ContinueOnError {
				b.logger.Warn("preprocess.image.skipped", "file", name, "error", err)
				stats.Add(preprocess.ImageStats{Filename: name, Err: err.Error()})
				continue
			}
			return stats, err
		}

		outName := preprocess.NormalizeFilename(name) + "_preprocessed.jpg"
		outPath := filepath.Join(b.cfg.Paths.PreprocessedDir, outName)
		if err := os.WriteFile(outPath, res.Encoded, 0o644); err != nil {
			return stats, fmt.Errorf("write %s: %w", outPath, err)
		}

		stats.Add(preprocess.ImageStats{
			Filename:      name,
			OriginalBytes: fi.Size(),
			FinalBytes:    int64(len(res.Encoded)),
			Duration:      res.Duration,
		})
		b.logger.Info("preprocess.image.ok",
			"file", name,
			"id_type", idType,
			"offset", offset,
			"original_bytes", fi.Size(),
			"final_bytes", len(res.Encoded),
			"elapsed_ms", res.Duration.Milliseconds(),
		)
	}
	stats.TotalRuntime = time.Since(overall)

	reportPath := filepath.Join(b.cfg.Paths.ResultsDir, ProcessingReportName)
	if err := WriteProcessingReport(reportPath, &stats); err != nil {
		return stats, err
	}

	b.logger.Info("preprocess.batch.ok",
		"images", stats.Processed(),
		"combined_original_bytes", stats.CombinedOriginalBytes,
		"combined_final_bytes", stats.CombinedFinalBytes,
		"reduced_pct", fmt.Sprintf("%.2f", stats.SizeReducedPct()),
		"elapsed_ms", stats.TotalRuntime.Milliseconds(),
	)
	return stats, nil
}
