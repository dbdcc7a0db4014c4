package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/idworks/idscan/internal/common"
	"github.com/idworks/idscan/internal/llm"
)

// ExtractStats is the usage accounting for one extraction run: one API
// call, its wall-clock duration, and the token counts from the response
// envelope (zero when absent or when the call failed).
type ExtractStats struct {
	Images   int
	APICalls int
	Duration time.Duration
	Usage    llm.Usage
}

// AverageMsPerImage returns the request duration spread across the batch.
func (s ExtractStats) AverageMsPerImage() float64 {
	if s.Images == 0 {
		return 0
	}
	ms := float64(s.Duration.Microseconds()) / 1000.0
	return ms / float64(s.Images)
}

// ExtractBatch runs stage two: all preprocessed images go out in a single
// multimodal request, and the reply is parsed into identity records.
type ExtractBatch struct {
	cfg    *common.Config
	sender llm.Sender
	logger *slog.Logger
}

func NewExtractBatch(cfg *common.Config, sender llm.Sender, logger *slog.Logger) *ExtractBatch {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractBatch{cfg: cfg, sender: sender, logger: logger}
}

// Run sends the combined request and writes records plus statistics to the
// results file. A parse failure is recovered: the report carries a note and
// the statistics, but no records. A network failure writes zeroed usage
// stats and then propagates as a fatal error.
func (b *ExtractBatch) Run(ctx context.Context) ([]llm.Record, ExtractStats, error) {
	stats := ExtractStats{APICalls: 1}

	names, err := ListImages(b.cfg.Paths.PreprocessedDir)
	if err != nil {
		return nil, stats, err
	}
	if len(names) == 0 {
		return nil, stats, common.NewConfigurationError(
			fmt.Sprintf("no images found in the %q folder", b.cfg.Paths.PreprocessedDir))
	}
	stats.Images = len(names)

	images := make([]llm.ImageAttachment, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(b.cfg.Paths.PreprocessedDir, name))
		if err != nil {
			return nil, stats, fmt.Errorf("read %s: %w", name, err)
		}
		images = append(images, llm.ImageAttachment{Filename: name, Data: data})
	}

	req := llm.BuildBatchRequest(b.cfg.LLM.Model, images)

	if err := os.MkdirAll(b.cfg.Paths.ResultsDir, 0o755); err != nil {
		return nil, stats, fmt.Errorf("create results dir: %w", err)
	}
	reportPath := filepath.Join(b.cfg.Paths.ResultsDir, ExtractionReportName)

	reqID := uuid.New().String()
	ctx = common.WithRequestID(ctx, reqID)
	b.logger.Info("extract.batch.start", "req_id", reqID, "images", stats.Images)

	start := time.Now()
	resp, err := b.sender.Send(ctx, req)
	stats.Duration = time.Since(start)
	if err != nil {
		// Usage counters stay zero; record the failure and abort.
		note := fmt.Sprintf("Error: request failed: %v", err)
		if werr := WriteExtractionReport(reportPath, nil, note, stats); werr != nil {
			b.logger.Error("extract.report.write_error", "req_id", reqID, "error", werr)
		}
		return nil, stats, err
	}
	stats.Usage = resp.Usage

	var records []llm.Record
	var note string
	if len(resp.Choices) == 0 {
		note = "No valid content found in the response."
		b.logger.Warn("extract.batch.no_choices", "req_id", reqID)
	} else {
		content := resp.Choices[0].Message.Content
		records, err = llm.ParseRecords(content, b.logger)
		if err != nil {
			// Recovered: statistics still get written below.
			note = "The assistant response was not valid JSON."
			b.logger.Warn("extract.batch.parse_error", "req_id", reqID, "error", err)
		}
	}

	if err := WriteExtractionReport(reportPath, records, note, stats); err != nil {
		return records, stats, err
	}

	b.logger.Info("extract.batch.ok",
		"req_id", reqID,
		"images", stats.Images,
		"records", len(records),
		"prompt_tokens", stats.Usage.PromptTokens,
		"completion_tokens", stats.Usage.CompletionTokens,
		"total_tokens", stats.Usage.TotalTokens,
		"elapsed_ms", stats.Duration.Milliseconds(),
	)
	return records, stats, nil
}
