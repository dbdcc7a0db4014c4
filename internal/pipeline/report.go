package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/idworks/idscan/internal/llm"
	"github.com/idworks/idscan/internal/preprocess"
)

// Result file names under the results directory.
const (
	ProcessingReportName = "processing_results.txt"
	ExtractionReportName = "text_extracted_results.txt"
)

// WriteProcessingReport renders the stage-one report: one block per image,
// then the batch summary.
func WriteProcessingReport(path string, stats *preprocess.BatchStats) error {
	var b strings.Builder
	b.WriteString("=== IMAGE PREPROCESSING RESULTS ===\n\n")

	for _, img := range stats.Images {
		if img.Err != "" {
			fmt.Fprintf(&b, "Failed: %s\n", img.Filename)
			fmt.Fprintf(&b, "  - Error: %s\n", img.Err)
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "Preprocessed: %s\n", img.Filename)
		fmt.Fprintf(&b, "  - Original size: %d bytes\n", img.OriginalBytes)
		fmt.Fprintf(&b, "  - Final size: %d bytes\n", img.FinalBytes)
		fmt.Fprintf(&b, "  - Processing time: %.2f ms\n", float64(img.Duration.Microseconds())/1000.0)
		b.WriteString("\n")
	}

	b.WriteString("\n=== SUMMARY ===\n")
	fmt.Fprintf(&b, "Total images processed:          %d\n", stats.Processed())
	fmt.Fprintf(&b, "Total local preprocessing time:  %.4f sec\n", stats.TotalPreprocessTime.Seconds())
	fmt.Fprintf(&b, "Combined original size:          %d bytes\n", stats.CombinedOriginalBytes)
	fmt.Fprintf(&b, "Combined final size:             %d bytes\n", stats.CombinedFinalBytes)
	fmt.Fprintf(&b, "Size reduced (absolute):         %d bytes\n", stats.SizeReduced())
	fmt.Fprintf(&b, "Size reduced (percentage):       %.2f%%\n", stats.SizeReducedPct())
	fmt.Fprintf(&b, "Total runtime (all steps):       %.2f ms\n", float64(stats.TotalRuntime.Microseconds())/1000.0)

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// WriteExtractionReport renders the stage-two report: each record as
// pretty-printed JSON in array order (or a note when parsing failed),
// followed by performance and token statistics.
func WriteExtractionReport(path string, records []llm.Record, note string, stats ExtractStats) error {
	var b strings.Builder

	if note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}
	for _, rec := range records {
		js, err := json.MarshalIndent(rec, "", "    ")
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		b.Write(js)
		b.WriteString("\n\n")
	}

	b.WriteString("\n--- Performance & Design Statistics ---\n")
	fmt.Fprintf(&b, "Number of images processed: %d\n", stats.Images)
	fmt.Fprintf(&b, "Total number of API calls: %d\n", stats.APICalls)
	fmt.Fprintf(&b, "Total time for request: %.2f ms\n", float64(stats.Duration.Microseconds())/1000.0)
	fmt.Fprintf(&b, "Average time per image: %.2f ms\n", stats.AverageMsPerImage())

	b.WriteString("\n--- Usage / Token Statistics ---\n")
	fmt.Fprintf(&b, "  Prompt tokens: %d\n", stats.Usage.PromptTokens)
	fmt.Fprintf(&b, "  Completion tokens: %d\n", stats.Usage.CompletionTokens)
	fmt.Fprintf(&b, "  Total tokens used: %d\n", stats.Usage.TotalTokens)

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
