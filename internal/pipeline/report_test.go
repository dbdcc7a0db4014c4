package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idworks/idscan/internal/llm"
	"github.com/idworks/idscan/internal/preprocess"
)

func TestWriteProcessingReport(t *testing.T) {
	var stats preprocess.BatchStats
	stats.Add(preprocess.ImageStats{
		Filename:      "license_01.jpg",
		OriginalBytes: 1000,
		FinalBytes:    400,
		Duration:      5 * time.Millisecond,
	})
	stats.Add(preprocess.ImageStats{
		Filename:      "passport_scan.png",
		OriginalBytes: 2000,
		FinalBytes:    600,
		Duration:      8 * time.Millisecond,
	})
	stats.TotalRuntime = 20 * time.Millisecond

	path := filepath.Join(t.TempDir(), ProcessingReportName)
	require.NoError(t, WriteProcessingReport(path, &stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "=== IMAGE PREPROCESSING RESULTS ===")
	assert.Contains(t, report, "Preprocessed: license_01.jpg")
	assert.Contains(t, report, "  - Original size: 1000 bytes")
	assert.Contains(t, report, "  - Final size: 400 bytes")
	assert.Contains(t, report, "=== SUMMARY ===")
	assert.Contains(t, report, "Total images processed:          2")
	assert.Contains(t, report, "Combined original size:          3000 bytes")
	assert.Contains(t, report, "Combined final size:             1000 bytes")
	assert.Contains(t, report, "Size reduced (absolute):         2000 bytes")
	assert.Contains(t, report, "Size reduced (percentage):       33.33%")
}

func TestWriteProcessingReportWithSkippedImage(t *testing.T) {
	var stats preprocess.BatchStats
	stats.Add(preprocess.ImageStats{Filename: "bad.jpg", Err: "could not decode image"})

	path := filepath.Join(t.TempDir(), ProcessingReportName)
	require.NoError(t, WriteProcessingReport(path, &stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Failed: bad.jpg")
	assert.Contains(t, string(data), "Total images processed:          0")
}

func TestWriteExtractionReportWithRecords(t *testing.T) {
	records := []llm.Record{
		llm.NormalizeRecord(llm.Record{Filename: "a.jpg", IDType: "passport", IDNumber: "123456789"}),
	}
	stats := ExtractStats{
		Images:   2,
		APICalls: 1,
		Duration: 1500 * time.Millisecond,
		Usage:    llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}

	path := filepath.Join(t.TempDir(), ExtractionReportName)
	require.NoError(t, WriteExtractionReport(path, records, "", stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, `"id_type": "passport"`)
	assert.Contains(t, report, `"id_number": "123456789"`)
	assert.Contains(t, report, "--- Performance & Design Statistics ---")
	assert.Contains(t, report, "Number of images processed: 2")
	assert.Contains(t, report, "Total number of API calls: 1")
	assert.Contains(t, report, "Total time for request: 1500.00 ms")
	assert.Contains(t, report, "Average time per image: 750.00 ms")
	assert.Contains(t, report, "--- Usage / Token Statistics ---")
	assert.Contains(t, report, "  Prompt tokens: 100")
	assert.Contains(t, report, "  Total tokens used: 150")
}

func TestWriteExtractionReportParseFailureNote(t *testing.T) {
	stats := ExtractStats{Images: 1, APICalls: 1}

	path := filepath.Join(t.TempDir(), ExtractionReportName)
	note := "The assistant response was not valid JSON."
	require.NoError(t, WriteExtractionReport(path, nil, note, stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, note)
	assert.NotContains(t, report, `"id_type"`)
	// statistics still present after a parse failure
	assert.Contains(t, report, "--- Usage / Token Statistics ---")
	assert.Contains(t, report, "  Prompt tokens: 0")
}
