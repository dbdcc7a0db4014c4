package preprocess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatchStatsAggregation(t *testing.T) {
	var s BatchStats
	s.Add(ImageStats{Filename: "a.jpg", OriginalBytes: 1000, FinalBytes: 400, Duration: 5 * time.Millisecond})
	s.Add(ImageStats{Filename: "b.jpg", OriginalBytes: 2000, FinalBytes: 600, Duration: 7 * time.Millisecond})

	assert.Equal(t, 2, s.Processed())
	assert.Equal(t, int64(3000), s.CombinedOriginalBytes)
	assert.Equal(t, int64(1000), s.CombinedFinalBytes)
	assert.Equal(t, int64(2000), s.SizeReduced())
	assert.InDelta(t, 33.33, s.SizeReducedPct(), 0.01)
	assert.Equal(t, 12*time.Millisecond, s.TotalPreprocessTime)
}

func TestBatchStatsEmpty(t *testing.T) {
	var s BatchStats
	assert.Equal(t, 0, s.Processed())
	assert.Equal(t, int64(0), s.SizeReduced())
	assert.Equal(t, 0.0, s.SizeReducedPct())
}

func TestBatchStatsSkippedImagesExcluded(t *testing.T) {
	var s BatchStats
	s.Add(ImageStats{Filename: "ok.jpg", OriginalBytes: 500, FinalBytes: 100, Duration: time.Millisecond})
	s.Add(ImageStats{Filename: "bad.jpg", Err: "could not decode image"})

	assert.Equal(t, 1, s.Processed())
	assert.Len(t, s.Images, 2)
	assert.Equal(t, int64(500), s.CombinedOriginalBytes)
	assert.Equal(t, time.Millisecond, s.TotalPreprocessTime)
}
