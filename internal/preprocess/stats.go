package preprocess

import "time"

// ImageStats records one image's before/after sizes and processing time.
// Err is set instead when the image was skipped under the
// continue-on-error policy.
type ImageStats struct {
	Filename      string
	OriginalBytes int64
	FinalBytes    int64
	Duration      time.Duration
	Err           string
}

// BatchStats aggregates a whole preprocessing run. Fields are derived once
// per run and never mutated afterwards.
type BatchStats struct {
	Images                []ImageStats
	TotalPreprocessTime   time.Duration
	CombinedOriginalBytes int64
	CombinedFinalBytes    int64
	TotalRuntime          time.Duration
}

// Add folds one image's stats into the batch totals.
func (s *BatchStats) Add(img ImageStats) {
	s.Images = append(s.Images, img)
	if img.Err != "" {
		return
	}
	s.TotalPreprocessTime += img.Duration
	s.CombinedOriginalBytes += img.OriginalBytes
	s.CombinedFinalBytes += img.FinalBytes
}

// Processed returns the number of images that completed successfully.
func (s *BatchStats) Processed() int {
	n := 0
	for _, img := range s.Images {
		if img.Err == "" {
			n++
		}
	}
	return n
}

// SizeReduced returns the absolute byte reduction across the batch.
func (s *BatchStats) SizeReduced() int64 {
	return s.CombinedOriginalBytes - s.CombinedFinalBytes
}

// SizeReducedPct returns the percentage reduction, or 0 when no original
// bytes were counted.
func (s *BatchStats) SizeReducedPct() float64 {
	if s.CombinedOriginalBytes == 0 {
		return 0
	}
	return 100.0 * (1.0 - float64(s.CombinedFinalBytes)/float64(s.CombinedOriginalBytes))
}
