package preprocess

import (
	"path/filepath"
	"regexp"
	"strings"
)

var reSeparators = regexp.MustCompile(`[\s\-]+`)

// NormalizeFilename derives the artifact key for a source image: extension
// stripped, lowercased, runs of spaces and hyphens collapsed to a single
// underscore. Deterministic for a given input filename.
func NormalizeFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	return reSeparators.ReplaceAllString(strings.ToLower(name), "_")
}
