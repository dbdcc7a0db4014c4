package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/idworks/idscan/constants"
)

// ListImages returns the image filenames in dir, sorted, filtered to the
// allowed extensions. Hidden files and subdirectories are skipped; the two
// stages exchange data through a single flat directory.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !constants.IsAllowedExt(filepath.Ext(e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	// ReadDir already sorts, but the ordering contract matters enough to
	// pin it down here.
	sort.Strings(names)
	return names, nil
}
