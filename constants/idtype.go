package constants

import "strings"

// ID type labels. The same classification drives the binarization offset in
// the preprocessor and the per-image caption in the extraction prompt.
const (
	IDTypeDriversLicense = "drivers_license"
	IDTypePassport       = "passport"
	IDTypeUnknown        = "N/A"
)

// DetectIDType classifies a document by filename prefix, case-insensitive.
func DetectIDType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasPrefix(lower, "license"):
		return IDTypeDriversLicense
	case strings.HasPrefix(lower, "passport"):
		return IDTypePassport
	default:
		return IDTypeUnknown
	}
}

// ThresholdOffset returns the brightness offset subtracted from the mean
// grayscale intensity when binarizing a document of the given type.
// Licenses and passports carry dense backgrounds, so their thresholds are
// biased darker.
func ThresholdOffset(idType string) int {
	switch idType {
	case IDTypeDriversLicense:
		return 20
	case IDTypePassport:
		return 30
	default:
		return 0
	}
}
