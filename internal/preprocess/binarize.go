package preprocess

import "image"

// MeanIntensity returns the arithmetic mean pixel value of a grayscale
// image, truncated to an integer. An empty image yields 0.
func MeanIntensity(gray *image.Gray) int {
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += uint64(gray.GrayAt(x, y).Y)
		}
	}
	return int(sum / uint64(total))
}

// Threshold computes the global binarization threshold for a grayscale
// image: mean intensity minus the document-type offset, clamped to [0,255].
func Threshold(gray *image.Gray, offset int) int {
	t := MeanIntensity(gray) - offset
	if t < 0 {
		return 0
	}
	if t > 255 {
		return 255
	}
	return t
}

// Binarize reduces a grayscale image to two levels: pixels at or above the
// threshold become white (255), the rest black (0). Re-thresholding an
// already two-valued image at any threshold in (0,255] is a no-op.
func Binarize(gray *image.Gray, threshold int) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			if int(v) >= threshold {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
