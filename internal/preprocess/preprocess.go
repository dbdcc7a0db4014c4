package preprocess

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"os"
	"time"

	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/idworks/idscan/internal/common"
)

type Config struct {
	MaxWidth    int // widest output allowed; wider inputs are shrunk, default 4000
	JPEGQuality int // quality factor for the encoded artifact, default 90
}

// Result is one binarized document: the two-level image, its JPEG-encoded
// bytes, and the wall-clock time from read through encode. The disk write
// is the caller's and is not counted.
type Result struct {
	Image    *image.Gray
	Encoded  []byte
	Duration time.Duration
}

type Preprocessor struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = 4000
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 90
	}
	return &Preprocessor{cfg: cfg, logger: logger}
}

// ProcessFile reads one scanned document, shrinks it to the width bound,
// converts to grayscale, and binarizes it at mean-minus-offset.
func (p *Preprocessor) ProcessFile(path string, offset int) (Result, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return Result{}, common.NewDecodeError(fmt.Sprintf("could not read image: %s", path), err)
	}
	img, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return Result{}, common.NewDecodeError(fmt.Sprintf("could not decode image: %s", path), err)
	}

	resized := p.resize(img)
	gray := toGray(resized)
	threshold := Threshold(gray, offset)
	bin := Binarize(gray, threshold)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, bin, &jpeg.Options{Quality: p.cfg.JPEGQuality}); err != nil {
		return Result{}, fmt.Errorf("encode jpeg: %w", err)
	}

	dur := time.Since(start)
	p.logger.Debug("preprocess.image.ok",
		"path", path,
		"offset", offset,
		"threshold", threshold,
		"width", bin.Bounds().Dx(),
		"height", bin.Bounds().Dy(),
		"encoded_bytes", buf.Len(),
		"elapsed_ms", dur.Milliseconds(),
	)
	return Result{Image: bin, Encoded: buf.Bytes(), Duration: dur}, nil
}

// resize shrinks images wider than MaxWidth, preserving aspect ratio with
// integer truncation. The Box filter averages source areas, which keeps
// fine document text legible when shrinking.
func (p *Preprocessor) resize(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= p.cfg.MaxWidth {
		return img
	}
	ratio := float64(p.cfg.MaxWidth) / float64(w)
	newW := int(float64(w) * ratio)
	newH := int(float64(h) * ratio)
	return imaging.Resize(img, newW, newH, imaging.Box)
}

// toGray converts any image to single-channel grayscale using the standard
// luminance weights.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}
