package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idworks/idscan/internal/common"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// checker pattern so the mean lands mid-range
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 230, G: 230, B: 230, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestProcessFileSmallImageKeepsDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "scan.png", 120, 80)

	p := New(Config{MaxWidth: 4000, JPEGQuality: 90}, nil)
	res, err := p.ProcessFile(path, 0)
	require.NoError(t, err)

	assert.Equal(t, 120, res.Image.Bounds().Dx())
	assert.Equal(t, 80, res.Image.Bounds().Dy())
	assert.NotEmpty(t, res.Encoded)
	assert.Greater(t, res.Duration.Nanoseconds(), int64(0))
}

func TestProcessFileShrinksWideImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "wide.png", 150, 60)

	p := New(Config{MaxWidth: 100, JPEGQuality: 90}, nil)
	res, err := p.ProcessFile(path, 0)
	require.NoError(t, err)

	// ratio 100/150, dimensions truncated
	assert.Equal(t, 100, res.Image.Bounds().Dx())
	assert.Equal(t, 40, res.Image.Bounds().Dy())
}

func TestProcessFileOutputIsJPEG(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "scan.png", 32, 32)

	p := New(Config{}, nil)
	res, err := p.ProcessFile(path, 20)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Encoded))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestProcessFileUnreadableImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	p := New(Config{}, nil)
	_, err := p.ProcessFile(path, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDecode)
}

func TestProcessFileMissingFile(t *testing.T) {
	p := New(Config{}, nil)
	_, err := p.ProcessFile(filepath.Join(t.TempDir(), "missing.png"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDecode)
}
