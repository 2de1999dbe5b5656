package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenshot(t *testing.T) {
	r, _, _ := newTestRenderer(DefaultOptions())
	r.Resize(4, 3)

	dir := filepath.Join(t.TempDir(), "shots")
	path, err := r.Screenshot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	// The top image row is the last framebuffer row.
	for y := 0; y < 3; y++ {
		red, _, _, alpha := img.At(1, y).RGBA()
		assert.Equal(t, uint32(2-y)*0x101, red, "row %d", y)
		assert.Equal(t, uint32(0xffff), alpha, "row %d", y)
	}
}

func TestFrameImageSizeMismatch(t *testing.T) {
	_, err := frameImage(make([]byte, 10), 2, 2)
	assert.Error(t, err)
}

func TestScreenshotName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 250e6, time.UTC)
	assert.Equal(t, "objectviewer_2024-03-09_14-05-07.250.png", screenshotName(at))
}
