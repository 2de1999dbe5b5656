package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const screenshotPrefix = "objectviewer"

// Screenshot writes the frame that was just rendered to a PNG in dir and
// returns its path. It must be called before the buffers are swapped.
func (r *Renderer) Screenshot(dir string) (string, error) {
	pixels := r.backend.ReadPixels(r.width, r.height)
	img, err := frameImage(pixels, r.width, r.height)
	if err != nil {
		return "", err
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := filepath.Join(dir, screenshotName(time.Now()))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	r.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

func screenshotName(t time.Time) string {
	return fmt.Sprintf("%s_%s.png", screenshotPrefix, t.Format("2006-01-02_15-04-05.000"))
}

// frameImage converts bottom-up framebuffer rows to an opaque image.
func frameImage(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*rowSize : (height-y)*rowSize]
		dst := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		copy(dst, src)
		for i := 3; i < rowSize; i += 4 {
			dst[i] = 255
		}
	}
	return img, nil
}
