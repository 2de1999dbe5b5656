package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func tgaFile(imageType byte, w, h, bpp int, descriptor byte, pixels ...byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = byte(bpp)
	hdr[17] = descriptor
	return append(hdr, pixels...)
}

func TestDecodeTGABottomUp(t *testing.T) {
	data := tgaFile(tgaTrueColor, 2, 2, 24, 0,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(1, 0))
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaFile(tgaTrueColorRLE, 2, 2, 32, 0x20,
		0x82, 10, 20, 30, 128, // three copies
		0x00, 1, 2, 3, 255, // one raw pixel
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	run := color.RGBA{R: 30, G: 20, B: 10, A: 128}
	assert.Equal(t, run, img.RGBAAt(0, 0))
	assert.Equal(t, run, img.RGBAAt(1, 0))
	assert.Equal(t, run, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{R: 3, G: 2, B: 1, A: 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGAGray(t *testing.T) {
	img, err := DecodeTGA(tgaFile(tgaGray, 2, 1, 8, 0x20, 7, 200))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 7, G: 7, B: 7, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, img.RGBAAt(1, 0))
}

func TestDecodeTGARejects(t *testing.T) {
	colorMapped := tgaFile(tgaTrueColor, 1, 1, 24, 0, 0, 0, 0)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"unknown type", tgaFile(1, 1, 1, 8, 0, 0)},
		{"16 bit", tgaFile(tgaTrueColor, 1, 1, 16, 0, 0, 0)},
		{"16 bit gray", tgaFile(tgaGray, 1, 1, 16, 0, 0, 0)},
		{"truncated raw", tgaFile(tgaTrueColor, 2, 2, 24, 0, 1, 2, 3)},
		{"truncated rle", tgaFile(tgaTrueColorRLE, 2, 2, 24, 0, 0x81, 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, B: 255, A: 255})
	src.SetRGBA(2, 1, color.RGBA{R: 12, G: 34, B: 56, A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))
	img, err := Decode(".BMP", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 12, G: 34, B: 56, A: 255}, img.RGBAAt(2, 1))
}

func TestLoadPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 90, G: 80, B: 70, A: 255})

	path := filepath.Join(t.TempDir(), "fence.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 90, G: 80, B: 70, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 0))
	assert.Equal(t, Partial, Classify(img))

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Decode(".png", []byte("not an image"))
	assert.Error(t, err)
}

func TestApplyColorKey(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	assert.Equal(t, Opaque, Classify(img))

	ApplyColorKey(img, color.RGBA{B: 255})
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, Partial, Classify(img))
}

func TestClassify(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 0})
	img.SetRGBA(1, 0, color.RGBA{R: 64, A: 64})
	assert.Equal(t, Alpha, Classify(img))

	assert.Equal(t, "alpha", Alpha.String())
	assert.Equal(t, "unknown", Transparency(9).String())
}
