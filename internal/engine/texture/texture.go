// Package texture decodes object textures and prepares them for upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Transparency describes the alpha channel of a decoded texture.
type Transparency int

const (
	// Opaque textures have no transparent pixels.
	Opaque Transparency = iota
	// Partial textures are either fully transparent or fully opaque per
	// pixel, so the alpha test alone can draw them.
	Partial
	// Alpha textures have intermediate alpha values and need blending.
	Alpha
)

func (t Transparency) String() string {
	switch t {
	case Opaque:
		return "opaque"
	case Partial:
		return "partial"
	case Alpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// Load reads and decodes the image file at path.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode decodes data. TGA is selected by the extension, every other format
// is detected from the data.
func Decode(ext string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as RGBA, converting when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// ApplyColorKey makes every pixel matching key fully transparent. The color of
// keyed pixels is set to black so that filtering does not bleed it into
// neighbours.
func ApplyColorKey(img *image.RGBA, key color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			if p[0] == key.R && p[1] == key.G && p[2] == key.B {
				p[0], p[1], p[2], p[3] = 0, 0, 0, 0
			}
		}
	}
}

// Classify reports how the alpha channel of img is used.
func Classify(img *image.RGBA) Transparency {
	t := Opaque
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch a := img.Pix[img.PixOffset(x, y)+3]; a {
			case 255:
			case 0:
				t = Partial
			default:
				return Alpha
			}
		}
	}
	return t
}
