package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func readTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errors.New("tga: header too short")
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}
	if h.colorMap != 0 {
		return h, errors.New("tga: color-mapped images not supported")
	}
	switch h.imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if h.bpp != 24 && h.bpp != 32 {
			return h, fmt.Errorf("tga: unsupported bit depth %d", h.bpp)
		}
	case tgaGray, tgaGrayRLE:
		if h.bpp != 8 {
			return h, fmt.Errorf("tga: unsupported grayscale bit depth %d", h.bpp)
		}
	default:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	}
	return h, nil
}

// DecodeTGA decodes uncompressed and run-length encoded true-color or
// grayscale TGA data.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := readTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		header: h,
		data:   data[offset:],
		size:   h.bpp / 8,
		img:    image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
	}
	if h.imageType == tgaTrueColorRLE || h.imageType == tgaGrayRLE {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	header tgaHeader
	data   []byte
	pos    int
	size   int
	img    *image.RGBA
}

// pixel reads one BGR(A) or gray pixel.
func (d *tgaDecoder) pixel() (color.RGBA, error) {
	if d.pos+d.size > len(d.data) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.data[d.pos : d.pos+d.size]
	d.pos += d.size
	switch d.size {
	case 1:
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	case 3:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}, nil
	default:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}, nil
	}
}

// set stores the i-th pixel in file order. Rows are stored bottom-up unless
// the descriptor says otherwise.
func (d *tgaDecoder) set(i int, c color.RGBA) {
	x, y := i%d.header.width, i/d.header.width
	if !d.header.topToBottom {
		y = d.header.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	n := d.header.width * d.header.height
	for i := 0; i < n; i++ {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.set(i, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	n := d.header.width * d.header.height
	for i := 0; i < n; {
		if d.pos >= len(d.data) {
			return errTGATruncated
		}
		packet := d.data[d.pos]
		d.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for ; count > 0 && i < n; count-- {
				d.set(i, c)
				i++
			}
			continue
		}
		for ; count > 0 && i < n; count-- {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.set(i, c)
			i++
		}
	}
	return nil
}
