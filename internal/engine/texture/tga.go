// Package texture decodes images and uploads them as OpenGL textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by DecodeTGA.
const (
	TGATypeUncompressed = 2  // true-color
	TGATypeRLE          = 10 // run-length encoded true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

type tgaHeader struct {
	idLength    int
	colorMapped bool
	imageType   byte
	width       int
	height      int
	bpp         int  // bytes per pixel
	topDown     bool // descriptor bit 5
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errTGATruncated
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMapped: data[1] != 0,
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]) / 8,
		topDown:     data[17]&0x20 != 0,
	}

	switch {
	case h.colorMapped:
		return h, errors.New("color-mapped TGA not supported")
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	case h.bpp != 3 && h.bpp != 4:
		return h, fmt.Errorf("unsupported TGA bit depth %d", data[16])
	}
	return h, nil
}

// tgaWriter stores pixels in file order, which is bottom-up unless the
// header says otherwise.
type tgaWriter struct {
	img     *image.RGBA
	topDown bool
	next    int
	total   int
}

func (w *tgaWriter) full() bool { return w.next >= w.total }

func (w *tgaWriter) put(c color.RGBA) {
	width := w.img.Rect.Dx()
	x, y := w.next%width, w.next/width
	if !w.topDown {
		y = w.img.Rect.Dy() - 1 - y
	}
	w.img.SetRGBA(x, y, c)
	w.next++
}

// bgra reads one pixel stored as BGR or BGRA.
func bgra(p []byte) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if len(p) == 4 {
		c.A = p[3]
	}
	return c
}

// DecodeTGA decodes an uncompressed or RLE-compressed true-color TGA file.
// A truncated RLE stream leaves the remaining pixels transparent.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	start := tgaHeaderSize + h.idLength
	if start > len(data) {
		return nil, errTGATruncated
	}
	pixels := data[start:]

	w := &tgaWriter{
		img:     image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
		topDown: h.topDown,
		total:   h.width * h.height,
	}

	if h.imageType == TGATypeUncompressed {
		if len(pixels) < w.total*h.bpp {
			return nil, errTGATruncated
		}
		for i := 0; !w.full(); i += h.bpp {
			w.put(bgra(pixels[i : i+h.bpp]))
		}
		return w.img, nil
	}

	for i := 0; !w.full() && i < len(pixels); {
		packet := pixels[i]
		i++
		count := int(packet&0x7f) + 1
		repeat := packet&0x80 != 0

		for n := 0; n < count && !w.full(); n++ {
			if i+h.bpp > len(pixels) {
				return w.img, nil
			}
			w.put(bgra(pixels[i : i+h.bpp]))
			if !repeat || n == count-1 {
				i += h.bpp
			}
		}
	}
	return w.img, nil
}
