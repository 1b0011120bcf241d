/*
Package convert prepares artwork for the sign: it reduces colors, cuts glyph
sheets into tiles and writes the 24-bit uncompressed bitmaps the sign reads.
*/
package convert

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

// ErrBadTileSize is returned when the tile size is not positive.
var ErrBadTileSize = errors.New("convert: tile size must be positive")

// Reduce maps m onto a palette of at most colors entries. Images already
// using a small enough palette are kept as they are.
func Reduce(m image.Image, colors int) *image.Paletted {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || len(pm.Palette) > colors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	return pm
}

// Flatten returns m as an opaque RGBA image with its top-left corner at
// (0, 0). Transparent areas become black.
func Flatten(m image.Image) *image.RGBA {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Over)
	return dst
}

// WriteBMP writes m to w as a 24-bit uncompressed bitmap.
func WriteBMP(w io.Writer, m image.Image) error {
	return bmp.Encode(w, Flatten(m))
}

// Split cuts a sheet of equally sized glyphs, separated by spacing pixels,
// into tiles read left to right and top to bottom. Partial tiles at the
// right and bottom edges are dropped.
func Split(m image.Image, width, height, spacing int) ([]image.Image, error) {
	if width <= 0 || height <= 0 || spacing < 0 {
		return nil, ErrBadTileSize
	}

	b := m.Bounds()
	var tiles []image.Image

	for y := b.Min.Y; y+height <= b.Max.Y; y += height + spacing {
		for x := b.Min.X; x+width <= b.Max.X; x += width + spacing {
			tile := image.NewRGBA(image.Rect(0, 0, width, height))
			draw.Draw(tile, tile.Bounds(), m, image.Pt(x, y), draw.Src)
			tiles = append(tiles, tile)
		}
	}

	return tiles, nil
}
