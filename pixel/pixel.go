/*
Package pixel implements the pixel buffer used throughout the sign.

Pixels are stored in the native color encoding of the HUB75 panels, 16-bit
RGB565, row-major with row 0 at the top of the image.
*/
package pixel

import (
	"errors"
	"image"
	"image/color"
)

// MaxPixels caps the size of a single buffer. Requests above it are treated
// as an allocation failure.
const MaxPixels = 1 << 22

// ErrTooLarge is returned when the requested dimensions cannot be allocated.
var ErrTooLarge = errors.New("pixel: invalid or too large dimensions")

// RGB565 is a color packed as RRRRRGGGGGGBBBBB.
type RGB565 uint16

// FromRGB packs 8-bit channels into an RGB565 value
func FromRGB(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// Channels returns the color expanded back to 8-bit channels
func (c RGB565) Channels() (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1f)
	g6 := uint8(c >> 5 & 0x3f)
	b5 := uint8(c & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements the color.Color interface.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Channels()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts any color to RGB565.
var Model = color.ModelFunc(rgb565Model)

// Buffer owns the pixels of one decoded image. Pix is either nil or exactly
// Width*Height long.
type Buffer struct {
	Width  int
	Height int
	Pix    []RGB565
}

// New allocates a zeroed buffer
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 || width > MaxPixels/height {
		return nil, ErrTooLarge
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB565, width*height),
	}, nil
}

// Empty reports whether the buffer holds no pixels. A nil buffer is empty.
func (b *Buffer) Empty() bool {
	return b == nil || b.Pix == nil
}

// Pixel returns the raw color at (x, y). It does not bounds check beyond
// what the slice does.
func (b *Buffer) Pixel(x, y int) RGB565 {
	return b.Pix[y*b.Width+x]
}

// SetPixel stores c at (x, y), ignoring coordinates outside the buffer.
func (b *Buffer) SetPixel(x, y int, c RGB565) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}

// Row returns the slice backing row y.
func (b *Buffer) Row(y int) []RGB565 {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c RGB565) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	dup := *b
	if b.Pix != nil {
		dup.Pix = append([]RGB565(nil), b.Pix...)
	}
	return &dup
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return Model
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height || b.Pix == nil {
		return RGB565(0)
	}
	return b.Pix[y*b.Width+x]
}

// FromImage converts m into a new buffer.
func FromImage(m image.Image) (*Buffer, error) {
	r := m.Bounds()
	b, err := New(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			b.Pix[y*b.Width+x] = Model.Convert(m.At(r.Min.X+x, r.Min.Y+y)).(RGB565)
		}
	}
	return b, nil
}
