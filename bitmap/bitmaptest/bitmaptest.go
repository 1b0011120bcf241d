// Package bitmaptest builds small 24-bit bitmaps in memory for tests.
package bitmaptest

import (
	"bytes"
	"encoding/binary"
	"image/color"
)

// Encode returns a 24-bit bitmap of the given size where each pixel is
// produced by fn. Rows are written top to bottom with a negative height when
// topDown is set, otherwise bottom to top.
func Encode(width, height int, topDown bool, fn func(x, y int) color.RGBA) []byte {
	stride := (width*3 + 3) &^ 3

	b := new(bytes.Buffer)

	var header [54]byte
	header[0], header[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(header[2:], uint32(54+stride*height))
	binary.LittleEndian.PutUint32(header[10:], 54)
	binary.LittleEndian.PutUint32(header[14:], 40)
	binary.LittleEndian.PutUint32(header[18:], uint32(int32(width)))
	h := int32(height)
	if topDown {
		h = -h
	}
	binary.LittleEndian.PutUint32(header[22:], uint32(h))
	binary.LittleEndian.PutUint16(header[26:], 1)
	binary.LittleEndian.PutUint16(header[28:], 24)
	binary.LittleEndian.PutUint32(header[34:], uint32(stride*height))
	b.Write(header[:])

	row := make([]byte, stride)
	for i := 0; i < height; i++ {
		y := height - 1 - i
		if topDown {
			y = i
		}
		for x := 0; x < width; x++ {
			c := fn(x, y)
			row[x*3], row[x*3+1], row[x*3+2] = c.B, c.G, c.R
		}
		b.Write(row)
	}

	return b.Bytes()
}

// Solid returns a bitmap filled with a single color.
func Solid(width, height int, c color.RGBA) []byte {
	return Encode(width, height, false, func(int, int) color.RGBA { return c })
}

// Gradient returns a bitmap whose pixel (x, y) has red x<<3, green y<<2 and
// the given blue value, so every pixel survives RGB565 packing distinctly for
// widths up to 32 and heights up to 64.
func Gradient(width, height int, blue uint8, topDown bool) []byte {
	return Encode(width, height, topDown, func(x, y int) color.RGBA {
		return color.RGBA{uint8(x << 3), uint8(y << 2), blue, 0xff}
	})
}
