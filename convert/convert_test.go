package convert

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/signboard/bitmap"
	"github.com/bodgit/signboard/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 0x40, 0xff})
		}
	}
	return m
}

func TestReduce(t *testing.T) {
	pm := Reduce(gradient(32, 32), 4)
	assert.True(t, len(pm.Palette) <= 4)
	assert.Equal(t, image.Rect(0, 0, 32, 32), pm.Bounds())

	// A small enough palette is left alone
	small := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	small.SetColorIndex(1, 1, 1)
	assert.Same(t, small, Reduce(small, 16))
}

func TestWriteBMP(t *testing.T) {
	m := image.NewNRGBA(image.Rect(2, 3, 7, 6))
	m.Set(2, 3, color.NRGBA{0xff, 0, 0, 0xff})
	m.Set(6, 5, color.NRGBA{0, 0, 0xff, 0xff})
	m.Set(4, 4, color.NRGBA{0xff, 0xff, 0xff, 0})

	var buf bytes.Buffer
	require.NoError(t, WriteBMP(&buf, m))

	cfg, err := bitmap.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Width)
	assert.Equal(t, 3, cfg.Height)
	assert.Equal(t, 54, cfg.Offset)

	b, err := bitmap.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, pixel.FromRGB(0xff, 0, 0), b.Pixel(0, 0))
	assert.Equal(t, pixel.FromRGB(0, 0, 0xff), b.Pixel(4, 2))
	// Transparent pixels are flattened onto black
	assert.Equal(t, pixel.RGB565(0), b.Pixel(2, 1))
}

func TestSplit(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 11, 5))
	colors := []color.RGBA{{0xff, 0, 0, 0xff}, {0, 0xff, 0, 0xff}, {0, 0, 0xff, 0xff}}
	for i, c := range colors {
		for y := 0; y < 4; y++ {
			for x := 0; x < 3; x++ {
				sheet.Set(i*4+x, y, c)
			}
		}
	}

	tiles, err := Split(sheet, 3, 4, 1)
	require.NoError(t, err)
	require.Len(t, tiles, 3)
	for i, tile := range tiles {
		assert.Equal(t, image.Rect(0, 0, 3, 4), tile.Bounds())
		assert.Equal(t, colors[i], tile.At(1, 2))
	}

	tiles, err = Split(sheet, 4, 4, 0)
	require.NoError(t, err)
	assert.Len(t, tiles, 2)

	_, err = Split(sheet, 0, 4, 0)
	assert.Equal(t, ErrBadTileSize, err)
	_, err = Split(sheet, 3, 4, -1)
	assert.Equal(t, ErrBadTileSize, err)
}
