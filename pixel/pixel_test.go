package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRGB(t *testing.T) {
	tables := []struct {
		name    string
		r, g, b uint8
		want    RGB565
	}{
		{"black", 0, 0, 0, 0x0000},
		{"white", 0xff, 0xff, 0xff, 0xffff},
		{"red", 0xff, 0, 0, 0xf800},
		{"green", 0, 0xff, 0, 0x07e0},
		{"blue", 0, 0, 0xff, 0x001f},
		{"truncated", 0x07, 0x03, 0x07, 0x0000},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, FromRGB(table.r, table.g, table.b))
		})
	}
}

func TestChannels(t *testing.T) {
	r, g, b := FromRGB(0xff, 0x80, 0x00).Channels()
	assert.Equal(t, uint8(0xff), r)
	assert.Equal(t, uint8(0x82), g)
	assert.Equal(t, uint8(0x00), b)

	_, _, _, a := RGB565(0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestNew(t *testing.T) {
	tables := []struct {
		name          string
		width, height int
		err           error
	}{
		{"valid", 4, 3, nil},
		{"zero width", 0, 3, ErrTooLarge},
		{"negative height", 4, -1, ErrTooLarge},
		{"too large", MaxPixels, 2, ErrTooLarge},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			b, err := New(table.width, table.height)
			if table.err != nil {
				assert.Equal(t, table.err, err)
				assert.Nil(t, b)
				return
			}
			require.Nil(t, err)
			assert.Len(t, b.Pix, table.width*table.height)
			assert.False(t, b.Empty())
		})
	}
}

func TestBufferImage(t *testing.T) {
	b, err := New(2, 2)
	require.Nil(t, err)

	b.SetPixel(1, 0, FromRGB(0xff, 0, 0))
	b.SetPixel(5, 5, FromRGB(0xff, 0xff, 0xff))

	assert.Equal(t, image.Rect(0, 0, 2, 2), b.Bounds())
	assert.Equal(t, RGB565(0xf800), b.At(1, 0))
	assert.Equal(t, RGB565(0), b.At(-1, 0))
	assert.Equal(t, []RGB565{0, 0xf800}, b.Row(0))

	dup := b.Clone()
	dup.Fill(0x1234)
	assert.Equal(t, RGB565(0xf800), b.Pixel(1, 0))
	assert.Equal(t, RGB565(0x1234), dup.Pixel(1, 0))
}

func TestFromImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 10, 13, 11))
	m.Set(10, 10, color.RGBA{0, 0xff, 0, 0xff})
	m.Set(12, 10, color.RGBA{0, 0, 0xff, 0xff})

	b, err := FromImage(m)
	require.Nil(t, err)
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 1, b.Height)
	assert.Equal(t, []RGB565{0x07e0, 0x0000, 0x001f}, b.Pix)
}

func TestEmpty(t *testing.T) {
	var b *Buffer
	assert.True(t, b.Empty())
	assert.True(t, (&Buffer{}).Empty())
	assert.Nil(t, b.Clone())
}
