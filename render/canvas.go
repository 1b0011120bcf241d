package render

import (
	"image"

	"github.com/bodgit/signboard/pixel"
)

// Canvas is an off-screen buffer the size of the panel.
type Canvas struct {
	buffer *pixel.Buffer
}

// NewCanvas allocates a black canvas.
func NewCanvas(width, height int) (*Canvas, error) {
	b, err := pixel.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Canvas{buffer: b}, nil
}

// SetPixel writes c at (x, y) if it lies on the canvas.
func (c *Canvas) SetPixel(x, y int, color pixel.RGB565) {
	c.buffer.SetPixel(x, y, color)
}

// Pixel returns the color at (x, y).
func (c *Canvas) Pixel(x, y int) pixel.RGB565 {
	return c.buffer.Pixel(x, y)
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.buffer.Bounds()
}

// Fill sets every pixel to color.
func (c *Canvas) Fill(color pixel.RGB565) {
	c.buffer.Fill(color)
}

// Buffer exposes the canvas pixels.
func (c *Canvas) Buffer() *pixel.Buffer {
	return c.buffer
}

// DrawCanvas copies b onto the canvas at (x, y), leaving bounds checking to
// the canvas itself.
func DrawCanvas(b *pixel.Buffer, x, y int, c *Canvas) {
	if b.Empty() {
		return
	}
	for j := 0; j < b.Height; j++ {
		for i, color := range b.Row(j) {
			c.SetPixel(x+i, y+j, color)
		}
	}
}

// Transfer forwards every canvas pixel to s.
func Transfer(c *Canvas, s Surface) {
	Draw(c.buffer, 0, 0, s)
}
