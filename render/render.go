/*
Package render blits pixel buffers onto the panel or an off-screen canvas.

A Surface is the physical display; anything written outside its bounds is
silently dropped. A Canvas is an intermediate buffer that is composed first
and then transferred to a Surface pixel by pixel.
*/
package render

import (
	"image"

	"github.com/bodgit/signboard/cache"
	"github.com/bodgit/signboard/pixel"
)

// Surface is a fixed-size addressable pixel surface.
type Surface interface {
	SetPixel(x, y int, c pixel.RGB565)
	Bounds() image.Rectangle
}

// Draw copies b onto s with its top-left corner at (x, y). Pixels falling
// outside s are discarded.
func Draw(b *pixel.Buffer, x, y int, s Surface) {
	if b.Empty() {
		return
	}
	r := s.Bounds()
	for j := 0; j < b.Height; j++ {
		dy := y + j
		if dy < r.Min.Y || dy >= r.Max.Y {
			continue
		}
		row := b.Row(j)
		for i, c := range row {
			dx := x + i
			if dx < r.Min.X || dx >= r.Max.X {
				continue
			}
			s.SetPixel(dx, dy, c)
		}
	}
}

// DrawFile decodes the image at path and draws it without caching.
func DrawFile(c *cache.Cache, path string, x, y int, s Surface) error {
	b, err := c.Decode(path)
	if err != nil {
		return err
	}
	Draw(b, x, y, s)
	return nil
}

// Clear paints the whole surface black.
func Clear(s Surface) {
	if f, ok := s.(interface{ Fill(pixel.RGB565) }); ok {
		f.Fill(0)
		return
	}
	r := s.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.SetPixel(x, y, 0)
		}
	}
}
