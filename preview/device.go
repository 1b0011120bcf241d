package preview

import (
	"image"
	"image/color"

	"github.com/bodgit/signboard/pixel"
	"periph.io/x/conn/v3/display"
)

// device presents a Window as a periph display.
type device struct {
	w *Window
}

// Device returns w as a periph display.Drawer, so it can sit behind the
// same surface.Drawer as real panel hardware.
func (w *Window) Device() display.Drawer {
	return device{w}
}

func (d device) String() string {
	return title
}

// Halt blanks the window.
func (d device) Halt() error {
	d.w.Fill(0)
	return nil
}

func (d device) ColorModel() color.Model {
	return pixel.Model
}

func (d device) Bounds() image.Rectangle {
	return d.w.Bounds()
}

// Draw copies src starting at sp into the dstRect area of the window.
func (d device) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	r := dstRect.Intersect(d.w.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.At(sp.X+x-dstRect.Min.X, sp.Y+y-dstRect.Min.Y)
			d.w.SetPixel(x, y, pixel.Model.Convert(c).(pixel.RGB565))
		}
	}
	return nil
}
