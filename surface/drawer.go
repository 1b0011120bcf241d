package surface

import (
	"errors"
	"image"

	"github.com/bodgit/signboard/pixel"
	"periph.io/x/conn/v3/display"
)

// ErrNoDevice is returned when a Drawer is created without a device.
var ErrNoDevice = errors.New("surface: no display device")

// Drawer accumulates pixels in memory and pushes the changed area to a
// periph display device on Flush.
type Drawer struct {
	*Memory
	dev display.Drawer
}

// NewDrawer returns a Drawer the size of dev.
func NewDrawer(dev display.Drawer) (*Drawer, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}

	r := dev.Bounds()
	m, err := NewMemory(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	return &Drawer{
		Memory: m,
		dev:    dev,
	}, nil
}

// Flush draws everything changed since the previous flush onto the device.
func (d *Drawer) Flush() error {
	origin := d.dev.Bounds().Min
	return d.flush(func(b *pixel.Buffer, r image.Rectangle) error {
		return d.dev.Draw(r.Add(origin), b, r.Min)
	})
}

// Halt blanks the device.
func (d *Drawer) Halt() error {
	return d.dev.Halt()
}

func (d *Drawer) String() string {
	return d.dev.String()
}
