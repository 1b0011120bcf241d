/*
Package preview shows the panel in a desktop window, scaled up so individual
LEDs are visible.
*/
package preview

import (
	"context"

	"github.com/bodgit/signboard/pixel"
	"github.com/bodgit/signboard/surface"
	"github.com/hajimehoshi/ebiten/v2"
)

const title = "signboard"

// Window is a framebuffer mirrored into an ebiten window.
type Window struct {
	*surface.Memory

	scale int
	ctx   context.Context
	image *ebiten.Image
	pix   []byte
}

// New returns a Window for a width by height panel, each pixel drawn as a
// scale by scale square.
func New(width, height, scale int) (*Window, error) {
	m, err := surface.NewMemory(width, height)
	if err != nil {
		return nil, err
	}
	if scale < 1 {
		scale = 1
	}
	return &Window{
		Memory: m,
		scale:  scale,
		ctx:    context.Background(),
		pix:    make([]byte, width*height*4),
	}, nil
}

// Run opens the window and blocks until it is closed or ctx is done. It
// must be called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	r := w.Bounds()
	ebiten.SetWindowSize(r.Dx()*w.scale, r.Dy()*w.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetRunnableOnUnfocused(true)

	return ebiten.RunGame(w)
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	r := w.Bounds()
	if w.image == nil {
		w.image = ebiten.NewImage(r.Dx(), r.Dy())
	}

	toRGBA(w.Snapshot(), w.pix)
	w.image.WritePixels(w.pix)
	screen.DrawImage(w.image, nil)
}

// Layout implements ebiten.Game. The screen is always the panel size and
// ebiten scales it to fit the window.
func (w *Window) Layout(_, _ int) (int, int) {
	r := w.Bounds()
	return r.Dx(), r.Dy()
}

// toRGBA expands b into dst as opaque RGBA bytes.
func toRGBA(b *pixel.Buffer, dst []byte) {
	for i, c := range b.Pix {
		r, g, bl := c.Channels()
		dst[i*4+0] = r
		dst[i*4+1] = g
		dst[i*4+2] = bl
		dst[i*4+3] = 0xff
	}
}
