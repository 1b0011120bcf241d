package mode

import (
	"time"

	"github.com/bodgit/signboard/render"
)

// full composes a single full-panel image off screen and transfers it.
type full struct {
	m      *Machine
	canvas *render.Canvas
	last   memo
}

func (h *full) enter() {
	h.last.reset()
}

func (h *full) tick(now time.Time, t Tuple) {
	if !h.last.update(t.Full) {
		return
	}

	path, ok := h.m.lookup(h.m.tables.Full, "full", t.Full, "path")
	if !ok {
		return
	}

	b, err := h.m.cache.Decode(path)
	if err != nil {
		h.m.logger.Printf("Unable to draw \"%s\": %v\n", path, err)
		return
	}

	h.canvas.Fill(0)
	render.DrawCanvas(b, 0, 0, h.canvas)
	render.Transfer(h.canvas, h.m.surface)
}
