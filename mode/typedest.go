package mode

import (
	"time"

	"github.com/bodgit/signboard/animate"
	"github.com/bodgit/signboard/cache"
)

// typeDest shows the large type image next to either a static destination
// or a destination alternating with its route line.
type typeDest struct {
	m      *Machine
	toggle animate.Toggle

	line, dest cache.Slot
	parts      []animate.Part

	typ    memo
	static memo
	cached memo
	route  memo
}

func newTypeDest(m *Machine) *typeDest {
	h := &typeDest{
		m:      m,
		toggle: animate.Toggle{Interval: m.config.ToggleInterval},
	}
	h.parts = []animate.Part{
		{Slots: []*cache.Slot{&h.line, &h.dest}, X: m.config.Dest.X, Y: m.config.Dest.Y},
	}
	return h
}

func (h *typeDest) enter() {
	h.typ.reset()
	h.static.reset()
	h.cached.reset()
	h.route.reset()
	h.toggle.Reset()
}

func (h *typeDest) tick(now time.Time, t Tuple) {
	c, tables := h.m.config, h.m.tables

	if h.typ.update(t.Type) {
		h.m.draw(tables.Type, "type", t.Type, "large", c.Type)
	}

	if t.Dest >= c.Reserved || t.Next == c.Unset || t.Next >= c.Reserved {
		h.cached.reset()
		h.route.reset()
		if h.static.update(t.Dest) {
			h.m.draw(tables.Dest, "dest", t.Dest, "large", c.Dest)
		}
		return
	}
	h.static.reset()

	changed := false
	if h.cached.update(t.Dest) {
		h.m.load(tables.Dest, "dest", t.Dest, "large", &h.dest)
		changed = true
	}
	if line := c.line(t.Next); h.route.update(line) {
		h.m.load(tables.Dest, "dest", line, "large", &h.line)
		changed = true
	}
	if changed {
		h.toggle.Reset()
	}

	h.toggle.Poll(now, h.parts, 2, h.m.surface)
}
