package mode

import (
	"time"

	"github.com/bodgit/signboard/animate"
	"github.com/bodgit/signboard/cache"
	"github.com/bodgit/signboard/table"
)

// pair is a Japanese and English rendering of the same element.
type pair struct {
	jp, en cache.Slot
}

func (p *pair) load(m *Machine, r table.Reader, name string, id int) {
	m.load(r, name, id, "JP", &p.jp)
	m.load(r, name, id, "EN", &p.en)
}

// typeDestNext rotates bilingual type, destination and next stop images,
// preceded by the route line when the train runs to a real station.
type typeDestNext struct {
	m      *Machine
	toggle animate.Toggle

	typ, dest, next pair
	line            cache.Slot
	parts           []animate.Part
	count           int

	lastType, lastDest, lastNext, lastLine memo
}

func newTypeDestNext(m *Machine) *typeDestNext {
	return &typeDestNext{
		m:      m,
		toggle: animate.Toggle{Interval: m.config.ToggleInterval},
	}
}

func (h *typeDestNext) enter() {
	h.lastType.reset()
	h.lastDest.reset()
	h.lastNext.reset()
	h.lastLine.reset()
	h.toggle.Reset()
}

func (h *typeDestNext) tick(now time.Time, t Tuple) {
	c, tables := h.m.config, h.m.tables
	changed := false

	if h.lastType.update(t.Type) {
		h.typ.load(h.m, tables.Type, "type", t.Type)
		changed = true
	}
	if h.lastDest.update(t.Dest) {
		h.dest.load(h.m, tables.Dest, "dest", t.Dest)
		changed = true
	}
	if h.lastNext.update(t.Next) {
		h.next.load(h.m, tables.Next, "next", t.Next)
		changed = true
	}

	line := -1
	if t.Dest < c.Reserved && t.Next != c.Unset && t.Next < c.Reserved {
		line = c.line(t.Next)
	}
	if h.lastLine.update(line) {
		if line >= 0 {
			h.m.load(tables.Dest, "dest", line, "JP", &h.line)
		}
		changed = true
	}

	if changed {
		h.rebuild(line >= 0)
		h.toggle.Reset()
	}

	h.toggle.Poll(now, h.parts, h.count, h.m.surface)
}

func (h *typeDestNext) rebuild(withLine bool) {
	var typ, dest, next []*cache.Slot
	if withLine {
		typ = append(typ, &h.typ.jp)
		dest = append(dest, &h.line)
		next = append(next, &h.next.jp)
	}
	typ = append(typ, &h.typ.jp, &h.typ.en)
	dest = append(dest, &h.dest.jp, &h.dest.en)
	next = append(next, &h.next.jp, &h.next.en)

	c := h.m.config
	h.parts = []animate.Part{
		{Slots: typ, X: c.Type.X, Y: c.Type.Y},
		{Slots: dest, X: c.Dest.X, Y: c.Dest.Y},
		{Slots: next, X: c.Next.X, Y: c.Next.Y},
	}
	h.count = len(typ)
}
