package mode

import (
	"image"
	"time"

	"github.com/bodgit/signboard/animate"
	"github.com/bodgit/signboard/cache"
)

type stripKey struct {
	typ, dest, dep int
}

// typeDestScroll rotates bilingual type and destination images above a
// strip listing every stop, scrolled through the lower right of the panel.
type typeDestScroll struct {
	m      *Machine
	toggle animate.Toggle
	scroll animate.Scroll

	typ, dest pair
	line      cache.Slot
	strip     cache.Slot
	parts     []animate.Part
	count     int

	lastType, lastDest, lastLine memo
	lastStrip                    stripKey
	stripValid                   bool
	built                        time.Time
}

func newTypeDestScroll(m *Machine) *typeDestScroll {
	return &typeDestScroll{
		m:      m,
		toggle: animate.Toggle{Interval: m.config.ToggleInterval},
		scroll: animate.Scroll{Interval: m.config.ScrollInterval},
	}
}

func (h *typeDestScroll) enter() {
	h.lastType.reset()
	h.lastDest.reset()
	h.lastLine.reset()
	h.stripValid = false
	h.toggle.Reset()
	h.scroll.Reset()
}

func (h *typeDestScroll) area() image.Rectangle {
	c := h.m.config
	return image.Rectangle{Min: c.Next, Max: c.Next.Add(c.ScrollSize)}
}

func (h *typeDestScroll) tick(now time.Time, t Tuple) {
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

	line := -1
	if t.Dest < c.Reserved && t.Dep != c.Unset && t.Dep < c.Reserved {
		line = c.line(t.Dep)
	}
	if h.lastLine.update(line) {
		if line >= 0 {
			h.m.load(tables.Dest, "dest", line, "JP", &h.line)
		}
		changed = true
	}

	// An empty strip is retried at most once per scroll step
	key := stripKey{t.Type, t.Dest, t.Dep}
	if !h.stripValid || key != h.lastStrip || (h.strip.Empty() && now.Sub(h.built) >= c.ScrollInterval) {
		paths, _ := h.m.assembler.Build(t.Dep, t.Dest, t.Type)
		if err := h.m.cache.Concatenate(paths, &h.strip); err != nil {
			h.m.logger.Printf("Unable to build station strip: %v\n", err)
		}
		h.lastStrip, h.stripValid, h.built = key, true, now
		h.scroll.Reset()
	}

	if changed {
		h.rebuild(line >= 0)
		h.toggle.Reset()
	}

	h.toggle.Poll(now, h.parts, h.count, h.m.surface)
	if h.scroll.Poll(now, &h.strip, h.area(), h.m.surface) && h.scroll.Complete() {
		h.m.logger.Printf("Station strip from %d to %d wrapped\n", t.Dep, t.Dest)
	}
}

func (h *typeDestScroll) rebuild(withLine bool) {
	var typ, dest []*cache.Slot
	if withLine {
		typ = append(typ, &h.typ.jp)
		dest = append(dest, &h.line)
	}
	typ = append(typ, &h.typ.jp, &h.typ.en)
	dest = append(dest, &h.dest.jp, &h.dest.en)

	c := h.m.config
	h.parts = []animate.Part{
		{Slots: typ, X: c.Type.X, Y: c.Type.Y},
		{Slots: dest, X: c.Dest.X, Y: c.Dest.Y},
	}
	h.count = len(typ)
}
