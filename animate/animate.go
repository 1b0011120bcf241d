// Package animate implements the two polled animations of the sign: toggling
// between cached variants and scrolling a wide strip through a window.
package animate

import (
	"image"
	"time"

	"github.com/bodgit/signboard/cache"
	"github.com/bodgit/signboard/render"
)

// Part is a group of alternative images drawn at the same position.
type Part struct {
	Slots []*cache.Slot
	X, Y  int
}

// Toggle rotates every Part through its slots once per Interval.
type Toggle struct {
	Interval time.Duration

	last  time.Time
	index int
	armed bool
}

// Index returns the slot index drawn by the next firing poll.
func (t *Toggle) Index() int {
	return t.index
}

// Reset rewinds the rotation so the next poll fires and draws index 0.
func (t *Toggle) Reset() {
	t.index = 0
	t.armed = false
}

// Poll draws the current index of each part if Interval has elapsed since
// the last firing and then advances. Parts holding fewer than count slots are
// left alone. It reports whether anything fired.
func (t *Toggle) Poll(now time.Time, parts []Part, count int, s render.Surface) bool {
	if count <= 0 || len(parts) == 0 {
		return false
	}
	if t.armed && now.Sub(t.last) < t.Interval {
		return false
	}

	i := t.index % count
	for _, p := range parts {
		if len(p.Slots) < count || p.Slots[i] == nil {
			continue
		}
		render.Draw(p.Slots[i].Buffer(), p.X, p.Y, s)
	}

	t.index = (i + 1) % count
	t.last = now
	t.armed = true

	return true
}

// Scroll pans a slot horizontally through a fixed window one column per
// Interval, wrapping forever.
type Scroll struct {
	Interval time.Duration

	last     time.Time
	armed    bool
	complete bool
}

// Complete reports whether the last step wrapped the offset back to zero.
func (s *Scroll) Complete() bool {
	return s.complete
}

// Reset makes the next poll fire immediately.
func (s *Scroll) Reset() {
	s.armed = false
	s.complete = false
}

// Poll draws the window of slot at area and advances the slot offset if
// Interval has elapsed. An empty slot is ignored. It reports whether a step
// was taken.
func (s *Scroll) Poll(now time.Time, slot *cache.Slot, area image.Rectangle, dst render.Surface) bool {
	if slot == nil || slot.Empty() {
		return false
	}
	if s.armed && now.Sub(s.last) < s.Interval {
		return false
	}

	b := slot.Buffer()
	bounds := dst.Bounds()
	w, h := b.Width, b.Height
	if slot.Offset >= w || slot.Offset < 0 {
		slot.Offset = 0
	}

	for y := 0; y < area.Dy(); y++ {
		dy := area.Min.Y + y
		if dy < bounds.Min.Y || dy >= bounds.Max.Y {
			continue
		}
		row := b.Row(mod(y+area.Min.Y, h))
		for x := 0; x < area.Dx(); x++ {
			dx := area.Min.X + x
			if dx < bounds.Min.X || dx >= bounds.Max.X {
				continue
			}
			dst.SetPixel(dx, dy, row[(x+slot.Offset)%w])
		}
	}

	slot.Offset++
	s.complete = slot.Offset >= w
	if s.complete {
		slot.Offset = 0
	}

	s.last = now
	s.armed = true

	return true
}

func mod(a, n int) int {
	if a %= n; a < 0 {
		a += n
	}
	return a
}
