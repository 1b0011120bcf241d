package animate

import (
	"image"
	"testing"
	"time"

	"github.com/bodgit/signboard/cache"
	"github.com/bodgit/signboard/pixel"
	"github.com/bodgit/signboard/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(t *testing.T, w, h int, c pixel.RGB565) *cache.Slot {
	b, err := pixel.New(w, h)
	require.NoError(t, err)
	b.Fill(c)
	s := new(cache.Slot)
	s.Set(b)
	return s
}

func canvas(t *testing.T, w, h int) *render.Canvas {
	c, err := render.NewCanvas(w, h)
	require.NoError(t, err)
	return c
}

func TestToggleAlternates(t *testing.T) {
	c := canvas(t, 4, 1)
	parts := []Part{
		{Slots: []*cache.Slot{slot(t, 1, 1, 0x10), slot(t, 1, 1, 0x11), slot(t, 1, 1, 0x12)}, X: 0},
		{Slots: []*cache.Slot{slot(t, 1, 1, 0x20), slot(t, 1, 1, 0x21)}, X: 2},
	}

	toggle := Toggle{Interval: 3 * time.Second}
	start := time.Now()

	tests := []struct {
		elapsed time.Duration
		fired   bool
		a, b    pixel.RGB565
	}{
		{0, true, 0x10, 0x20},
		{time.Second, false, 0x10, 0x20},
		{3 * time.Second, true, 0x11, 0x21},
		{5 * time.Second, false, 0x11, 0x21},
		{6 * time.Second, true, 0x10, 0x20},
		{9 * time.Second, true, 0x11, 0x21},
		{12 * time.Second, true, 0x10, 0x20},
	}

	for _, table := range tests {
		assert.Equal(t, table.fired, toggle.Poll(start.Add(table.elapsed), parts, 2, c), table.elapsed)
		assert.Equal(t, table.a, c.Pixel(0, 0), table.elapsed)
		assert.Equal(t, table.b, c.Pixel(2, 0), table.elapsed)
		assert.NotEqual(t, pixel.RGB565(0x12), c.Pixel(0, 0))
		assert.Less(t, toggle.Index(), 2)
	}
}

func TestToggleHoldsShortPart(t *testing.T) {
	c := canvas(t, 2, 1)
	c.SetPixel(1, 0, 0x7777)

	parts := []Part{
		{Slots: []*cache.Slot{slot(t, 1, 1, 0x10), slot(t, 1, 1, 0x11)}, X: 0},
		{Slots: []*cache.Slot{slot(t, 1, 1, 0x20)}, X: 1},
	}

	toggle := Toggle{Interval: time.Second}
	start := time.Now()

	seen := map[pixel.RGB565]bool{}
	for i := 0; i < 4; i++ {
		require.True(t, toggle.Poll(start.Add(time.Duration(i)*time.Second), parts, 2, c))
		seen[c.Pixel(0, 0)] = true
		assert.Equal(t, pixel.RGB565(0x7777), c.Pixel(1, 0))
	}
	assert.Equal(t, map[pixel.RGB565]bool{0x10: true, 0x11: true}, seen)
}

func TestToggleNoop(t *testing.T) {
	c := canvas(t, 1, 1)
	parts := []Part{{Slots: []*cache.Slot{slot(t, 1, 1, 0x10)}}}

	var toggle Toggle
	assert.False(t, toggle.Poll(time.Now(), parts, 0, c))
	assert.False(t, toggle.Poll(time.Now(), parts, -1, c))
	assert.False(t, toggle.Poll(time.Now(), nil, 1, c))
	assert.Equal(t, pixel.RGB565(0), c.Pixel(0, 0))
}

func TestToggleReset(t *testing.T) {
	c := canvas(t, 1, 1)
	parts := []Part{{Slots: []*cache.Slot{slot(t, 1, 1, 0x10), slot(t, 1, 1, 0x11)}}}

	toggle := Toggle{Interval: time.Hour}
	now := time.Now()
	require.True(t, toggle.Poll(now, parts, 2, c))
	assert.Equal(t, 1, toggle.Index())
	assert.False(t, toggle.Poll(now, parts, 2, c))

	toggle.Reset()
	assert.True(t, toggle.Poll(now, parts, 2, c))
	assert.Equal(t, pixel.RGB565(0x10), c.Pixel(0, 0))
}

func TestScrollWrap(t *testing.T) {
	b, err := pixel.New(100, 1)
	require.NoError(t, err)
	for x := 0; x < 100; x++ {
		b.SetPixel(x, 0, pixel.RGB565(x))
	}
	strip := new(cache.Slot)
	strip.Set(b)

	c := canvas(t, 1, 1)
	scroll := Scroll{Interval: 30 * time.Millisecond}
	start := time.Now()

	for tick := 1; tick <= 100; tick++ {
		now := start.Add(time.Duration(tick) * scroll.Interval)
		require.True(t, scroll.Poll(now, strip, image.Rect(0, 0, 1, 1), c))
		assert.Equal(t, pixel.RGB565(tick-1), c.Pixel(0, 0))
		if tick < 100 {
			assert.False(t, scroll.Complete(), "tick %d", tick)
			assert.Equal(t, tick, strip.Offset)
		}
	}
	assert.True(t, scroll.Complete())
	assert.Equal(t, 0, strip.Offset)

	require.True(t, scroll.Poll(start.Add(101*scroll.Interval), strip, image.Rect(0, 0, 1, 1), c))
	assert.False(t, scroll.Complete())
	assert.Equal(t, 1, strip.Offset)
}

func TestScrollInterval(t *testing.T) {
	strip := slot(t, 4, 2, 0x1f)
	c := canvas(t, 2, 2)
	scroll := Scroll{Interval: 30 * time.Millisecond}
	now := time.Now()

	assert.True(t, scroll.Poll(now, strip, image.Rect(0, 0, 2, 2), c))
	assert.False(t, scroll.Poll(now.Add(29*time.Millisecond), strip, image.Rect(0, 0, 2, 2), c))
	assert.True(t, scroll.Poll(now.Add(30*time.Millisecond), strip, image.Rect(0, 0, 2, 2), c))
	assert.Equal(t, 2, strip.Offset)
}

func TestScrollWindow(t *testing.T) {
	b, err := pixel.New(3, 2)
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			b.SetPixel(x, y, pixel.RGB565(y*10+x))
		}
	}
	strip := new(cache.Slot)
	strip.Set(b)
	strip.Offset = 2

	c := canvas(t, 4, 4)
	var scroll Scroll
	require.True(t, scroll.Poll(time.Now(), strip, image.Rect(2, 2, 6, 4), c))

	// Rows are sampled starting at the area top, modulo the strip height,
	// and columns wrap around the strip. Columns 4 and 5 fall off the canvas.
	assert.Equal(t, pixel.RGB565(2), c.Pixel(2, 2))
	assert.Equal(t, pixel.RGB565(0), c.Pixel(3, 2))
	assert.Equal(t, pixel.RGB565(12), c.Pixel(2, 3))
	assert.Equal(t, pixel.RGB565(10), c.Pixel(3, 3))
	assert.Equal(t, pixel.RGB565(0), c.Pixel(0, 0))
}

func TestScrollEmpty(t *testing.T) {
	c := canvas(t, 1, 1)
	var scroll Scroll
	assert.False(t, scroll.Poll(time.Now(), nil, image.Rect(0, 0, 1, 1), c))
	assert.False(t, scroll.Poll(time.Now(), new(cache.Slot), image.Rect(0, 0, 1, 1), c))
}
