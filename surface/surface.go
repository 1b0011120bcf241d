/*
Package surface provides the panels the sign can be drawn on: a plain
framebuffer and an adapter for periph display devices.
*/
package surface

import (
	"image"
	"sync"

	"github.com/bodgit/signboard/pixel"
)

// Memory is a framebuffer that can be read while it is being drawn to.
type Memory struct {
	mu     sync.Mutex
	buffer *pixel.Buffer
	dirty  image.Rectangle
}

// NewMemory returns a black framebuffer.
func NewMemory(width, height int) (*Memory, error) {
	b, err := pixel.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Memory{
		buffer: b,
	}, nil
}

// SetPixel writes c at (x, y). Writes outside the panel are ignored.
func (m *Memory) SetPixel(x, y int, c pixel.RGB565) {
	if !image.Pt(x, y).In(m.buffer.Bounds()) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer.SetPixel(x, y, c)
	m.dirty = m.dirty.Union(image.Rect(x, y, x+1, y+1))
}

// Fill sets every pixel to c.
func (m *Memory) Fill(c pixel.RGB565) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer.Fill(c)
	m.dirty = m.buffer.Bounds()
}

// Bounds returns the panel rectangle.
func (m *Memory) Bounds() image.Rectangle {
	return m.buffer.Bounds()
}

// Snapshot returns a copy of the framebuffer.
func (m *Memory) Snapshot() *pixel.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.buffer.Clone()
}

// flush hands the area changed since the last flush to fn while holding the
// lock. The area is only forgotten if fn succeeds.
func (m *Memory) flush(fn func(b *pixel.Buffer, r image.Rectangle) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty.Empty() {
		return nil
	}
	if err := fn(m.buffer, m.dirty); err != nil {
		return err
	}
	m.dirty = image.Rectangle{}

	return nil
}
