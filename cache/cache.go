/*
Package cache keeps decoded bitmaps resident in memory so they can be redrawn
every animation tick without touching the image store.

Each Slot holds at most one buffer. Replacing it only happens once the new
buffer has been fully built, so a failed decode leaves the last good image in
place.
*/
package cache

import (
	"errors"
	"log"

	"github.com/bodgit/signboard/bitmap"
	"github.com/bodgit/signboard/pixel"
	"github.com/bodgit/signboard/store"
)

var (
	// ErrHeightMismatch is returned when concatenated images differ in
	// height.
	ErrHeightMismatch = errors.New("cache: image heights do not match")
	// ErrEmpty is returned when none of the images to concatenate could be
	// decoded.
	ErrEmpty = errors.New("cache: nothing to concatenate")
)

// Slot holds one cached buffer and the horizontal scroll position within it.
type Slot struct {
	buffer *pixel.Buffer
	// Offset is the scroll position, kept below the buffer width.
	Offset int
}

// Buffer returns the resident buffer or nil.
func (s *Slot) Buffer() *pixel.Buffer {
	return s.buffer
}

// Empty reports whether the slot holds no buffer.
func (s *Slot) Empty() bool {
	return s.buffer.Empty()
}

// Width returns the width of the resident buffer or 0.
func (s *Slot) Width() int {
	if s.Empty() {
		return 0
	}
	return s.buffer.Width
}

// Height returns the height of the resident buffer or 0.
func (s *Slot) Height() int {
	if s.Empty() {
		return 0
	}
	return s.buffer.Height
}

// Set installs b, dropping the previous buffer and rewinding the scroll
// position.
func (s *Slot) Set(b *pixel.Buffer) {
	s.buffer = b
	s.Offset = 0
}

// Cache decodes images from a store into slots.
type Cache struct {
	store  store.Store
	logger *log.Logger
}

// New returns a Cache reading images from st.
func New(st store.Store, logger *log.Logger) *Cache {
	return &Cache{
		store:  st,
		logger: logger,
	}
}

// Decode reads and decodes the image at path without caching it.
func (c *Cache) Decode(path string) (*pixel.Buffer, error) {
	f, err := c.store.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return bitmap.Decode(f)
}

// Load decodes the image at path into slot. On failure the slot keeps
// whatever it held before.
func (c *Cache) Load(path string, slot *Slot) error {
	b, err := c.Decode(path)
	if err != nil {
		c.logger.Printf("Unable to cache \"%s\": %v\n", path, err)
		return err
	}

	slot.Set(b)
	c.logger.Printf("Cached \"%s\" (%dx%d)\n", path, b.Width, b.Height)

	return nil
}

// Concatenate decodes each image in paths and places them side by side, left
// to right, into slot. Images that cannot be decoded are skipped. If the
// decoded images differ in height nothing is changed.
func (c *Cache) Concatenate(paths []string, slot *Slot) error {
	var (
		buffers []*pixel.Buffer
		width   int
		height  int
	)

	for _, path := range paths {
		b, err := c.Decode(path)
		if err != nil {
			c.logger.Printf("Skipping \"%s\": %v\n", path, err)
			continue
		}

		if height == 0 {
			height = b.Height
		} else if b.Height != height {
			c.logger.Printf("Height of \"%s\" is %d, expected %d\n", path, b.Height, height)
			return ErrHeightMismatch
		}

		buffers = append(buffers, b)
		width += b.Width
	}

	if len(buffers) == 0 {
		return ErrEmpty
	}

	strip, err := pixel.New(width, height)
	if err != nil {
		c.logger.Printf("Unable to allocate %dx%d strip: %v\n", width, height, err)
		return err
	}

	x := 0
	for _, b := range buffers {
		for y := 0; y < height; y++ {
			copy(strip.Row(y)[x:x+b.Width], b.Row(y))
		}
		x += b.Width
	}

	slot.Set(strip)
	c.logger.Printf("Concatenated %d of %d images (%dx%d)\n", len(buffers), len(paths), width, height)

	return nil
}
