/*
Package mode implements the display modes of the sign and the state machine
switching between them.

The machine is polled with the current id tuple. It detects a mode change,
lets the active mode re-cache whatever its inputs require and then advances
that mode's animations. Every mode memoizes the ids it last saw so repeated
polls with an unchanged tuple only animate.
*/
package mode

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/bodgit/signboard/cache"
	"github.com/bodgit/signboard/render"
	"github.com/bodgit/signboard/stations"
	"github.com/bodgit/signboard/table"
)

// Mode selects what the sign shows.
type Mode int

// Display modes
const (
	Full           Mode = iota // a single full-panel image
	TypeDest                   // train type and destination
	TypeDestNext               // bilingual type, destination and next stop
	TypeDestScroll             // bilingual type and destination over a scrolling stop list
	numModes
)

var modeNames = [...]string{"full", "type/destination", "type/destination/next", "type/destination/scroll"}

func (m Mode) String() string {
	if m < 0 || m >= numModes {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < numModes
}

// Tuple is the externally supplied set of ids driving the sign.
type Tuple struct {
	Mode Mode
	Full int
	Type int
	Dest int
	Dep  int
	Next int
}

// Config holds the id layout, the screen positions and animation timing.
type Config struct {
	// Reserved is the first destination or station id that is not a
	// real station.
	Reserved int
	// Unset is the id meaning "no station".
	Unset int
	// Boundary separates the station ids of the two lines.
	Boundary int
	// LineA and LineB are the destination table rows holding the route
	// line images.
	LineA int
	LineB int

	Type       image.Point
	Dest       image.Point
	Next       image.Point
	ScrollSize image.Point

	ToggleInterval time.Duration
	ScrollInterval time.Duration

	Stations stations.Config
}

// DefaultConfig returns the layout of a 128x32 panel.
func DefaultConfig() Config {
	return Config{
		Reserved:       900,
		Unset:          0,
		Boundary:       100,
		LineA:          901,
		LineB:          902,
		Type:           image.Pt(0, 0),
		Dest:           image.Pt(48, 0),
		Next:           image.Pt(48, 16),
		ScrollSize:     image.Pt(80, 16),
		ToggleInterval: 3 * time.Second,
		ScrollInterval: 30 * time.Millisecond,
		Stations:       stations.DefaultConfig(),
	}
}

// line returns the route line row for a train heading for station id.
func (c Config) line(id int) int {
	if id < c.Boundary {
		return c.LineA
	}
	return c.LineB
}

// Tables holds the four lookup tables.
type Tables struct {
	Full table.Reader
	Type table.Reader
	Dest table.Reader
	Next table.Reader
}

type handler interface {
	enter()
	tick(now time.Time, t Tuple)
}

// Machine owns every cache slot and animation of the sign. It is not safe
// for concurrent use; a single goroutine should poll it.
type Machine struct {
	config    Config
	tables    Tables
	cache     *cache.Cache
	surface   render.Surface
	assembler *stations.Assembler
	logger    *log.Logger

	handlers [numModes]handler
	active   Mode
	started  bool
	invalid  memo
}

// New returns a Machine drawing onto s with images from c.
func New(config Config, tables Tables, c *cache.Cache, s render.Surface, logger *log.Logger) (*Machine, error) {
	m := &Machine{
		config:    config,
		tables:    tables,
		cache:     c,
		surface:   s,
		assembler: stations.New(tables.Next, tables.Type, config.Stations, logger),
		logger:    logger,
	}

	r := s.Bounds()
	canvas, err := render.NewCanvas(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	m.handlers = [numModes]handler{
		Full:           &full{m: m, canvas: canvas},
		TypeDest:       newTypeDest(m),
		TypeDestNext:   newTypeDestNext(m),
		TypeDestScroll: newTypeDestScroll(m),
	}

	return m, nil
}

// Active returns the mode currently on screen. It can differ from the
// requested mode when a scroll request falls back to the next stop display.
func (m *Machine) Active() Mode {
	return m.active
}

// fallback reports whether a scroll request should show the next stop
// display instead.
func (m *Machine) fallback(t Tuple) bool {
	d := t.Dest - t.Dep
	if d < 0 {
		d = -d
	}
	return d < 2 || t.Dest >= m.config.Reserved || t.Dest == m.config.Unset
}

// Poll brings the screen up to date with t. Any mode change clears the
// surface before the new mode caches and draws.
func (m *Machine) Poll(now time.Time, t Tuple) {
	if !t.Mode.Valid() {
		if m.invalid.update(int(t.Mode)) {
			m.logger.Printf("Ignoring unknown mode %d\n", t.Mode)
		}
		return
	}
	m.invalid.reset()

	target := t.Mode
	if target == TypeDestScroll && m.fallback(t) {
		target = TypeDestNext
		t.Next = t.Dest
	}

	if !m.started || target != m.active {
		m.logger.Printf("Switching to %s mode\n", target)
		render.Clear(m.surface)
		m.handlers[target].enter()
		m.active = target
		m.started = true
	}

	m.handlers[target].tick(now, t)
}

func (m *Machine) lookup(r table.Reader, name string, id int, field string) (string, bool) {
	value, err := r.Lookup(id, field)
	switch {
	case err != nil:
		m.logger.Printf("Unable to find %s %d \"%s\": %v\n", name, id, field, err)
		return "", false
	case value == "":
		m.logger.Printf("No %s %d \"%s\"\n", name, id, field)
		return "", false
	}
	return value, true
}

// load caches a table image into slot. A missing or empty table entry
// empties the slot, a failed decode keeps what was there.
func (m *Machine) load(r table.Reader, name string, id int, field string, slot *cache.Slot) {
	path, ok := m.lookup(r, name, id, field)
	if !ok {
		slot.Set(nil)
		return
	}
	m.cache.Load(path, slot)
}

// draw renders a table image straight onto the surface.
func (m *Machine) draw(r table.Reader, name string, id int, field string, at image.Point) {
	path, ok := m.lookup(r, name, id, field)
	if !ok {
		return
	}
	if err := render.DrawFile(m.cache, path, at.X, at.Y, m.surface); err != nil {
		m.logger.Printf("Unable to draw \"%s\": %v\n", path, err)
	}
}

// memo remembers the last id a mode acted on.
type memo struct {
	id    int
	valid bool
}

// update records id and reports whether it differs from the previous one.
func (m *memo) update(id int) bool {
	if m.valid && m.id == id {
		return false
	}
	m.id, m.valid = id, true
	return true
}

func (m *memo) reset() {
	m.valid = false
}
