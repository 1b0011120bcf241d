/*
Package stations assembles the list of images making up the scrolling "this
train stops at" strip.

Stations are numbered consecutively along each line. Two lines meet at a
shared junction which is numbered JunctionA on the first line and JunctionB
on the second; ids below Boundary belong to the first line and ids above it
to the second.
*/
package stations

import (
	"log"

	"github.com/bodgit/signboard/table"
)

const (
	classField = "type"
	imageField = "Scroll"
	trainField = "className"
)

// Config holds the marker images and the id layout.
type Config struct {
	Start     string
	Separator string
	End       string
	Overflow  string
	Cap       int
	Boundary  int
	JunctionA int
	JunctionB int
}

// DefaultConfig returns the stock marker paths and id layout.
func DefaultConfig() Config {
	return Config{
		Start:     "/img/Scroll/ScrollStart.bmp",
		Separator: "/img/Scroll/touten.bmp",
		End:       "/img/Scroll/ScrollEnd.bmp",
		Overflow:  "/img/Scroll/ScrollEnd2.bmp",
		Cap:       12,
		Boundary:  100,
		JunctionA: 10,
		JunctionB: 110,
	}
}

// Assembler builds station lists from the station and train class tables.
type Assembler struct {
	next   table.Reader
	types  table.Reader
	config Config
	logger *log.Logger
}

// New returns an Assembler looking up stations in next and train classes in
// types.
func New(next, types table.Reader, config Config, logger *log.Logger) *Assembler {
	return &Assembler{
		next:   next,
		types:  types,
		config: config,
		logger: logger,
	}
}

func (a *Assembler) lookup(r table.Reader, name string, id int, field string) string {
	value, err := r.Lookup(id, field)
	if err != nil {
		a.logger.Printf("Unable to find %s %d \"%s\": %v\n", name, id, field, err)
		return ""
	}
	return value
}

// add appends every station strictly between start and end served by class,
// stopping once count reaches the cap. It reports whether it stopped early.
func (a *Assembler) add(paths []string, class string, start, end int, count *int) ([]string, bool) {
	if start == end {
		return paths, false
	}

	step := 1
	if end < start {
		step = -1
	}

	for id := start + step; id != end; id += step {
		if *count >= a.config.Cap {
			return paths, true
		}
		if !table.ContainsWord(a.lookup(a.next, "station", id, classField), class) {
			continue
		}
		paths = append(paths, a.config.Separator, a.lookup(a.next, "station", id, imageField))
		*count++
	}

	return paths, false
}

// Build returns the image paths for a train of class running from dep to
// dest, and whether the stop list was truncated.
func (a *Assembler) Build(dep, dest, class int) ([]string, bool) {
	c := a.config
	name := a.lookup(a.types, "type", class, trainField)

	var (
		count    int
		overflow bool
		first    bool
		second   bool
	)

	paths := []string{c.Start}

	switch {
	case dep < c.Boundary && dest > c.Boundary:
		paths, first = a.add(paths, name, dep, c.JunctionA, &count)
		paths = append(paths, c.Separator, a.lookup(a.next, "station", c.JunctionA, imageField))
		paths, second = a.add(paths, name, c.JunctionB, dest, &count)
		overflow = first || second
	case dep > c.Boundary && dest < c.Boundary:
		paths, first = a.add(paths, name, dep, c.JunctionB, &count)
		paths = append(paths, c.Separator, a.lookup(a.next, "station", c.JunctionA, imageField))
		paths, second = a.add(paths, name, c.JunctionA, dest, &count)
		overflow = first || second
	default:
		paths, overflow = a.add(paths, name, dep, dest, &count)
	}

	if overflow {
		paths = append(paths, c.Overflow)
	} else {
		paths = append(paths, c.End)
	}

	a.logger.Printf("Built %d stop(s) from %d to %d for type %d, overflow %t\n", count, dep, dest, class, overflow)

	return paths, overflow
}
