/*
Package signboard drives a dot-matrix train destination sign.

Images and lookup tables are read from an asset store, decoded into memory
and composed onto a fixed size panel according to an id tuple that can be
changed at any time through the control package.
*/
package signboard

import (
	"context"
	"log"
	"time"

	"github.com/bodgit/signboard/cache"
	"github.com/bodgit/signboard/config"
	"github.com/bodgit/signboard/control"
	"github.com/bodgit/signboard/mode"
	"github.com/bodgit/signboard/render"
	"github.com/bodgit/signboard/store"
)

// Flusher is implemented by surfaces that buffer writes to a device.
type Flusher interface {
	Flush() error
}

// Signboard is the render loop of the sign.
type Signboard struct {
	machine  *mode.Machine
	state    *control.State
	surface  render.Surface
	interval time.Duration
	logger   *log.Logger
}

// New returns a Signboard drawing onto s whatever state asks for.
func New(cfg *config.Config, tables mode.Tables, st store.Store, s render.Surface, state *control.State, logger *log.Logger) (*Signboard, error) {
	m, err := mode.New(cfg.Mode(), tables, cache.New(st, logger), s, logger)
	if err != nil {
		return nil, err
	}

	return &Signboard{
		machine:  m,
		state:    state,
		surface:  s,
		interval: cfg.Timing.Poll,
		logger:   logger,
	}, nil
}

// Active returns the mode on screen.
func (sb *Signboard) Active() mode.Mode {
	return sb.machine.Active()
}

// Poll renders one tick for the current tuple.
func (sb *Signboard) Poll(now time.Time) {
	sb.machine.Poll(now, sb.state.Snapshot())

	if f, ok := sb.surface.(Flusher); ok {
		if err := f.Flush(); err != nil {
			sb.logger.Printf("Unable to flush display: %v\n", err)
		}
	}
}

// Run polls until ctx is done.
func (sb *Signboard) Run(ctx context.Context) error {
	ticker := time.NewTicker(sb.interval)
	defer ticker.Stop()

	sb.Poll(time.Now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			sb.Poll(now)
		}
	}
}
