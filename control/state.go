/*
Package control holds the id tuple shared between the control server and the
render loop, and serves the HTTP interface used to change it.
*/
package control

import (
	"sync"

	"github.com/bodgit/signboard/mode"
)

// DefaultTuple is shown until the first update arrives.
func DefaultTuple() mode.Tuple {
	return mode.Tuple{
		Mode: mode.Full,
		Full: 1,
		Type: 1,
		Dest: 1,
		Dep:  7,
		Next: 1,
	}
}

// Update carries the fields of a tuple to change; nil fields are kept.
type Update struct {
	Mode *int
	Full *int
	Type *int
	Dest *int
	Dep  *int
	Next *int
}

// Empty reports whether u changes nothing.
func (u Update) Empty() bool {
	return u.Mode == nil && u.Full == nil && u.Type == nil && u.Dest == nil && u.Dep == nil && u.Next == nil
}

// State guards the tuple. Updates are applied as a whole so a reader never
// sees half of one.
type State struct {
	mu    sync.RWMutex
	tuple mode.Tuple
}

// NewState returns a State starting at t.
func NewState(t mode.Tuple) *State {
	return &State{
		tuple: t,
	}
}

// Set applies u and returns the resulting tuple.
func (s *State) Set(u Update) mode.Tuple {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Mode != nil {
		s.tuple.Mode = mode.Mode(*u.Mode)
	}
	for _, f := range []struct {
		src *int
		dst *int
	}{
		{u.Full, &s.tuple.Full},
		{u.Type, &s.tuple.Type},
		{u.Dest, &s.tuple.Dest},
		{u.Dep, &s.tuple.Dep},
		{u.Next, &s.tuple.Next},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	return s.tuple
}

// Snapshot returns the current tuple.
func (s *State) Snapshot() mode.Tuple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tuple
}
