// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardtest

import (
	"github.com/db47h/boardsim"
)

// A Recorder records the events sent by a board.
//
type Recorder struct {
	events []boardsim.Event
	stop   func()
}

// Record returns a new Recorder subscribed to b.
//
func Record(b *boardsim.Board) *Recorder {
	r := new(Recorder)
	r.stop = b.Subscribe(func(e boardsim.Event) { r.events = append(r.events, e) })
	return r
}

// Stop ends the recording.
//
func (r *Recorder) Stop() { r.stop() }

// Events returns the recorded events.
//
func (r *Recorder) Events() []boardsim.Event { return r.events }

// Clear drops the recorded events.
//
func (r *Recorder) Clear() { r.events = nil }

// States returns the recorded StateChanged events for the given entity kind.
//
func (r *Recorder) States(kind boardsim.EntityKind) []boardsim.StateChanged {
	var sc []boardsim.StateChanged
	for _, e := range r.events {
		if s, ok := e.(boardsim.StateChanged); ok && s.Entity == kind {
			sc = append(sc, s)
		}
	}
	return sc
}

// Settled returns the recorded Settled events.
//
func (r *Recorder) Settled() []boardsim.Settled {
	var ss []boardsim.Settled
	for _, e := range r.events {
		if s, ok := e.(boardsim.Settled); ok {
			ss = append(ss, s)
		}
	}
	return ss
}
