// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

// Event is a notification sent by a board to its subscribers. The set of
// events is closed:
//
//	StateChanged
//	DisplayChanged
//	EdgeChanged
//	BoardReset
//	BoardLoaded
//	Settled
//
type Event interface {
	event()
}

// StateChanged reports a change in the state of an entity. Field is the output
// label for gates, "state" otherwise.
//
type StateChanged struct {
	Entity EntityKind
	ID     int
	Field  string
	Value  bool
}

// DisplayChanged reports a change on one panel of a display.
//
type DisplayChanged struct {
	ID       int
	Panel    int
	Value    int
	Segments Segments
}

// EdgeChanged reports the addition or removal of an edge.
//
type EdgeChanged struct {
	Edge  Edge
	Added bool
}

// BoardReset is sent after a board reset.
//
type BoardReset struct{}

// BoardLoaded is sent after a snapshot has been loaded.
//
type BoardLoaded struct {
	Edges int
}

// Settled is sent when the propagation started from Origin is complete.
// Visits is the number of port expansions it took.
//
type Settled struct {
	Origin Port
	Visits int
}

func (StateChanged) event()   {}
func (DisplayChanged) event() {}
func (EdgeChanged) event()    {}
func (BoardReset) event()     {}
func (BoardLoaded) event()    {}
func (Settled) event()        {}

// bus dispatches events synchronously to subscribers, in subscription order.
//
type bus struct {
	subs []*subscriber
}

type subscriber struct {
	fn func(Event)
}

func (b *bus) subscribe(fn func(Event)) func() {
	s := &subscriber{fn}
	b.subs = append(b.subs, s)
	return func() {
		for i, x := range b.subs {
			if x == s {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) emit(e Event) {
	for _, s := range b.subs {
		s.fn(e)
	}
}
