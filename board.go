// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"log/slog"
	"time"

	"github.com/db47h/boardsim/gates"
	"github.com/pkg/errors"
)

// DefaultPulseWidth is the time a pulse stays HIGH after being triggered.
//
const DefaultPulseWidth = 500 * time.Millisecond

type pulse struct {
	state  bool
	cancel func() bool
}

// A Board holds the entities of a logic board and the connections between
// them. Every stimulus (ToggleInput, TriggerPulse, Connect, Disconnect) is
// fully propagated before the call returns.
//
// A Board is not safe for concurrent use. Event handlers registered with
// Subscribe are called synchronously and must not modify the board.
//
type Board struct {
	layout   Layout
	inputs   []bool
	pulses   []pulse
	leds     []bool
	displays []Display
	gates    []*gates.Gate
	graph    *Graph
	inflight map[gateInput]struct{}
	limit    int

	bus   bus
	log   *slog.Logger
	clock Clock
	width time.Duration
}

// An Option configures a Board.
//
type Option func(*Board)

// WithLogger sets the logger used by the board. The default logger discards
// everything.
//
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock sets the clock used to schedule the end of pulses. Defaults to a
// new VirtualClock.
//
func WithClock(c Clock) Option {
	return func(b *Board) {
		if c != nil {
			b.clock = c
		}
	}
}

// WithPulseWidth sets the pulse width. Non-positive values are ignored.
//
func WithPulseWidth(d time.Duration) Option {
	return func(b *Board) {
		if d > 0 {
			b.width = d
		}
	}
}

// New returns a new board with the given layout. All sources start LOW and no
// connections are made.
//
func New(l Layout, opts ...Option) (*Board, error) {
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid layout")
	}
	b := &Board{
		layout: Layout{
			Inputs:   l.Inputs,
			Pulses:   l.Pulses,
			Leds:     l.Leds,
			Displays: l.Displays,
			Gates:    append([]gates.Type(nil), l.Gates...),
		},
		graph:    NewGraph(),
		inflight: make(map[gateInput]struct{}),
		limit:    2 * (len(l.Gates) + 2),
		log:      slog.New(slog.DiscardHandler),
		width:    DefaultPulseWidth,
	}
	for _, o := range opts {
		o(b)
	}
	if b.clock == nil {
		b.clock = new(VirtualClock)
	}
	b.inputs = make([]bool, l.Inputs)
	b.pulses = make([]pulse, l.Pulses)
	b.leds = make([]bool, l.Leds)
	b.displays = make([]Display, l.Displays)
	b.gates = make([]*gates.Gate, len(l.Gates))
	for i, t := range l.Gates {
		b.gates[i] = gates.New(i, t)
	}
	return b, nil
}

// Layout returns the board layout.
//
func (b *Board) Layout() Layout {
	l := b.layout
	l.Gates = append([]gates.Type(nil), l.Gates...)
	return l
}

// Clock returns the clock used by the board.
//
func (b *Board) Clock() Clock { return b.clock }

// PulseWidth returns the configured pulse width.
//
func (b *Board) PulseWidth() time.Duration { return b.width }

// ExpansionLimit returns the maximum number of times a single port is
// expanded in one propagation. A chain of gates changes each port at most
// once per gate along the chain, so only feedback loops that never settle,
// like an odd ring of inverters, are cut short.
//
func (b *Board) ExpansionLimit() int { return b.limit }

// Subscribe registers fn to receive board events. It returns a function that
// removes the subscription.
//
func (b *Board) Subscribe(fn func(Event)) (unsubscribe func()) {
	return b.bus.subscribe(fn)
}

func unknownEntity(kind string, id int) error {
	return errors.Wrapf(ErrUnknownEntity, "%s %d", kind, id)
}

// Input returns the state of input id.
//
func (b *Board) Input(id int) (bool, error) {
	if id < 0 || id >= len(b.inputs) {
		return false, unknownEntity("input", id)
	}
	return b.inputs[id], nil
}

// Pulse returns the state of pulse id.
//
func (b *Board) Pulse(id int) (bool, error) {
	if id < 0 || id >= len(b.pulses) {
		return false, unknownEntity("pulse", id)
	}
	return b.pulses[id].state, nil
}

// Led returns the state of led id.
//
func (b *Board) Led(id int) (bool, error) {
	if id < 0 || id >= len(b.leds) {
		return false, unknownEntity("led", id)
	}
	return b.leds[id], nil
}

// Display returns a copy of the state of display id.
//
func (b *Board) Display(id int) (Display, error) {
	if id < 0 || id >= len(b.displays) {
		return Display{}, unknownEntity("display", id)
	}
	return b.displays[id], nil
}

// Gate returns a copy of gate id.
//
func (b *Board) Gate(id int) (gates.Gate, error) {
	if id < 0 || id >= len(b.gates) {
		return gates.Gate{}, unknownEntity("gate", id)
	}
	g := *b.gates[id]
	g.Inputs = append(make([]bool, 0, len(g.Inputs)), g.Inputs...)
	g.Connected = append(make([]bool, 0, len(g.Connected)), g.Connected...)
	g.Outputs = g.Outputs.Clone()
	if g.PreviousClock != nil {
		c := *g.PreviousClock
		g.PreviousClock = &c
	}
	return g, nil
}

// GateOutputs returns a copy of the outputs of gate id.
//
func (b *Board) GateOutputs(id int) (gates.OutputMap, error) {
	if id < 0 || id >= len(b.gates) {
		return nil, unknownEntity("gate", id)
	}
	return b.gates[id].Outputs.Clone(), nil
}

// PortState returns the signal level at port p. For gate inputs, this is the
// last level driven on that input (false if it is not connected).
//
func (b *Board) PortState(p Port) (bool, error) {
	if err := b.layout.ValidPort(p); err != nil {
		return false, err
	}
	return b.portValue(p), nil
}

func (b *Board) portValue(p Port) bool {
	switch p.Kind {
	case KindInput:
		return b.inputs[p.ID] != (p.Label == LabelQNot)
	case KindPulse:
		return b.pulses[p.ID].state != (p.Label == LabelQNot)
	case KindGateOutput:
		return b.gates[p.ID].Get(p.Label)
	case KindGateInput:
		g := b.gates[p.ID]
		return g.Inputs[gates.InputIndex(g.Type, p.Label)]
	case KindLed:
		return b.leds[p.ID]
	case KindDisplay:
		return b.displays[p.ID].get(p.Label)
	}
	return false
}

// Edges returns all connections in insertion order.
//
func (b *Board) Edges() []Edge { return b.graph.Edges() }

// Connected returns true if a connection joins a and b.
//
func (b *Board) Connected(a, c Port) bool { return b.graph.Has(a, c) }

// ToggleInput flips the state of input id and propagates it.
//
func (b *Board) ToggleInput(id int) error {
	if id < 0 || id >= len(b.inputs) {
		return unknownEntity("input", id)
	}
	return b.SetInput(id, !b.inputs[id])
}

// SetInput sets the state of input id and propagates it if it changed.
//
func (b *Board) SetInput(id int, v bool) error {
	if id < 0 || id >= len(b.inputs) {
		return unknownEntity("input", id)
	}
	if b.inputs[id] == v {
		return nil
	}
	b.inputs[id] = v
	b.log.Debug("input changed", "id", id, "state", v)
	b.bus.emit(StateChanged{EntityInput, id, "state", v})
	b.notify(In(id, LabelQ))
	b.notify(In(id, LabelQNot))
	return nil
}

// TriggerPulse sets pulse id HIGH and schedules its return to LOW after the
// pulse width. Triggering a pulse that is already HIGH restarts the pulse
// window.
//
func (b *Board) TriggerPulse(id int) error {
	if id < 0 || id >= len(b.pulses) {
		return unknownEntity("pulse", id)
	}
	p := &b.pulses[id]
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	b.setPulse(id, true)
	p.cancel = b.clock.AfterFunc(b.width, func() {
		b.pulses[id].cancel = nil
		b.setPulse(id, false)
	})
	return nil
}

func (b *Board) setPulse(id int, v bool) {
	if b.pulses[id].state == v {
		return
	}
	b.pulses[id].state = v
	b.log.Debug("pulse changed", "id", id, "state", v)
	b.bus.emit(StateChanged{EntityPulse, id, "state", v})
	b.notify(PulsePort(id, LabelQ))
	b.notify(PulsePort(id, LabelQNot))
}

// Connect wires ports from and to and propagates the signal over the new
// connection. A sink to source connection is stored as source to sink.
//
// Connect fails with ErrUnknownPort if a port does not exist on the board,
// ErrSelfConnection if from == to, or ErrAlreadyExists if the two ports are
// already connected. The board is left untouched on error.
//
func (b *Board) Connect(from, to Port) (Edge, error) {
	if err := b.layout.ValidPort(from); err != nil {
		b.log.Warn("connection rejected", "from", from, "to", to, "error", err)
		return Edge{}, err
	}
	if err := b.layout.ValidPort(to); err != nil {
		b.log.Warn("connection rejected", "from", from, "to", to, "error", err)
		return Edge{}, err
	}
	e, err := b.graph.Add(from, to)
	if err != nil {
		b.log.Warn("connection rejected", "from", from, "to", to, "error", err)
		return Edge{}, err
	}
	kind := Classify(e.From, e.To)
	b.log.Info("connected", "from", e.From, "to", e.To, "kind", kind)
	b.bus.emit(EdgeChanged{e, true})

	switch kind {
	case Standard, SourceBridge:
		b.notify(e.From)
	case SinkBridge:
		switch {
		case b.driven(e.From):
			b.notify(e.From)
		case b.driven(e.To):
			b.notify(e.To)
		}
	}
	return e, nil
}

// driven returns true if sink p receives a signal from some other connection
// than a bridge being set up.
//
func (b *Board) driven(p Port) bool {
	if p.Kind == KindGateInput {
		return b.gates[p.ID].Wired(p.Label)
	}
	return b.graph.Degree(p) > 1
}

// Disconnect removes the connection between a and b, in either direction.
//
// Sinks that no source can reach anymore, directly or through bridges, are
// released: gate inputs become disconnected (and their gate re-evaluated),
// leds turn off and display bits clear. All connected sources are then
// propagated again. The state of flip-flops is kept.
//
// Disconnect fails with ErrNotFound if no such connection exists.
//
func (b *Board) Disconnect(a, c Port) error {
	e, ok := b.graph.Remove(a, c)
	if !ok {
		b.log.Warn("disconnect failed", "from", a, "to", c, "error", ErrNotFound)
		return errors.Wrapf(ErrNotFound, "%v - %v", a, c)
	}
	b.log.Info("disconnected", "from", e.From, "to", e.To)
	b.bus.emit(EdgeChanged{e, false})
	reached := b.reachable()
	ends := []Port{e.From, e.To}
	for _, x := range b.graph.Edges() {
		ends = append(ends, x.From, x.To)
	}
	done := make(map[Port]struct{})
	for _, p := range ends {
		if _, ok := done[p]; ok || p.Role() != Sink || reached[p] {
			continue
		}
		done[p] = struct{}{}
		if b.holds(p) {
			b.release(p)
		}
	}
	b.resync()
	return nil
}

// reachable returns the ports joined to a source by a chain of connections.
//
func (b *Board) reachable() map[Port]bool {
	seen := make(map[Port]bool)
	var stack []Port
	for _, p := range b.layout.Sources() {
		if b.graph.Degree(p) > 0 {
			seen[p] = true
			stack = append(stack, p)
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, q := range b.graph.Neighbors(p) {
			if !seen[q] {
				seen[q] = true
				stack = append(stack, q)
			}
		}
	}
	return seen
}

// holds returns true if sink p still holds a driven level.
//
func (b *Board) holds(p Port) bool {
	if p.Kind == KindGateInput {
		return b.gates[p.ID].Wired(p.Label)
	}
	return b.portValue(p)
}

// resync propagates all connected sources in deterministic order.
//
func (b *Board) resync() {
	for _, p := range b.layout.Sources() {
		if b.graph.Degree(p) > 0 {
			b.notify(p)
		}
	}
}

// Reset sets all entities to their initial state and removes all connections.
// Pending pulse ends are cancelled.
//
func (b *Board) Reset() {
	for i := range b.pulses {
		if c := b.pulses[i].cancel; c != nil {
			c()
		}
		b.pulses[i] = pulse{}
	}
	for i := range b.inputs {
		b.inputs[i] = false
	}
	for i := range b.leds {
		b.leds[i] = false
	}
	for i := range b.displays {
		b.displays[i] = Display{}
	}
	for _, g := range b.gates {
		g.Reset()
	}
	b.graph.Clear()
	b.inflight = make(map[gateInput]struct{})
	b.log.Info("board reset")
	b.bus.emit(BoardReset{})
}
