// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"github.com/db47h/boardsim/gates"
)

// gateInput identifies a gate input for the in-flight marker.
//
type gateInput struct {
	id    int
	label string
}

// A pass is a single propagation run.
//
// Levels are carried depth-first from a port over its connections and bridges.
// Gate outputs that change during the walk are queued and expanded in order
// once the walk unwinds. A port is expanded again whenever its level differs
// from the level it last carried in the pass, at most b.limit times. Only
// feedback loops that never settle reach that limit.
//
type pass struct {
	b      *Board
	last   map[Port]bool
	count  map[Port]int
	queue  []Port
	queued map[Port]struct{}
	visits int
}

// run runs f in a new propagation pass started at origin, drains the queue of
// changed gate outputs, then reports the work done.
//
func (b *Board) run(origin Port, f func(ps *pass)) {
	ps := &pass{
		b:      b,
		last:   make(map[Port]bool),
		count:  make(map[Port]int),
		queued: make(map[Port]struct{}),
	}
	f(ps)
	for len(ps.queue) > 0 {
		p := ps.queue[0]
		ps.queue = ps.queue[1:]
		delete(ps.queued, p)
		ps.expand(p, b.portValue(p))
	}
	b.bus.emit(Settled{origin, ps.visits})
}

// notify propagates the current level of port p through the graph.
//
func (b *Board) notify(p Port) {
	b.run(p, func(ps *pass) { ps.expand(p, b.portValue(p)) })
}

// release disconnects sink p and propagates the consequences.
//
func (b *Board) release(p Port) {
	b.log.Debug("release", "port", p)
	b.run(p, func(ps *pass) {
		switch p.Kind {
		case KindGateInput:
			b.gates[p.ID].Release(p.Label)
			ps.evaluate(p.ID)
		case KindLed, KindDisplay:
			ps.setSink(p, false)
		}
	})
}

// schedule queues gate output p for expansion with the level it has when it
// is dequeued.
//
func (ps *pass) schedule(p Port) {
	if _, ok := ps.queued[p]; ok {
		return
	}
	ps.queued[p] = struct{}{}
	ps.queue = append(ps.queue, p)
}

// expand carries level v present at port p over every connection of p.
// Standard connections only carry the level away from their source end.
//
func (ps *pass) expand(p Port, v bool) {
	if l, ok := ps.last[p]; ok && l == v {
		return
	}
	n := ps.count[p]
	if n >= ps.b.limit {
		if n == ps.b.limit {
			ps.b.log.Warn("unstable feedback loop", "port", p, "expansions", n)
			ps.count[p]++
		}
		return
	}
	ps.count[p] = n + 1
	ps.last[p] = v
	ps.visits++
	for _, e := range ps.b.graph.EdgesOf(p) {
		q := e.Other(p)
		switch Classify(p, q) {
		case Standard:
			if p.Role() == Source {
				ps.drive(q, v)
			}
		default:
			ps.b.log.Debug("bridge", "from", p, "to", q, "level", v)
			ps.bridge(q, v)
		}
	}
}

// bridge carries level v to port q, the far end of a bridge. Sources keep
// their own state and only pass the level on.
//
func (ps *pass) bridge(q Port, v bool) {
	if q.Role() == Source {
		ps.expand(q, v)
		return
	}
	ps.drive(q, v)
}

// drive applies level v to sink q then propagates it over q's bridges.
//
func (ps *pass) drive(q Port, v bool) {
	switch q.Kind {
	case KindGateInput:
		ps.setGateInput(q, v)
	case KindLed, KindDisplay:
		ps.setSink(q, v)
		ps.expand(q, v)
	}
}

func (ps *pass) setSink(q Port, v bool) {
	b := ps.b
	switch q.Kind {
	case KindLed:
		if b.leds[q.ID] != v {
			b.leds[q.ID] = v
			b.bus.emit(StateChanged{EntityLed, q.ID, "state", v})
		}
	case KindDisplay:
		d := &b.displays[q.ID]
		if panel, changed := d.set(q.Label, v); changed {
			b.bus.emit(DisplayChanged{q.ID, panel, d.Panels[panel].Value, d.Segments(panel)})
		}
	}
}

// setGateInput drives a gate input, re-evaluates the gate and propagates the
// level over the input's bridges. Re-entering an input already being set in
// the same call chain is a no-op.
//
func (ps *pass) setGateInput(q Port, v bool) {
	b := ps.b
	k := gateInput{q.ID, q.Label}
	if _, busy := b.inflight[k]; busy {
		return
	}
	b.inflight[k] = struct{}{}
	defer delete(b.inflight, k)

	b.gates[q.ID].Set(q.Label, v)
	ps.evaluate(q.ID)
	ps.expand(q, v)
}

// evaluate recomputes gate id and queues its changed outputs.
//
func (ps *pass) evaluate(id int) {
	b := ps.b
	g := b.gates[id]
	tied := g.Type == gates.JK && b.graph.Tied(id, "J", "K")
	changed := g.Update(tied)
	b.log.Debug("evaluate", "gate", id, "type", g.Type, "changed", changed)
	entity := EntityGate
	if g.Type == gates.PowerHigh || g.Type == gates.PowerLow {
		entity = EntityPowerRail
	}
	for _, o := range changed {
		b.bus.emit(StateChanged{entity, id, o, g.Get(o)})
		ps.schedule(GateOut(id, o))
	}
}
