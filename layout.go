// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"github.com/db47h/boardsim/gates"
	"github.com/pkg/errors"
)

// A Layout describes the entities placed on a board. Entity ids are indices
// into their respective list, starting at 0.
//
type Layout struct {
	Inputs   int
	Pulses   int
	Leds     int
	Displays int
	// Gates lists the type of each gate, in id order.
	Gates []gates.Type
}

// DefaultLayout returns the standard board layout: 8 inputs, 1 pulse, 12 leds,
// 1 display and 33 gates.
//
func DefaultLayout() Layout {
	var gs []gates.Type
	add := func(t gates.Type, n int) {
		for i := 0; i < n; i++ {
			gs = append(gs, t)
		}
	}
	add(gates.And, 7)
	add(gates.Or, 5)
	add(gates.ABCD, 3)
	add(gates.Xor, 1)
	add(gates.Xnor, 1)
	add(gates.Not, 2)
	add(gates.Adder4, 2)
	add(gates.Comp4, 1)
	add(gates.CompBasic, 1)
	add(gates.PowerHigh, 1)
	add(gates.PowerLow, 1)
	add(gates.JK, 4)
	add(gates.DFF, 4)
	return Layout{Inputs: 8, Pulses: 1, Leds: 12, Displays: 1, Gates: gs}
}

// Validate checks that the layout has no negative counts and only known gate
// types.
//
func (l *Layout) Validate() error {
	if l.Inputs < 0 || l.Pulses < 0 || l.Leds < 0 || l.Displays < 0 {
		return errors.New("negative entity count in layout")
	}
	for i, t := range l.Gates {
		if _, err := gates.ParseType(t.String()); err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
	}
	return nil
}

// Equal returns true if l and o describe the same board.
//
func (l *Layout) Equal(o *Layout) bool {
	if l.Inputs != o.Inputs || l.Pulses != o.Pulses || l.Leds != o.Leds || l.Displays != o.Displays || len(l.Gates) != len(o.Gates) {
		return false
	}
	for i := range l.Gates {
		if l.Gates[i] != o.Gates[i] {
			return false
		}
	}
	return true
}

func sourceLabel(l string) bool { return l == LabelQ || l == LabelQNot }

// ValidPort returns an error wrapping ErrUnknownPort if p does not exist in
// the layout.
//
func (l *Layout) ValidPort(p Port) error {
	ok := false
	switch p.Kind {
	case KindInput:
		ok = p.ID >= 0 && p.ID < l.Inputs && sourceLabel(p.Label)
	case KindPulse:
		ok = p.ID >= 0 && p.ID < l.Pulses && sourceLabel(p.Label)
	case KindLed:
		ok = p.ID >= 0 && p.ID < l.Leds && p.Label == ""
	case KindDisplay:
		_, _, valid := displayPin(p.Label)
		ok = p.ID >= 0 && p.ID < l.Displays && valid
	case KindGateInput:
		ok = p.ID >= 0 && p.ID < len(l.Gates) && gates.InputIndex(l.Gates[p.ID], p.Label) >= 0
	case KindGateOutput:
		ok = p.ID >= 0 && p.ID < len(l.Gates) && gates.HasOutput(l.Gates[p.ID], p.Label)
	}
	if !ok {
		return errors.Wrap(ErrUnknownPort, p.String())
	}
	return nil
}

// Sources returns all source ports of the layout in deterministic order:
// inputs, pulses, then gate outputs by gate id and pinout order.
//
func (l *Layout) Sources() []Port {
	var ps []Port
	for i := 0; i < l.Inputs; i++ {
		ps = append(ps, In(i, LabelQ), In(i, LabelQNot))
	}
	for i := 0; i < l.Pulses; i++ {
		ps = append(ps, PulsePort(i, LabelQ), PulsePort(i, LabelQNot))
	}
	for id, t := range l.Gates {
		for _, o := range gates.Outputs(t) {
			ps = append(ps, GateOut(id, o))
		}
	}
	return ps
}
