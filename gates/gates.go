// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gates provides the gate library of the board simulator: the gate
// types, their pinout, and the rules used to compute their outputs.
//
// Evaluation of combinational gates is a pure function of a gate's inputs and
// connectivity (see Evaluate). Flip-flops additionally keep an internal state
// that only changes on a rising edge of their clock input (see Clock).
//
package gates

import (
	"strconv"

	"github.com/pkg/errors"
)

// Type identifies a gate type.
//
type Type int

// Gate types.
//
const (
	Unknown Type = iota
	And
	Or
	ABCD
	Xor
	Xnor
	Not
	Adder4
	Comp4
	CompBasic
	PowerHigh
	PowerLow
	JK
	DFF
)

var typeNames = [...]string{
	Unknown:   "UNKNOWN",
	And:       "AND",
	Or:        "OR",
	ABCD:      "AB_CD",
	Xor:       "XOR",
	Xnor:      "XNOR",
	Not:       "NOT",
	Adder4:    "ADDER_4BIT",
	Comp4:     "COMP_4BIT",
	CompBasic: "COMP_BASIC",
	PowerHigh: "POWER_HIGH",
	PowerLow:  "POWER_LOW",
	JK:        "JK_FF",
	DFF:       "D_FF",
}

// Types returns all known gate types, Unknown excluded.
//
func Types() []Type {
	ts := make([]Type, 0, len(typeNames)-1)
	for t := And; int(t) < len(typeNames); t++ {
		ts = append(ts, t)
	}
	return ts
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// ParseType returns the gate type with the given name.
//
func ParseType(name string) (Type, error) {
	for t := And; int(t) < len(typeNames); t++ {
		if typeNames[t] == name {
			return t, nil
		}
	}
	return Unknown, errors.Errorf("unknown gate type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
//
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// common pin names
const (
	pA    = "A"
	pB    = "B"
	pC    = "C"
	pD    = "D"
	pQ    = "q"
	pQNot = "q_not"
)

// pinout describes the pins of a gate type and the effective value of each
// input when it is not connected.
//
type pinout struct {
	in   []string
	out  []string
	dflt []bool
}

var (
	standardOut = []string{pQ, pQNot}
	adderOut    = []string{"S0", "S1", "S2", "S3", "CO"}
	compOut     = []string{"P>Q", "P=Q", "P<Q"}
	railOut     = []string{"0", "1", "2", "3", "4", "5", "6", "7"}
	word4In     = []string{"A0", "A1", "A2", "A3", "B0", "B1", "B2", "B3"}
)

func fill(n int, v bool) []bool {
	b := make([]bool, n)
	for i := range b {
		b[i] = v
	}
	return b
}

var pinouts = map[Type]pinout{
	And:  {in: []string{pA, pB, pC, pD}, out: standardOut, dflt: fill(4, true)},
	Or:   {in: []string{pA, pB, pC, pD}, out: standardOut, dflt: fill(4, false)},
	ABCD: {in: []string{pA, pB, pC, pD}, out: standardOut, dflt: fill(4, true)},
	Xor:  {in: []string{pA, pB}, out: standardOut, dflt: fill(2, false)},
	Xnor: {in: []string{pA, pB}, out: standardOut, dflt: fill(2, false)},
	Not:  {in: []string{pA}, out: standardOut, dflt: fill(1, true)},
	Adder4: {
		in:   append(append([]string{}, word4In...), "Cin"),
		out:  adderOut,
		dflt: fill(9, false),
	},
	Comp4: {
		in:   append(append([]string{}, word4In...), ">", "<", "="),
		out:  compOut,
		dflt: append(fill(8, false), true, true, false),
	},
	CompBasic: {in: []string{"P", "Q"}, out: compOut, dflt: fill(2, false)},
	PowerHigh: {out: railOut},
	PowerLow:  {out: railOut},
	JK:        {in: []string{"S", "J", pC, "K", "R"}, out: standardOut, dflt: fill(5, false)},
	DFF:       {in: []string{pD, pC}, out: standardOut, dflt: fill(2, false)},
}

// Inputs returns the input pin labels of gate type t, in index order.
//
func Inputs(t Type) []string { return pinouts[t].in }

// Outputs returns the output pin labels of gate type t.
//
func Outputs(t Type) []string { return pinouts[t].out }

// InputIndex returns the index of input label in gate type t, or -1 if t has no
// such input.
//
func InputIndex(t Type, label string) int {
	for i, n := range pinouts[t].in {
		if n == label {
			return i
		}
	}
	return -1
}

// HasOutput returns true if gate type t has an output pin with the given label.
//
func HasOutput(t Type, label string) bool {
	for _, n := range pinouts[t].out {
		if n == label {
			return true
		}
	}
	return false
}

// Sequential returns true for clocked gate types.
//
func Sequential(t Type) bool { return t == JK || t == DFF }

// OutputMap maps output pin labels to their state.
//
type OutputMap map[string]bool

// Clone returns a copy of m.
//
func (m OutputMap) Clone() OutputMap {
	if m == nil {
		return nil
	}
	c := make(OutputMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// A Gate is an instance of a gate type on the board.
//
type Gate struct {
	ID        int
	Type      Type
	Inputs    []bool
	Connected []bool
	Output    bool
	Outputs   OutputMap
	// PreviousClock is the clock level seen by the last evaluation of a
	// flip-flop. nil until the first evaluation.
	PreviousClock *bool
}

// New returns a new gate of type t with all inputs disconnected and its
// outputs computed.
//
func New(id int, t Type) *Gate {
	g := &Gate{ID: id, Type: t}
	g.Reset()
	return g
}

// Reset disconnects all inputs, clears the flip-flop state and recomputes the
// outputs.
//
func (g *Gate) Reset() {
	n := len(pinouts[g.Type].in)
	g.Inputs = make([]bool, n)
	g.Connected = make([]bool, n)
	g.Output = false
	g.PreviousClock = nil
	r := Evaluate(g)
	g.Output, g.Outputs = r.Output, r.Outputs
}

// Effective returns the value used for input i in evaluation: the wired value
// if connected, the gate type default otherwise.
//
func (g *Gate) Effective(i int) bool {
	if g.Connected[i] {
		return g.Inputs[i]
	}
	return pinouts[g.Type].dflt[i]
}

// Set drives the input with the given label and marks it connected. It returns
// false if the gate has no such input.
//
func (g *Gate) Set(label string, v bool) bool {
	i := InputIndex(g.Type, label)
	if i < 0 {
		return false
	}
	g.Inputs[i] = v
	g.Connected[i] = true
	return true
}

// Release disconnects the input with the given label.
//
func (g *Gate) Release(label string) bool {
	i := InputIndex(g.Type, label)
	if i < 0 {
		return false
	}
	g.Inputs[i] = false
	g.Connected[i] = false
	return true
}

// Wired returns true if the input with the given label is connected.
//
func (g *Gate) Wired(label string) bool {
	i := InputIndex(g.Type, label)
	return i >= 0 && g.Connected[i]
}

// Get returns the state of output label.
//
func (g *Gate) Get(label string) bool {
	return g.Outputs[label]
}

// Update clocks the gate if it is sequential, recomputes its outputs and
// returns the labels of the outputs whose state changed, in pinout order.
//
// tied tells whether the J and K inputs of a JK flip-flop are bridged
// together; it is ignored for other gate types.
//
func (g *Gate) Update(tied bool) []string {
	if Sequential(g.Type) {
		Clock(g, tied)
	}
	r := Evaluate(g)
	var changed []string
	for _, o := range pinouts[g.Type].out {
		if prev, ok := g.Outputs[o]; !ok || prev != r.Outputs[o] {
			changed = append(changed, o)
		}
	}
	g.Output, g.Outputs = r.Output, r.Outputs
	return changed
}
