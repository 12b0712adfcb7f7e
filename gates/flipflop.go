// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

// Mode is the operating mode of a JK flip-flop, derived from which of its
// inputs are wired.
//
type Mode int

// JK flip-flop modes.
//
const (
	ModeNone Mode = iota
	ModeJK
	ModeSCR
	ModeMixed
	ModeT
)

func (m Mode) String() string {
	switch m {
	case ModeJK:
		return "JK"
	case ModeSCR:
		return "SCR"
	case ModeMixed:
		return "MIXED"
	case ModeT:
		return "T"
	}
	return "NONE"
}

// JK flip-flop input indices
const (
	jkS = iota
	jkJ
	jkC
	jkK
	jkR
)

// D flip-flop input indices
const (
	dD = iota
	dC
)

// JKMode returns the operating mode of JK flip-flop g. tied tells whether J and
// K are bridged together.
//
// MIXED (S or R wired together with J or K) behaves as SCR.
//
func JKMode(g *Gate, tied bool) Mode {
	hasSR := g.Connected[jkS] || g.Connected[jkR]
	hasJK := g.Connected[jkJ] || g.Connected[jkK]
	switch {
	case tied && hasJK:
		return ModeT
	case hasSR && hasJK:
		return ModeMixed
	case hasSR:
		return ModeSCR
	case hasJK:
		return ModeJK
	}
	return ModeNone
}

// Clock applies the current clock input of flip-flop g. The stored state
// changes only on a rising edge (previous clock LOW, current clock HIGH); the
// edge is checked on every call whether or not the clock input changed since
// the last one.
//
//	D flip-flop:  Inputs: D, C
//	              Function: out(edge) = D
//	JK flip-flop: Inputs: S, J, C, K, R
//	              Function: see JKMode and the mode tables below.
//
// Clock is a no-op for combinational gates.
//
func Clock(g *Gate, tied bool) {
	var clk bool
	switch g.Type {
	case DFF:
		clk = g.Effective(dC)
		if rising(g, clk) {
			g.Output = g.Effective(dD)
		}
	case JK:
		clk = g.Effective(jkC)
		if rising(g, clk) {
			g.Output = jkNext(g, JKMode(g, tied))
		}
	default:
		return
	}
	g.PreviousClock = &clk
}

func rising(g *Gate, clk bool) bool {
	prev := g.PreviousClock != nil && *g.PreviousClock
	return !prev && clk
}

func jkNext(g *Gate, m Mode) bool {
	s, j, k, r := g.Effective(jkS), g.Effective(jkJ), g.Effective(jkK), g.Effective(jkR)
	q := g.Output
	switch m {
	case ModeT:
		if j || k {
			return !q
		}
	case ModeSCR, ModeMixed:
		switch {
		case s && r:
			// invalid, hold
		case s:
			return true
		case r:
			return false
		}
	case ModeJK:
		switch {
		case j && k:
			return !q
		case j:
			return true
		case k:
			return false
		}
	}
	return q
}
