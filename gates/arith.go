// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

// comparator enable lines
const (
	gtLine = 8
	ltLine = 9
	eqLine = 10
)

// word4 returns the 4 bits value of inputs base..base+3. Input base is the
// lsb. Disconnected bits read as 0.
//
func word4(g *Gate, base int) int {
	var v int
	for bit := 0; bit < 4; bit++ {
		if g.Connected[base+bit] && g.Inputs[base+bit] {
			v |= 1 << uint(bit)
		}
	}
	return v
}

// adder computes A + B + Cin.
//
//	Inputs: A0..A3, B0..B3, Cin
//	Outputs: S0..S3, CO
//	Function: S = lsb4(A + B + Cin)
//	          CO = A + B + Cin > 15
//
func adder(g *Gate) Result {
	sum := word4(g, 0) + word4(g, 4)
	if g.Connected[8] && g.Inputs[8] {
		sum++
	}
	return Result{true, OutputMap{
		"S0": sum&1 != 0,
		"S1": sum&2 != 0,
		"S2": sum&4 != 0,
		"S3": sum&8 != 0,
		"CO": sum > 15,
	}}
}

// comp4 compares P = A0..A3 and Q = B0..B3.
//
// Each result can be gated by its enable line, but only once that line is
// wired: P>Q and P<Q are enabled by a LOW level, P=Q by a HIGH level.
//
func comp4(g *Gate) Result {
	p, q := word4(g, 0), word4(g, 4)
	gt, lt, eq := p > q, p < q, p == q
	if g.Connected[gtLine] {
		gt = gt && !g.Effective(gtLine)
	}
	if g.Connected[ltLine] {
		lt = lt && !g.Effective(ltLine)
	}
	if g.Connected[eqLine] {
		eq = eq && g.Effective(eqLine)
	}
	return Result{true, OutputMap{"P>Q": gt, "P=Q": eq, "P<Q": lt}}
}

// compBasic compares two single bits P and Q.
//
func compBasic(g *Gate) Result {
	var p, q int
	if g.Effective(0) {
		p = 1
	}
	if g.Effective(1) {
		q = 1
	}
	return Result{true, OutputMap{"P>Q": p > q, "P=Q": p == q, "P<Q": p < q}}
}
