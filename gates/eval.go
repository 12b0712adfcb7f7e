// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

// Result holds the outputs computed for a gate.
//
// Output is the primary output of the gate. Multi-output gates (adder and
// comparators) always report a true primary output, their actual results are
// in Outputs.
//
type Result struct {
	Output  bool
	Outputs OutputMap
}

func single(out bool) Result {
	return Result{out, OutputMap{pQ: out, pQNot: !out}}
}

func rail(v bool) Result {
	m := make(OutputMap, len(railOut))
	for _, o := range railOut {
		m[o] = v
	}
	return Result{v, m}
}

// Evaluate computes the outputs of g from its effective inputs. It does not
// modify g. For flip-flops, Evaluate reports the stored state; use Clock to
// apply a clock edge.
//
// Evaluate never fails: a gate of unknown type evaluates to false with no
// outputs.
//
func Evaluate(g *Gate) Result {
	switch g.Type {
	case And:
		out := true
		for i := range g.Inputs {
			out = out && g.Effective(i)
		}
		return single(out)
	case Or:
		out := false
		for i := range g.Inputs {
			out = out || g.Effective(i)
		}
		return single(out)
	case ABCD:
		return single(g.Effective(0) && g.Effective(1) || g.Effective(2) && g.Effective(3))
	case Xor:
		return single(parity(g))
	case Xnor:
		return single(!parity(g))
	case Not:
		return single(!g.Effective(0))
	case Adder4:
		return adder(g)
	case Comp4:
		return comp4(g)
	case CompBasic:
		return compBasic(g)
	case PowerHigh:
		return rail(true)
	case PowerLow:
		return rail(false)
	case JK, DFF:
		return single(g.Output)
	}
	return Result{Output: false, Outputs: OutputMap{}}
}

// parity returns true if an odd number of connected inputs are high.
// Disconnected inputs do not count.
//
func parity(g *Gate) bool {
	odd := false
	for i, in := range g.Inputs {
		if g.Connected[i] && in {
			odd = !odd
		}
	}
	return odd
}
