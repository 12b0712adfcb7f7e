// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardtest_test

import (
	"strconv"
	"testing"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/boardtest"
	"github.com/db47h/boardsim/gates"
)

func single(out bool) gates.OutputMap {
	return gates.OutputMap{"q": out, "q_not": !out}
}

func word(in map[string]bool, prefix string) int {
	var v int
	for bit := 0; bit < 4; bit++ {
		if in[prefix+strconv.Itoa(bit)] {
			v |= 1 << uint(bit)
		}
	}
	return v
}

func TestCompareGate(t *testing.T) {
	td := []struct {
		typ gates.Type
		ref boardtest.RefFn
	}{
		{gates.And, func(in map[string]bool) gates.OutputMap {
			return single(in["A"] && in["B"] && in["C"] && in["D"])
		}},
		{gates.Or, func(in map[string]bool) gates.OutputMap {
			return single(in["A"] || in["B"] || in["C"] || in["D"])
		}},
		{gates.ABCD, func(in map[string]bool) gates.OutputMap {
			return single(in["A"] && in["B"] || in["C"] && in["D"])
		}},
		{gates.Xor, func(in map[string]bool) gates.OutputMap { return single(in["A"] != in["B"]) }},
		{gates.Xnor, func(in map[string]bool) gates.OutputMap { return single(in["A"] == in["B"]) }},
		{gates.Not, func(in map[string]bool) gates.OutputMap { return single(!in["A"]) }},
		{gates.Adder4, func(in map[string]bool) gates.OutputMap {
			s := word(in, "A") + word(in, "B")
			if in["Cin"] {
				s++
			}
			return gates.OutputMap{"S0": s&1 != 0, "S1": s&2 != 0, "S2": s&4 != 0, "S3": s&8 != 0, "CO": s > 15}
		}},
		{gates.Comp4, func(in map[string]bool) gates.OutputMap {
			p, q := word(in, "A"), word(in, "B")
			return gates.OutputMap{
				"P>Q": p > q && !in[">"],
				"P<Q": p < q && !in["<"],
				"P=Q": p == q && in["="],
			}
		}},
		{gates.CompBasic, func(in map[string]bool) gates.OutputMap {
			p, q := in["P"], in["Q"]
			return gates.OutputMap{"P>Q": p && !q, "P=Q": p == q, "P<Q": !p && q}
		}},
	}
	for _, d := range td {
		t.Run(d.typ.String(), func(t *testing.T) {
			boardtest.CompareGate(t, d.typ, d.ref)
		})
	}
}

func TestRecorder(t *testing.T) {
	b, set := boardtest.GateBoard(t, gates.Not)
	r := boardtest.Record(b)
	set([]bool{true})
	set([]bool{true})
	if sc := r.States(boardsim.EntityGate); len(sc) != 2 || sc[0].Field != "q" || sc[0].Value {
		t.Fatalf("gate events: %v", sc)
	}
	if sc := r.States(boardsim.EntityInput); len(sc) != 1 || !sc[0].Value {
		t.Fatalf("input events: %v", sc)
	}
	if ss := r.Settled(); len(ss) != 2 {
		t.Fatalf("settled events: %v", ss)
	}
	r.Clear()
	r.Stop()
	set([]bool{false})
	if len(r.Events()) != 0 {
		t.Fatalf("recorded after Stop: %v", r.Events())
	}
}
