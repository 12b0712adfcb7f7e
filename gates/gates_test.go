// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates_test

import (
	"testing"

	"github.com/db47h/boardsim/gates"
)

// wire returns a new gate of type typ with the given inputs wired.
//
func wire(typ gates.Type, in map[string]bool) *gates.Gate {
	g := gates.New(0, typ)
	for l, v := range in {
		if !g.Set(l, v) {
			panic("no input " + l + " on " + typ.String())
		}
	}
	return g
}

// testGate wires all the given inputs and checks output q for every input
// combination. The first label is the msb of the combination index.
//
func testGate(t *testing.T, typ gates.Type, labels []string, result []bool) {
	t.Helper()
	tot := 1 << uint(len(labels))
	for i := 0; i < tot; i++ {
		in := make(map[string]bool)
		for bit := range labels {
			in[labels[len(labels)-bit-1]] = i&(1<<uint(bit)) != 0
		}
		r := gates.Evaluate(wire(typ, in))
		if r.Output != result[i] || r.Outputs["q"] != result[i] || r.Outputs["q_not"] == result[i] {
			t.Errorf("%s %v = %v, got %v", typ, in, result[i], r.Outputs)
		}
	}
}

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		typ    gates.Type
		labels []string
		result []bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{gates.Not, []string{"A"}, []bool{true, false}},
		{gates.And, []string{"A", "B"}, []bool{false, false, false, true}},
		{gates.Or, []string{"A", "B"}, []bool{false, true, true, true}},
		{gates.Xor, []string{"A", "B"}, []bool{false, true, true, false}},
		{gates.Xnor, []string{"A", "B"}, []bool{true, false, false, true}},
		{gates.And, []string{"A", "B", "C", "D"}, append(make([]bool, 15), true)},
		{gates.ABCD, []string{"A", "B", "C", "D"}, []bool{
			false, false, false, true,
			false, false, false, true,
			false, false, false, true,
			true, true, true, true}},
	}
	for _, d := range td {
		t.Run(d.typ.String(), func(t *testing.T) {
			testGate(t, d.typ, d.labels, d.result)
		})
	}
}

func Test_gate_defaults(t *testing.T) {
	td := []struct {
		name string
		typ  gates.Type
		in   map[string]bool
		out  bool
	}{
		{"AND_none", gates.And, nil, true},
		{"AND_one_low", gates.And, map[string]bool{"C": false}, false},
		{"AND_one_high", gates.And, map[string]bool{"B": true}, true},
		{"OR_none", gates.Or, nil, false},
		{"OR_one_high", gates.Or, map[string]bool{"D": true}, true},
		{"ABCD_none", gates.ABCD, nil, true},
		{"ABCD_A_low", gates.ABCD, map[string]bool{"A": false}, true},
		{"ABCD_A_C_low", gates.ABCD, map[string]bool{"A": false, "C": false}, false},
		{"XOR_none", gates.Xor, nil, false},
		{"XOR_single_high", gates.Xor, map[string]bool{"B": true}, true},
		{"XNOR_none", gates.Xnor, nil, true},
		{"XNOR_mixed", gates.Xnor, map[string]bool{"A": true, "B": false}, false},
		{"NOT_none", gates.Not, nil, true},
		{"NOT_high", gates.Not, map[string]bool{"A": true}, false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if got := gates.Evaluate(wire(d.typ, d.in)).Output; got != d.out {
				t.Errorf("%s %v = %v, got %v", d.typ, d.in, d.out, got)
			}
		})
	}
}

func Test_power_rails(t *testing.T) {
	for _, d := range []struct {
		typ gates.Type
		v   bool
	}{{gates.PowerHigh, true}, {gates.PowerLow, false}} {
		g := gates.New(3, d.typ)
		if len(g.Inputs) != 0 {
			t.Errorf("%s has %d inputs", d.typ, len(g.Inputs))
		}
		outs := gates.Outputs(d.typ)
		if len(outs) != 8 {
			t.Fatalf("%s has %d taps", d.typ, len(outs))
		}
		for _, o := range outs {
			if g.Get(o) != d.v {
				t.Errorf("%s tap %s = %v", d.typ, o, g.Get(o))
			}
		}
	}
}

func Test_unknown_type(t *testing.T) {
	g := gates.New(0, gates.Type(99))
	r := gates.Evaluate(g)
	if r.Output || len(r.Outputs) != 0 {
		t.Fatalf("unknown gate evaluated to %v %v", r.Output, r.Outputs)
	}
	if s := gates.Type(99).String(); s != "Type(99)" {
		t.Errorf("String() = %q", s)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range gates.Types() {
		got, err := gates.ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := gates.ParseType("NAND"); err == nil {
		t.Error("ParseType(NAND) did not fail")
	}
	var typ gates.Type
	if err := typ.UnmarshalText([]byte("AB_CD")); err != nil || typ != gates.ABCD {
		t.Errorf("UnmarshalText = %v, %v", typ, err)
	}
}

func TestGate_pinout(t *testing.T) {
	td := []struct {
		typ  gates.Type
		in   int
		outs []string
	}{
		{gates.And, 4, []string{"q", "q_not"}},
		{gates.Xor, 2, []string{"q", "q_not"}},
		{gates.Not, 1, []string{"q", "q_not"}},
		{gates.Adder4, 9, []string{"S0", "S1", "S2", "S3", "CO"}},
		{gates.Comp4, 11, []string{"P>Q", "P=Q", "P<Q"}},
		{gates.CompBasic, 2, []string{"P>Q", "P=Q", "P<Q"}},
		{gates.JK, 5, []string{"q", "q_not"}},
		{gates.DFF, 2, []string{"q", "q_not"}},
	}
	for _, d := range td {
		g := gates.New(1, d.typ)
		if len(g.Inputs) != d.in || len(g.Connected) != d.in {
			t.Errorf("%s: %d inputs, %d connected, expected %d", d.typ, len(g.Inputs), len(g.Connected), d.in)
		}
		for _, o := range d.outs {
			if !gates.HasOutput(d.typ, o) {
				t.Errorf("%s: missing output %s", d.typ, o)
			}
			if _, ok := g.Outputs[o]; !ok {
				t.Errorf("%s: output %s not computed", d.typ, o)
			}
		}
	}
	if gates.InputIndex(gates.JK, "K") != 3 || gates.InputIndex(gates.Comp4, "=") != 10 {
		t.Error("bad input index")
	}
	if gates.InputIndex(gates.And, "Cin") != -1 {
		t.Error("AND has no Cin")
	}
}

func TestGate_Update(t *testing.T) {
	g := gates.New(0, gates.And)
	if ch := g.Update(false); len(ch) != 0 {
		t.Fatalf("no change expected, got %v", ch)
	}
	g.Set("A", false)
	ch := g.Update(false)
	if len(ch) != 2 || ch[0] != "q" || ch[1] != "q_not" {
		t.Fatalf("changed = %v", ch)
	}
	if g.Output || !g.Get("q_not") {
		t.Fatalf("AND(A=0) = %v", g.Outputs)
	}
	g.Release("A")
	g.Update(false)
	if !g.Output {
		t.Fatal("released AND should be true")
	}
}
