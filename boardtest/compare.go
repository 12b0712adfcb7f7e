// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package boardtest provides utility functions for testing boards.
//
package boardtest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/gates"
)

// RefFn computes the expected outputs of a gate for the given input levels.
//
type RefFn func(in map[string]bool) gates.OutputMap

// maximum number of inputs tested exhaustively
const maxExhaustive = 12

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

// GateBoard returns a board holding a single gate of type typ with each of its
// inputs wired to the board input of the same index, together with a function
// that sets the board inputs.
//
func GateBoard(t testing.TB, typ gates.Type) (*boardsim.Board, func(in []bool)) {
	t.Helper()
	labels := gates.Inputs(typ)
	b, err := boardsim.New(boardsim.Layout{Inputs: len(labels), Gates: []gates.Type{typ}})
	if err != nil {
		t.Fatal(err)
	}
	for i, l := range labels {
		if _, err := b.Connect(boardsim.In(i, boardsim.LabelQ), boardsim.GateIn(0, l)); err != nil {
			t.Fatal(err)
		}
	}
	set := func(in []bool) {
		for i, v := range in {
			if err := b.SetInput(i, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return b, set
}

// CompareGate drives a gate of type typ on a live board with input
// combinations and compares its outputs with the ones computed by ref.
//
// Gates with up to 12 inputs are tested with all possible input combinations,
// other gates with all inputs LOW, all inputs HIGH and random combinations.
//
// Only combinational gates can be compared this way.
//
func CompareGate(t testing.TB, typ gates.Type, ref RefFn) {
	t.Helper()

	labels := gates.Inputs(typ)
	b, set := GateBoard(t, typ)
	inputs := make([]bool, len(labels))

	errString := func(oname string, ex, got bool) string {
		var sb strings.Builder
		for i, n := range labels {
			if sb.Len() > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(n)
			sb.WriteRune('=')
			if inputs[i] {
				sb.WriteString("true")
			} else {
				sb.WriteString("false")
			}
		}
		return "\nExpected " + sb.String() + " => " + oname + "=" + bstr(ex) + "\nGot " + bstr(got)
	}

	check := func() {
		t.Helper()
		set(inputs)
		in := make(map[string]bool, len(labels))
		for i, l := range labels {
			in[l] = inputs[i]
		}
		exp := ref(in)
		got, err := b.GateOutputs(0)
		if err != nil {
			t.Fatal(err)
		}
		for _, o := range gates.Outputs(typ) {
			if exp[o] != got[o] {
				t.Fatal(errString(o, exp[o], got[o]))
			}
		}
	}

	if len(labels) <= maxExhaustive {
		for i := 0; i < 1<<uint(len(labels)); i++ {
			for bit := range inputs {
				inputs[bit] = i&(1<<uint(bit)) != 0
			}
			check()
		}
		return
	}

	// try all 0
	check()
	// try all 1
	for i := range inputs {
		inputs[i] = true
	}
	check()
	for i := 0; i < 1<<maxExhaustive; i++ {
		for in := range inputs {
			inputs[in] = randBool()
		}
		check()
	}
}

func bstr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
