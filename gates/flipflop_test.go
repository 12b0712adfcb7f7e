// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates_test

import (
	"testing"

	"github.com/db47h/boardsim/gates"
)

// edge sends a full clock cycle (LOW then HIGH) to flip-flop g.
//
func edge(g *gates.Gate, tied bool) {
	g.Set("C", false)
	g.Update(tied)
	g.Set("C", true)
	g.Update(tied)
}

func TestJK_modes(t *testing.T) {
	td := []struct {
		name  string
		wired []string
		tied  bool
		mode  gates.Mode
	}{
		{"none", nil, false, gates.ModeNone},
		{"none_tied", nil, true, gates.ModeNone},
		{"jk", []string{"J"}, false, gates.ModeJK},
		{"scr", []string{"R"}, false, gates.ModeSCR},
		{"mixed", []string{"S", "K"}, false, gates.ModeMixed},
		{"t", []string{"J"}, true, gates.ModeT},
		{"t_over_mixed", []string{"S", "J"}, true, gates.ModeT},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			g := gates.New(0, gates.JK)
			for _, l := range d.wired {
				g.Set(l, false)
			}
			if m := gates.JKMode(g, d.tied); m != d.mode {
				t.Errorf("mode = %v, expected %v", m, d.mode)
			}
		})
	}
}

func TestJK_jk(t *testing.T) {
	g := gates.New(0, gates.JK)
	g.Set("J", true)
	g.Set("K", false)
	edge(g, false)
	if !g.Get("q") || g.Get("q_not") {
		t.Fatalf("J=1 K=0: %v", g.Outputs)
	}
	g.Set("K", true)
	edge(g, false)
	if g.Get("q") || !g.Get("q_not") {
		t.Fatalf("J=1 K=1 should toggle: %v", g.Outputs)
	}
	g.Set("J", false)
	edge(g, false)
	if g.Get("q") {
		t.Fatal("J=0 K=1 should reset")
	}
	g.Set("K", false)
	edge(g, false)
	if g.Get("q") {
		t.Fatal("J=0 K=0 should hold")
	}
}

func TestJK_t(t *testing.T) {
	g := gates.New(0, gates.JK)
	g.Set("J", true)
	g.Set("K", true)
	edge(g, true)
	if !g.Output {
		t.Fatal("T=1 should toggle to true")
	}
	edge(g, true)
	if g.Output {
		t.Fatal("T=1 should toggle to false")
	}
	g.Set("J", false)
	g.Set("K", false)
	edge(g, true)
	if g.Output {
		t.Fatal("T=0 should hold")
	}
}

func TestJK_scr(t *testing.T) {
	td := []struct {
		name string
		s, r bool
		from bool
		exp  bool
	}{
		{"set", true, false, false, true},
		{"reset", false, true, true, false},
		{"invalid_holds_low", true, true, false, false},
		{"invalid_holds_high", true, true, true, true},
		{"hold", false, false, true, true},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			g := gates.New(0, gates.JK)
			g.Output = d.from
			g.Set("S", d.s)
			g.Set("R", d.r)
			// J wired too: MIXED resolves as SCR and ignores J.
			g.Set("J", true)
			edge(g, false)
			if g.Output != d.exp {
				t.Errorf("S=%v R=%v from %v: got %v", d.s, d.r, d.from, g.Output)
			}
		})
	}
}

func TestJK_none_holds(t *testing.T) {
	g := gates.New(0, gates.JK)
	g.Output = true
	edge(g, false)
	if !g.Output {
		t.Fatal("NONE mode should hold")
	}
}

func TestDFF(t *testing.T) {
	g := gates.New(0, gates.DFF)
	g.Set("D", true)
	g.Update(false)
	if g.Output {
		t.Fatal("no edge yet")
	}
	edge(g, false)
	if !g.Output {
		t.Fatal("D=1 at edge should set Q")
	}
	// D changes while C stays HIGH: no edge.
	g.Set("D", false)
	g.Update(false)
	g.Update(false)
	if !g.Output {
		t.Fatal("D change after the edge should not change Q")
	}
	edge(g, false)
	if g.Output {
		t.Fatal("D=0 at next edge should clear Q")
	}
}

func TestDFF_first_edge(t *testing.T) {
	// a clock HIGH on the very first evaluation is a rising edge.
	g := gates.New(0, gates.DFF)
	g.Set("D", true)
	g.Set("C", true)
	g.Update(false)
	if !g.Output || g.PreviousClock == nil || !*g.PreviousClock {
		t.Fatalf("Q = %v, prev = %v", g.Output, g.PreviousClock)
	}
}

func TestClock_combinational(t *testing.T) {
	g := gates.New(0, gates.And)
	gates.Clock(g, false)
	if g.PreviousClock != nil {
		t.Fatal("Clock should not touch combinational gates")
	}
}
