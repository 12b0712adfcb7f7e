// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim_test

import (
	"fmt"

	bs "github.com/db47h/boardsim"
)

// A half adder built from the XOR gate (id 15) and the first AND gate (id 0)
// of the default layout.
//
func ExampleBoard() {
	b, err := bs.New(bs.DefaultLayout())
	if err != nil {
		panic(err)
	}
	b.Subscribe(func(e bs.Event) {
		if s, ok := e.(bs.StateChanged); ok && s.Entity == bs.EntityLed {
			fmt.Printf("led %d: %v\n", s.ID, s.Value)
		}
	})

	x, y := bs.In(0, bs.LabelQ), bs.In(1, bs.LabelQ)
	for _, c := range [][2]bs.Port{
		{x, bs.GateIn(15, "A")},
		{y, bs.GateIn(15, "B")},
		{x, bs.GateIn(0, "A")},
		{y, bs.GateIn(0, "B")},
		{bs.GateOut(15, bs.LabelQ), bs.Led(0)}, // sum
		{bs.GateOut(0, bs.LabelQ), bs.Led(1)},  // carry
	} {
		if _, err := b.Connect(c[0], c[1]); err != nil {
			panic(err)
		}
	}

	b.ToggleInput(0)
	b.ToggleInput(1)

	// Output:
	// led 0: true
	// led 0: false
	// led 1: true
}
