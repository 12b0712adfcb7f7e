// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package boardsim simulates a digital logic board: toggle inputs and a
monostable pulse feed gates, flip-flops, leds and a seven segment display
through user drawn connections.

A board is created from a Layout that fixes the entities it holds:

	b, err := boardsim.New(boardsim.DefaultLayout())
	if err != nil {
		// handle error
	}
	// input 0 -> AND gate 0 input A, AND gate 0 output -> led 0
	b.Connect(boardsim.In(0, boardsim.LabelQ), boardsim.GateIn(0, "A"))
	b.Connect(boardsim.GateOut(0, boardsim.LabelQ), boardsim.Led(0))
	b.ToggleInput(0)

Every stimulus is propagated depth first through the connection graph before
the call returns. Connections are either standard (a source driving a sink) or
bridges joining two sources or two sinks; bridges carry the same level to both
ends. Propagation always terminates, whatever the wiring: each port is expanded
at most once per signal level and per stimulus.

Gate evaluation rules live in the gates sub-package. Events describing every
state change can be received with Subscribe, and the board state can be saved
and restored with Snapshot and LoadState.

The board is single threaded: the only deferred work is the end of a pulse,
which runs when the board's Clock is advanced.
*/
package boardsim
