// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"strconv"
	"time"

	"github.com/db47h/boardsim"
	"github.com/pkg/errors"
)

// ErrExpect is returned (wrapped in an *Error) when an expect statement fails.
//
var ErrExpect = errors.New("unexpected signal level")

// Error is a script execution error.
//
type Error struct {
	Line int
	Text string // source line, if known
	Err  error
}

func (e *Error) Error() string {
	s := "line " + strconv.Itoa(e.Line) + ": "
	if e.Text != "" {
		s += e.Text + ": "
	}
	return s + e.Err.Error()
}

// Cause returns the underlying error.
//
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
//
func (e *Error) Unwrap() error { return e.Err }

// advancer is implemented by clocks that can be moved forward manually, like
// boardsim.VirtualClock.
//
type advancer interface {
	Advance(d time.Duration)
}

// Exec runs stmts against board b and stops at the first error.
//
// Wait statements require the board clock to be a virtual clock; with any
// other clock, Exec sleeps for the given duration.
//
func Exec(b *boardsim.Board, stmts []Stmt) error {
	for _, s := range stmts {
		if err := exec(b, s); err != nil {
			return &Error{Line: s.StmtLine(), Err: err}
		}
	}
	return nil
}

func exec(b *boardsim.Board, s Stmt) error {
	switch s := s.(type) {
	case Connect:
		_, err := b.Connect(s.From, s.To)
		return err
	case Disconnect:
		return b.Disconnect(s.From, s.To)
	case Toggle:
		return b.ToggleInput(s.ID)
	case Pulse:
		return b.TriggerPulse(s.ID)
	case Wait:
		if a, ok := b.Clock().(advancer); ok {
			a.Advance(s.D)
		} else {
			time.Sleep(s.D)
		}
		return nil
	case Reset:
		b.Reset()
		return nil
	case Expect:
		v, err := b.PortState(s.Port)
		if err != nil {
			return err
		}
		if v != s.Value {
			return errors.Wrapf(ErrExpect, "%v is %s", s.Port, level(v))
		}
		return nil
	}
	return errors.Errorf("unsupported statement %T", s)
}

func level(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Run parses and runs script input against board b. Execution errors are
// returned as an *Error that includes the offending source line.
//
func Run(b *boardsim.Board, input string) error {
	stmts, err := Parse(input)
	if err != nil {
		return errors.Wrap(err, "parse error")
	}
	if err = Exec(b, stmts); err != nil {
		if e, ok := err.(*Error); ok {
			e.Text = lineOf(input, e.Line)
		}
		return err
	}
	return nil
}
