// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist parses and runs board scripts.
//
// A script is a sequence of statements, one per line:
//
//	connect PORT PORT      # add a connection
//	disconnect PORT PORT   # remove a connection
//	toggle input[N]        # flip an input
//	pulse pulse[N]         # trigger a pulse
//	wait DURATION          # advance the board clock, e.g. wait 500ms
//	reset                  # reset the board
//	expect PORT = 0|1      # check the level at a port
//
// Ports are written kind[id] or kind[id].label, with kind one of input, pulse,
// gate-input, gate-output, led or bin-7seg. Labels extend up to the next blank,
// so the '=' of an expect statement must be preceded by a blank. Everything
// after a '#' is a comment.
//
package netlist

import (
	"time"

	"github.com/db47h/boardsim"
	"github.com/pkg/errors"
)

// Stmt is a script statement.
//
type Stmt interface {
	StmtLine() int
}

// Line is the line number of a statement.
//
type Line int

// StmtLine returns l.
//
func (l Line) StmtLine() int { return int(l) }

// Connect is a connect statement.
//
type Connect struct {
	Line
	From, To boardsim.Port
}

// Disconnect is a disconnect statement.
//
type Disconnect struct {
	Line
	From, To boardsim.Port
}

// Toggle is a toggle statement.
//
type Toggle struct {
	Line
	ID int
}

// Pulse is a pulse statement.
//
type Pulse struct {
	Line
	ID int
}

// Wait is a wait statement.
//
type Wait struct {
	Line
	D time.Duration
}

// Reset is a reset statement.
//
type Reset struct {
	Line
}

// Expect is an expect statement.
//
type Expect struct {
	Line
	Port  boardsim.Port
	Value bool
}

// Parser is a simplistic script parser.
//
type Parser struct {
	Input string
	l     *lexer
	i     Item
}

// Parse parses a whole script.
//
func Parse(input string) ([]Stmt, error) {
	p := &Parser{Input: input}
	var stmts []Stmt
	for {
		s, err := p.Next()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return stmts, nil
		}
		stmts = append(stmts, s)
	}
}

// Next returns the next statement in the input, or nil at the end of input.
//
func (p *Parser) Next() (Stmt, error) {
	if p.l == nil {
		p.l = newLexer(p.Input)
	}
	p.i = p.l.Lex()
	for p.i.Type == EOL {
		p.i = p.l.Lex()
	}
	if p.i.Type == EOF {
		return nil, nil
	}
	if p.i.Type != Ident {
		return nil, p.errorf("expected statement, got %v", p.i)
	}
	line := Line(p.i.Pos.Line)
	var (
		s   Stmt
		err error
	)
	switch kw := p.i.Value.(string); kw {
	case "connect", "disconnect":
		var from, to boardsim.Port
		p.i = p.l.Lex()
		if from, err = p.port(); err != nil {
			return nil, err
		}
		if to, err = p.port(); err != nil {
			return nil, err
		}
		if kw == "connect" {
			s = Connect{line, from, to}
		} else {
			s = Disconnect{line, from, to}
		}
	case "toggle", "pulse":
		kind := boardsim.KindInput
		if kw == "pulse" {
			kind = boardsim.KindPulse
		}
		p.i = p.l.Lex()
		pos := p.i.Pos
		port, err := p.port()
		if err != nil {
			return nil, err
		}
		if port.Kind != kind || port.Label != "" {
			return nil, parseError(pos, "expected "+kind.String()+"[N], got "+port.String())
		}
		if kw == "toggle" {
			s = Toggle{line, port.ID}
		} else {
			s = Pulse{line, port.ID}
		}
	case "wait":
		p.i = p.l.Lex()
		if p.i.Type != Duration {
			return nil, p.errorf("expected duration, got %v", p.i)
		}
		d, err := time.ParseDuration(p.i.Value.(string))
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		s = Wait{line, d}
		p.i = p.l.Lex()
	case "reset":
		s = Reset{line}
		p.i = p.l.Lex()
	case "expect":
		p.i = p.l.Lex()
		port, err := p.port()
		if err != nil {
			return nil, err
		}
		if p.i.Type != Equal {
			return nil, p.errorf("expected '=', got %v", p.i)
		}
		p.i = p.l.Lex()
		if p.i.Type != Int || p.i.Value.(int) > 1 {
			return nil, p.errorf("expected 0 or 1, got %v", p.i)
		}
		s = Expect{line, port, p.i.Value.(int) == 1}
		p.i = p.l.Lex()
	default:
		return nil, p.errorf("unknown statement %q", kw)
	}
	if p.i.Type != EOL && p.i.Type != EOF {
		return nil, p.errorf("expected end of line, got %v", p.i)
	}
	return s, nil
}

// port parses a port starting at the current item and leaves the next item in
// p.i.
//
func (p *Parser) port() (boardsim.Port, error) {
	var port boardsim.Port
	if p.i.Type != Ident {
		return port, p.errorf("expected port, got %v", p.i)
	}
	kind, err := boardsim.ParsePortKind(p.i.Value.(string))
	if err != nil {
		return port, p.errorf("unknown port kind %q", p.i.Value)
	}
	port.Kind = kind
	if p.i = p.l.Lex(); p.i.Type != BracketOpen {
		return port, p.errorf("expected '[' after port kind, got %v", p.i)
	}
	if p.i = p.l.Lex(); p.i.Type != Int {
		return port, p.errorf("integer value expected after '['")
	}
	port.ID = p.i.Value.(int)
	if p.i = p.l.Lex(); p.i.Type != BracketClose {
		return port, p.errorf("closing ']' expected after port id")
	}
	p.i = p.l.Lex()
	if p.i.Type == Dot {
		if p.i = p.l.Lex(); p.i.Type != Label {
			return port, p.errorf("expected label after '.'")
		}
		port.Label = p.i.Value.(string)
		p.i = p.l.Lex()
	}
	return port, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return parseError(p.i.Pos, errors.Errorf(format, args...).Error())
}

func parseError(pos Pos, msg string) error {
	return errors.Errorf("line %d col %d: %s", pos.Line, pos.Col, msg)
}
