// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexical item.
//
type Type int

// Tokens
const (
	EOF Type = iota
	EOL
	Raw
	Ident
	Int
	Duration
	BracketOpen
	BracketClose
	Dot
	Label
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	EOL:          "end of line",
	Raw:          "character",
	Ident:        "identifier",
	Int:          "integer",
	Duration:     "duration",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Dot:          "'.'",
	Label:        "label",
	Equal:        "'='",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Pos is a position in the input.
//
type Pos struct {
	Line int
	Col  int
}

// Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case EOF, EOL:
		return i.Type.String()
	}
	switch v := i.Value.(type) {
	case string:
		return i.Type.String() + " " + strconv.Quote(v)
	case int:
		return i.Type.String() + " " + strconv.Itoa(v)
	case rune:
		return i.Type.String() + " " + strconv.QuoteRune(v)
	}
	return i.Type.String()
}

const eof = -1

// stateFn is a lexer state function. A state function that returns nil
// hands control back to lexInit.
//
type stateFn func(l *lexer) stateFn

type lexer struct {
	input string
	start int // start of the current item
	pos   int // current position
	width int // width of the last rune read
	line  int
	col   int // column of start
	items []Item
	state stateFn
}

// newLexer returns a new lexer for scripts.
//
func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1, state: lexInit}
}

// Lex returns the next item in the input. Once the input is consumed, Lex
// keeps returning EOF.
//
func (l *lexer) Lex() Item {
	for len(l.items) == 0 {
		s := l.state(l)
		if s == nil {
			s = lexInit
		}
		l.state = s
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
	l.width = 0
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// skip discards the pending input.
//
func (l *lexer) skip() {
	l.col += utf8.RuneCountInString(l.input[l.start:l.pos])
	l.start = l.pos
}

func (l *lexer) text() string { return l.input[l.start:l.pos] }

func (l *lexer) emit(t Type, v interface{}) {
	l.items = append(l.items, Item{t, Pos{l.line, l.col}, v})
	l.skip()
}

func (l *lexer) acceptWhile(f func(r rune) bool) {
	r := l.next()
	for r != eof && f(r) {
		r = l.next()
	}
	l.backup()
}

func isBlank(r rune) bool { return r != '\n' && unicode.IsSpace(r) }

func lexInit(l *lexer) stateFn {
	r := l.next()
	switch {
	case r == eof:
		return lexEOF
	case r == '\n':
		l.emit(EOL, "\n")
		l.line++
		l.col = 1
	case isBlank(r):
		l.acceptWhile(isBlank)
		l.skip()
	case r == '#':
		l.acceptWhile(func(r rune) bool { return r != '\n' })
		l.skip()
	case unicode.IsLetter(r):
		return lexIdent
	case '0' <= r && r <= '9':
		return lexNumber
	case r == '[':
		l.emit(BracketOpen, "[")
	case r == ']':
		l.emit(BracketClose, "]")
	case r == '.':
		l.emit(Dot, ".")
		return lexLabel
	case r == '=':
		l.emit(Equal, "=")
	default:
		l.emit(Raw, r)
	}
	return nil
}

// lexIdent reads identifiers. Identifiers may contain dashes so that port
// kinds like gate-input or bin-7seg are single identifiers.
//
func lexIdent(l *lexer) stateFn {
	l.acceptWhile(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
	})
	l.emit(Ident, l.text())
	return nil
}

// lexNumber reads integers and durations (an integer or decimal number
// immediately followed by a unit, like 500ms or 1.5s).
//
func lexNumber(l *lexer) stateFn {
	l.acceptWhile(func(r rune) bool { return '0' <= r && r <= '9' })
	if r := l.peek(); r == '.' || unicode.IsLetter(r) {
		l.acceptWhile(func(r rune) bool { return r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) })
		l.emit(Duration, l.text())
		return nil
	}
	v, err := strconv.Atoi(l.text())
	if err != nil {
		l.emit(Raw, l.text())
		return nil
	}
	l.emit(Int, v)
	return nil
}

// lexLabel reads a port label: everything up to the next blank.
//
func lexLabel(l *lexer) stateFn {
	l.acceptWhile(func(r rune) bool { return !unicode.IsSpace(r) && r != '#' })
	if l.pos > l.start {
		l.emit(Label, l.text())
	}
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lexer) stateFn {
	l.emit(EOF, "end of input")
	return lexEOF
}

// Tokens returns all the items in input, up to and including EOF.
//
func Tokens(input string) []Item {
	l := newLexer(input)
	var items []Item
	for {
		i := l.Lex()
		items = append(items, i)
		if i.Type == EOF {
			return items
		}
	}
}

// lineOf returns line n of input, without surrounding blanks.
//
func lineOf(input string, n int) string {
	lines := strings.Split(input, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[n-1])
}
