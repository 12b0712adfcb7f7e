// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads board configurations from YAML files.
//
// A configuration file overrides the defaults field by field:
//
//	board:
//	  inputs: 8
//	  pulses: 1
//	  leds: 12
//	  displays: 1
//	  gates:
//	    - {type: AND, count: 7}
//	    - {type: D_FF, count: 4}
//	pulse:
//	  width: 500ms
//	log:
//	  level: info
//	  format: text
//
// Gates are numbered in the order they are listed.
//
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/gates"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is a board configuration.
//
type Config struct {
	Board Board `yaml:"board"`
	Pulse Pulse `yaml:"pulse"`
	Log   Log   `yaml:"log"`
}

// Board describes the entities of a board.
//
type Board struct {
	Inputs   int         `yaml:"inputs" validate:"min=0"`
	Pulses   int         `yaml:"pulses" validate:"min=0"`
	Leds     int         `yaml:"leds" validate:"min=0"`
	Displays int         `yaml:"displays" validate:"min=0"`
	Gates    []GateGroup `yaml:"gates" validate:"dive"`
}

// GateGroup is a run of Count gates of the same type.
//
type GateGroup struct {
	Type  string `yaml:"type" validate:"required"`
	Count int    `yaml:"count" validate:"min=1"`
}

// Pulse configures pulses.
//
type Pulse struct {
	Width time.Duration `yaml:"width" validate:"gt=0"`
}

// Log configures logging.
//
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the default configuration.
//
func Default() *Config {
	l := boardsim.DefaultLayout()
	c := &Config{
		Board: Board{
			Inputs:   l.Inputs,
			Pulses:   l.Pulses,
			Leds:     l.Leds,
			Displays: l.Displays,
		},
		Pulse: Pulse{Width: boardsim.DefaultPulseWidth},
		Log:   Log{Level: "info", Format: "text"},
	}
	for _, t := range l.Gates {
		n := len(c.Board.Gates)
		if n > 0 && c.Board.Gates[n-1].Type == t.String() {
			c.Board.Gates[n-1].Count++
			continue
		}
		c.Board.Gates = append(c.Board.Gates, GateGroup{Type: t.String(), Count: 1})
	}
	return c
}

// Load reads the configuration file at path. Missing fields keep their default
// value.
//
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return c, nil
}

// Parse parses a YAML configuration.
//
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration.
//
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	for _, g := range c.Board.Gates {
		if _, err := gates.ParseType(g.Type); err != nil {
			return errors.Wrap(err, "invalid config")
		}
	}
	return nil
}

// Layout returns the board layout described by c.
//
func (c *Config) Layout() (boardsim.Layout, error) {
	l := boardsim.Layout{
		Inputs:   c.Board.Inputs,
		Pulses:   c.Board.Pulses,
		Leds:     c.Board.Leds,
		Displays: c.Board.Displays,
	}
	for _, g := range c.Board.Gates {
		t, err := gates.ParseType(g.Type)
		if err != nil {
			return boardsim.Layout{}, err
		}
		for i := 0; i < g.Count; i++ {
			l.Gates = append(l.Gates, t)
		}
	}
	return l, l.Validate()
}

// Level returns the slog level for the configured log level.
//
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Logger returns a new logger writing to w with the configured level and
// format.
//
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewBoard returns a new board built from c.
//
func (c *Config) NewBoard(opts ...boardsim.Option) (*boardsim.Board, error) {
	l, err := c.Layout()
	if err != nil {
		return nil, err
	}
	return boardsim.New(l, append([]boardsim.Option{boardsim.WithPulseWidth(c.Pulse.Width)}, opts...)...)
}
