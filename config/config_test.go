// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/config"
	"github.com/db47h/boardsim/gates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	l, err := c.Layout()
	require.NoError(t, err)
	def := boardsim.DefaultLayout()
	assert.True(t, def.Equal(&l))
	assert.Len(t, c.Board.Gates, 13)
	assert.Equal(t, config.GateGroup{Type: "AND", Count: 7}, c.Board.Gates[0])
	assert.Equal(t, slog.LevelInfo, c.Level())
}

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(`
board:
  inputs: 2
  leds: 3
  gates:
    - {type: XOR, count: 1}
    - {type: JK_FF, count: 2}
pulse:
  width: 250ms
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	l, err := c.Layout()
	require.NoError(t, err)
	assert.Equal(t, 2, l.Inputs)
	assert.Equal(t, 1, l.Pulses, "unset fields keep their default")
	assert.Equal(t, 3, l.Leds)
	assert.Equal(t, []gates.Type{gates.Xor, gates.JK, gates.JK}, l.Gates)
	assert.Equal(t, slog.LevelDebug, c.Level())

	b, err := c.NewBoard()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, b.PulseWidth())

	var buf bytes.Buffer
	c.Logger(&buf).Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestParse_empty(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		name string
		in   string
	}{
		{"syntax", "board: [\n"},
		{"unknown_field", "board:\n  wires: 3\n"},
		{"negative", "board:\n  leds: -1\n"},
		{"gate_type", "board:\n  gates:\n    - {type: NAND, count: 1}\n"},
		{"gate_count", "board:\n  gates:\n    - {type: AND, count: 0}\n"},
		{"width", "pulse:\n  width: 0s\n"},
		{"level", "log:\n  level: verbose\n"},
		{"format", "log:\n  format: xml\n"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.Parse([]byte(d.in))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  displays: 2\n"), 0o600))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Board.Displays)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
