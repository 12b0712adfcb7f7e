// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

const halfAdder = `
connect input[0].q gate-input[15].A
connect input[1].q gate-input[15].B
connect input[0].q gate-input[0].A
connect input[1].q gate-input[0].B
connect gate-output[15].q led[0]
connect gate-output[0].q led[1]
toggle input[0]
expect led[0] = 1
toggle input[1]
expect led[0] = 0
expect led[1] = 1
`

func TestRun_saveShowURL(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "adder.txt", halfAdder)
	snap := filepath.Join(dir, "adder.json")

	out, err := execute(t, "run", "--save", snap, "--metrics", script)
	require.NoError(t, err)
	assert.Contains(t, out, "boardsim_edges 6")
	assert.Contains(t, out, "boardsim_edges_added_total 6")

	out, err = execute(t, "show", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "inputs:      11000000")
	assert.Contains(t, out, "leds:        010000000000")
	assert.Contains(t, out, "connections: 6")
	assert.Contains(t, out, "input[0].q -> gate-input[15].A")

	tok, err := execute(t, "export-url", snap)
	require.NoError(t, err)
	tok = strings.TrimSpace(tok)

	restored := filepath.Join(dir, "restored.json")
	_, err = execute(t, "import-url", "--out", restored, tok)
	require.NoError(t, err)

	// the restored snapshot loads and keeps working
	check := writeFile(t, dir, "check.txt", "expect led[1] = 1\ntoggle input[0]\nexpect led[0] = 1\nexpect led[1] = 0\n")
	_, err = execute(t, "run", "--load", restored, check)
	require.NoError(t, err)

	out, err = execute(t, "import-url", tok)
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "3.0"`)
}

func TestRun_unwiredSnapshot(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "toggle.txt", "toggle input[3]\n")
	snap := filepath.Join(dir, "unwired.json")
	_, err := execute(t, "run", "--save", snap, script)
	require.NoError(t, err)

	check := writeFile(t, dir, "check.txt", "expect input[3].q = 1\nexpect led[0] = 0\n")
	_, err = execute(t, "run", "--load", snap, check)
	require.NoError(t, err)
}

func TestRun_config(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "board.yaml", "board:\n  inputs: 1\n  leds: 1\n  gates:\n    - {type: NOT, count: 1}\nlog:\n  level: error\n")
	script := writeFile(t, dir, "not.txt", `
connect input[0].q gate-input[0].A
connect gate-output[0].q led[0]
expect led[0] = 1
`)
	_, err := execute(t, "run", "-c", cfg, script)
	require.NoError(t, err)

	bad := writeFile(t, dir, "bad.txt", "connect input[1].q led[0]\n")
	_, err = execute(t, "run", "-c", cfg, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestRun_errors(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "fail.txt", "expect led[0] = 1\n")
	_, err := execute(t, "run", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "led[0] is 0")

	_, err = execute(t, "run", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	_, err = execute(t, "show", script)
	assert.Error(t, err)

	_, err = execute(t, "import-url", "%%%")
	assert.Error(t, err)
}

func TestGates(t *testing.T) {
	out, err := execute(t, "gates")
	require.NoError(t, err)
	assert.Contains(t, out, "ADDER_4BIT  in: A0 A1 A2 A3 B0 B1 B2 B3 Cin  out: S0 S1 S2 S3 CO")
	assert.Contains(t, out, "D_FF")
}
