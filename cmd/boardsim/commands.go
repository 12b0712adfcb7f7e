// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/boardsim"
	"github.com/db47h/boardsim/config"
	"github.com/db47h/boardsim/gates"
	"github.com/db47h/boardsim/internal/netlist"
	"github.com/db47h/boardsim/metrics"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runOptions struct {
	config  string
	load    string
	save    string
	metrics bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boardsim",
		Short:         "Digital logic board simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newShowCmd(), newExportURLCmd(), newImportURLCmd(), newGatesCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run a board script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], &o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "board configuration file")
	f.StringVarP(&o.load, "load", "l", "", "load a snapshot before running the script")
	f.StringVarP(&o.save, "save", "s", "", "save a snapshot of the board after running the script")
	f.BoolVarP(&o.metrics, "metrics", "m", false, "print metrics after running the script")
	return cmd
}

func runScript(stdout, stderr io.Writer, path string, o *runOptions) error {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return err
		}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read script")
	}
	log := cfg.Logger(stderr)
	b, err := cfg.NewBoard(boardsim.WithLogger(log))
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()
	defer reg.Observe(b)()

	if o.load != "" {
		s, err := readSnapshot(o.load)
		if err != nil {
			return err
		}
		if err = b.LoadState(s); err != nil {
			return err
		}
	}
	if err = netlist.Run(b, string(src)); err != nil {
		return errors.Wrap(err, path)
	}
	log.Info("script done", "script", path, "edges", len(b.Edges()))

	if o.save != "" {
		if err = writeSnapshot(o.save, b.Snapshot("")); err != nil {
			return err
		}
	}
	if o.metrics {
		return reg.WriteText(stdout)
	}
	return nil
}

func readSnapshot(path string) (*boardsim.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot")
	}
	defer f.Close()
	s, err := boardsim.DecodeSnapshot(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

func writeSnapshot(path string, s *boardsim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create snapshot")
	}
	if err = s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show SNAPSHOT",
		Short: "Print a summary of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			show(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func levels(es []boardsim.EntityState) string {
	var sb strings.Builder
	for _, e := range es {
		if e.State {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func show(w io.Writer, s *boardsim.Snapshot) {
	fmt.Fprintf(w, "version:     %s\n", s.Version)
	if s.ID != "" {
		fmt.Fprintf(w, "id:          %s\n", s.ID)
	}
	if !s.Timestamp.IsZero() {
		fmt.Fprintf(w, "timestamp:   %s\n", s.Timestamp.Format("2006-01-02 15:04:05Z07:00"))
	}
	if s.Description != "" {
		fmt.Fprintf(w, "description: %s\n", s.Description)
	}
	st := s.State
	fmt.Fprintf(w, "inputs:      %s\n", levels(st.Inputs))
	fmt.Fprintf(w, "pulses:      %s\n", levels(st.Pulses))
	fmt.Fprintf(w, "leds:        %s\n", levels(st.Leds))
	for i, d := range st.Bin7Segs {
		var vs []string
		for _, p := range d.Displays {
			vs = append(vs, fmt.Sprintf("%X", p.Value))
		}
		fmt.Fprintf(w, "display %d:   %s\n", i, strings.Join(vs, " "))
	}
	fmt.Fprintf(w, "gates:       %d\n", len(st.Gates))
	fmt.Fprintf(w, "connections: %d\n", len(st.Connections))
	for _, e := range st.Connections {
		fmt.Fprintf(w, "  %v\n", e)
	}
}

func newExportURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-url SNAPSHOT",
		Short: "Encode a snapshot as a URL-safe token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			tok, err := s.EncodeURL()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func newImportURLCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import-url TOKEN",
		Short: "Decode a URL token into a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := boardsim.DecodeURL(args[0])
			if err != nil {
				return err
			}
			if out != "" {
				return writeSnapshot(out, s)
			}
			return s.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the snapshot to this file")
	return cmd
}

func newGatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gates",
		Short: "List gate types and their pins",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, t := range gates.Types() {
				fmt.Fprintf(w, "%-11s in: %s  out: %s\n", t,
					strings.Join(gates.Inputs(t), " "), strings.Join(gates.Outputs(t), " "))
			}
		},
	}
}
