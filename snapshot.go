// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"encoding/json"
	"io"
	"time"

	"github.com/db47h/boardsim/gates"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SnapshotVersion is the only snapshot format version supported.
//
const SnapshotVersion = "3.0"

const defaultDescription = "Digital Board Simulator Configuration"

var validate = validator.New()

// A Snapshot is the serializable state of a board.
//
type Snapshot struct {
	Version     string    `json:"version" validate:"required"`
	ID          string    `json:"id,omitempty" validate:"omitempty,uuid"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
	State       *State    `json:"state" validate:"required"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

// State holds the mutable state of every entity and the connections.
//
type State struct {
	Inputs      []EntityState  `json:"inputs" validate:"required"`
	Pulses      []EntityState  `json:"pulses,omitempty"`
	Gates       []GateState    `json:"gates" validate:"required,dive"`
	Leds        []EntityState  `json:"leds" validate:"required"`
	Bin7Segs    []DisplayState `json:"bin7segs,omitempty" validate:"omitempty,dive"`
	Connections []Edge         `json:"connections" validate:"required"`
}

// EntityState is the state of a single-valued entity.
//
type EntityState struct {
	State bool `json:"state"`
}

// GateState is the serialized state of a gate.
//
type GateState struct {
	Type          gates.Type      `json:"type" validate:"required"`
	Inputs        []bool          `json:"inputs" validate:"required"`
	Connected     []bool          `json:"connected" validate:"required"`
	Output        bool            `json:"output"`
	InputCount    int             `json:"inputCount"`
	Outputs       gates.OutputMap `json:"outputs,omitempty"`
	PreviousClock *bool           `json:"previousClock,omitempty"`
}

// DisplayState is the serialized state of a display.
//
type DisplayState struct {
	Displays []PanelState `json:"displays" validate:"len=3,dive"`
}

// PanelState is the serialized state of a display panel.
//
type PanelState struct {
	Value    int             `json:"value" validate:"min=0,max=15"`
	Segments map[string]bool `json:"segments"`
}

// Metadata summarizes the board a snapshot was taken from.
//
type Metadata struct {
	InputCount      int `json:"inputCount"`
	PulseCount      int `json:"pulseCount"`
	GateCount       int `json:"gateCount"`
	AndGateCount    int `json:"andGateCount"`
	OrGateCount     int `json:"orGateCount"`
	LedCount        int `json:"ledCount"`
	Bin7SegCount    int `json:"bin7segCount"`
	ConnectionCount int `json:"connectionCount"`
}

// Snapshot returns the current state of the board. An empty description is
// replaced by a default one.
//
func (b *Board) Snapshot(description string) *Snapshot {
	if description == "" {
		description = defaultDescription
	}
	st := &State{
		Inputs:      make([]EntityState, len(b.inputs)),
		Pulses:      make([]EntityState, len(b.pulses)),
		Gates:       make([]GateState, len(b.gates)),
		Leds:        make([]EntityState, len(b.leds)),
		Bin7Segs:    make([]DisplayState, len(b.displays)),
		Connections: b.graph.Edges(),
	}
	for i, v := range b.inputs {
		st.Inputs[i].State = v
	}
	for i, p := range b.pulses {
		st.Pulses[i].State = p.state
	}
	for i, v := range b.leds {
		st.Leds[i].State = v
	}
	md := &Metadata{
		InputCount:      len(b.inputs),
		PulseCount:      len(b.pulses),
		GateCount:       len(b.gates),
		LedCount:        len(b.leds),
		Bin7SegCount:    len(b.displays),
		ConnectionCount: b.graph.Len(),
	}
	for i := range b.gates {
		g, _ := b.Gate(i)
		st.Gates[i] = GateState{
			Type:          g.Type,
			Inputs:        g.Inputs,
			Connected:     g.Connected,
			Output:        g.Output,
			InputCount:    len(g.Inputs),
			Outputs:       g.Outputs,
			PreviousClock: g.PreviousClock,
		}
		switch g.Type {
		case gates.And:
			md.AndGateCount++
		case gates.Or:
			md.OrGateCount++
		}
	}
	for i, d := range b.displays {
		ps := make([]PanelState, Panels)
		for j, p := range d.Panels {
			ps[j] = PanelState{Value: p.Value, Segments: p.Direct.Map()}
		}
		st.Bin7Segs[i].Displays = ps
	}
	return &Snapshot{
		Version:     SnapshotVersion,
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Description: description,
		State:       st,
		Metadata:    md,
	}
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidSnapshot, format, args...)
}

// Validate checks s against the board layout l. All returned errors wrap
// ErrInvalidSnapshot.
//
func (s *Snapshot) Validate(l *Layout) error {
	if s == nil {
		return invalid("nil snapshot")
	}
	if err := validate.Struct(s); err != nil {
		return invalid("%v", err)
	}
	if s.Version != SnapshotVersion {
		return invalid("unsupported version %q", s.Version)
	}
	st := s.State
	if len(st.Inputs) != l.Inputs {
		return invalid("got %d inputs, expected %d", len(st.Inputs), l.Inputs)
	}
	if st.Pulses != nil && len(st.Pulses) != l.Pulses {
		return invalid("got %d pulses, expected %d", len(st.Pulses), l.Pulses)
	}
	if len(st.Leds) != l.Leds {
		return invalid("got %d leds, expected %d", len(st.Leds), l.Leds)
	}
	if st.Bin7Segs != nil && len(st.Bin7Segs) != l.Displays {
		return invalid("got %d displays, expected %d", len(st.Bin7Segs), l.Displays)
	}
	if len(st.Gates) != len(l.Gates) {
		return invalid("got %d gates, expected %d", len(st.Gates), len(l.Gates))
	}
	for i, g := range st.Gates {
		if g.Type != l.Gates[i] {
			return invalid("gate %d: type %v, expected %v", i, g.Type, l.Gates[i])
		}
		n := len(gates.Inputs(g.Type))
		if len(g.Inputs) != n || len(g.Connected) != n {
			return invalid("gate %d: %d inputs, %d connected, expected %d", i, len(g.Inputs), len(g.Connected), n)
		}
	}
	for _, e := range st.Connections {
		if err := l.ValidPort(e.From); err != nil {
			return invalid("connection %v: %v", e, err)
		}
		if err := l.ValidPort(e.To); err != nil {
			return invalid("connection %v: %v", e, err)
		}
	}
	if err := NewGraph().Replace(st.Connections); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// LoadState replaces the state of the board and its connections with the
// content of s. The snapshot is fully validated before anything changes, so a
// rejected snapshot leaves the board untouched.
//
// Loaded states are taken as is and not propagated. Pending pulse ends are
// cancelled.
//
func (b *Board) LoadState(s *Snapshot) error {
	if err := s.Validate(&b.layout); err != nil {
		b.log.Warn("snapshot rejected", "error", err)
		return err
	}
	st := s.State
	if err := b.graph.Replace(st.Connections); err != nil {
		return invalid("%v", err)
	}
	for i, in := range st.Inputs {
		b.inputs[i] = in.State
	}
	for i := range b.pulses {
		if c := b.pulses[i].cancel; c != nil {
			c()
		}
		b.pulses[i] = pulse{}
		if st.Pulses != nil {
			b.pulses[i].state = st.Pulses[i].State
		}
	}
	for i, l := range st.Leds {
		b.leds[i] = l.State
	}
	for i := range b.displays {
		b.displays[i] = Display{}
		if st.Bin7Segs == nil {
			continue
		}
		for j, p := range st.Bin7Segs[i].Displays {
			b.displays[i].Panels[j] = Panel{Value: p.Value, Direct: segmentsFromMap(p.Segments)}
		}
	}
	for i, gs := range st.Gates {
		g := b.gates[i]
		copy(g.Inputs, gs.Inputs)
		copy(g.Connected, gs.Connected)
		g.Output = gs.Output
		g.PreviousClock = nil
		if gs.PreviousClock != nil {
			c := *gs.PreviousClock
			g.PreviousClock = &c
		}
		if gs.Outputs != nil {
			g.Outputs = gs.Outputs.Clone()
		} else {
			g.Outputs = gates.Evaluate(g).Outputs
		}
	}
	b.inflight = make(map[gateInput]struct{})
	b.log.Info("snapshot loaded", "id", s.ID, "connections", b.graph.Len())
	b.bus.emit(BoardLoaded{b.graph.Len()})
	return nil
}

// Encode writes s to w as indented JSON.
//
func (s *Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(s), "encode snapshot")
}

// DecodeSnapshot reads a JSON snapshot from r. It only checks that the input
// is well formed; use Validate or LoadState to check it against a board.
//
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, invalid("%v", err)
	}
	return &s, nil
}
