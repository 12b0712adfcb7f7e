// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// PortKind is the kind of entity a port belongs to, together with its side for
// gates.
//
type PortKind int

// Port kinds.
//
const (
	KindUnknown PortKind = iota
	KindInput
	KindPulse
	KindGateInput
	KindGateOutput
	KindLed
	KindDisplay
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindInput:      "input",
	KindPulse:      "pulse",
	KindGateInput:  "gate-input",
	KindGateOutput: "gate-output",
	KindLed:        "led",
	KindDisplay:    "bin-7seg",
}

func (k PortKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "PortKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParsePortKind returns the port kind with the given name.
//
func ParsePortKind(name string) (PortKind, error) {
	for k := KindInput; int(k) < len(kindNames); k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindUnknown, errors.Wrapf(ErrUnknownPort, "port kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
//
func (k PortKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (k *PortKind) UnmarshalText(b []byte) error {
	v, err := ParsePortKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Role is the signal direction of a port: sources drive signals, sinks receive
// them.
//
type Role int

// Port roles.
//
const (
	Sink Role = iota
	Source
)

// Role returns the role of ports of kind k.
//
func (k PortKind) Role() Role {
	switch k {
	case KindInput, KindPulse, KindGateOutput:
		return Source
	}
	return Sink
}

// EntityKind identifies the kind of entity reported in events.
//
type EntityKind int

// Entity kinds.
//
const (
	EntityInput EntityKind = iota
	EntityPulse
	EntityGate
	EntityLed
	EntityDisplay
	EntityPowerRail
)

var entityNames = [...]string{
	EntityInput:     "input",
	EntityPulse:     "pulse",
	EntityGate:      "gate",
	EntityLed:       "led",
	EntityDisplay:   "display",
	EntityPowerRail: "power-rail",
}

func (e EntityKind) String() string {
	if e < 0 || int(e) >= len(entityNames) {
		return "EntityKind(" + strconv.Itoa(int(e)) + ")"
	}
	return entityNames[e]
}

// Port labels of source entities.
//
const (
	LabelQ    = "q"
	LabelQNot = "q_not"
)

// A Port is a connection point on the board: an entity kind, the entity id and
// a pin label. Ports are comparable and used as map keys.
//
type Port struct {
	Kind  PortKind
	ID    int
	Label string
}

// In returns the port of input id with the given label.
//
func In(id int, label string) Port { return Port{KindInput, id, label} }

// PulsePort returns the port of pulse id with the given label.
//
func PulsePort(id int, label string) Port { return Port{KindPulse, id, label} }

// GateIn returns the input port label of gate id.
//
func GateIn(id int, label string) Port { return Port{KindGateInput, id, label} }

// GateOut returns the output port label of gate id.
//
func GateOut(id int, label string) Port { return Port{KindGateOutput, id, label} }

// Led returns the port of led id.
//
func Led(id int) Port { return Port{KindLed, id, ""} }

// DisplayPort returns the port label of display id.
//
func DisplayPort(id int, label string) Port { return Port{KindDisplay, id, label} }

// Role returns the role of port p.
//
func (p Port) Role() Role { return p.Kind.Role() }

// String returns p in script syntax: kind[id].label, or kind[id] for an empty
// label.
//
func (p Port) String() string {
	s := p.Kind.String() + "[" + strconv.Itoa(p.ID) + "]"
	if p.Label != "" {
		s += "." + p.Label
	}
	return s
}

// jsonPort is the serialized form of a port. The label goes in outputType
// for sources and in inputType for sinks.
//
type jsonPort struct {
	Type       PortKind `json:"type"`
	ID         int      `json:"id"`
	OutputType *string  `json:"outputType,omitempty"`
	InputType  *string  `json:"inputType,omitempty"`
}

// MarshalJSON implements json.Marshaler.
//
func (p Port) MarshalJSON() ([]byte, error) {
	jp := jsonPort{Type: p.Kind, ID: p.ID}
	l := p.Label
	if p.Role() == Source {
		jp.OutputType = &l
	} else if l != "" {
		jp.InputType = &l
	}
	return json.Marshal(jp)
}

// UnmarshalJSON implements json.Unmarshaler.
//
func (p *Port) UnmarshalJSON(b []byte) error {
	var jp jsonPort
	if err := json.Unmarshal(b, &jp); err != nil {
		return err
	}
	*p = Port{Kind: jp.Type, ID: jp.ID}
	switch {
	case jp.OutputType != nil:
		p.Label = *jp.OutputType
	case jp.InputType != nil:
		p.Label = *jp.InputType
	}
	return nil
}
