// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

// LinkKind is the kind of an edge, derived from the roles of its endpoints.
//
type LinkKind int

// Link kinds.
//
//	Standard:     source - sink; the value flows from the source.
//	SourceBridge: source - source; both ends share the value of the last one
//	              to change.
//	SinkBridge:   sink - sink (including two inputs of the same gate); the
//	              value of a driven end is copied to the other.
//
const (
	Standard LinkKind = iota
	SourceBridge
	SinkBridge
)

func (k LinkKind) String() string {
	switch k {
	case SourceBridge:
		return "source-bridge"
	case SinkBridge:
		return "sink-bridge"
	}
	return "standard"
}

// Classify returns the kind of an edge between a and b.
//
func Classify(a, b Port) LinkKind {
	ra, rb := a.Role(), b.Role()
	switch {
	case ra != rb:
		return Standard
	case ra == Source:
		return SourceBridge
	}
	return SinkBridge
}

// Bridge returns true if e is a bridge.
//
func (e Edge) Bridge() bool { return Classify(e.From, e.To) != Standard }
