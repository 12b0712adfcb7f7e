// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "strings"

// Display panels. The first two are BCD digits, the last one is driven
// segment by segment.
//
const (
	PanelBCD1 = iota
	PanelBCD2
	PanelDirect
	Panels
)

// SegmentNames lists the seven segments in bit order.
//
var SegmentNames = [7]string{"a", "b", "c", "d", "e", "f", "g"}

// Segments is the lit state of segments a through g.
//
type Segments [7]bool

// String returns the lit segment names, or "-" if none is lit.
//
func (s Segments) String() string {
	var b strings.Builder
	for i, on := range s {
		if on {
			b.WriteString(SegmentNames[i])
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// Map returns s as a map of segment name to state.
//
func (s Segments) Map() map[string]bool {
	m := make(map[string]bool, len(s))
	for i, on := range s {
		m[SegmentNames[i]] = on
	}
	return m
}

func segmentsFromMap(m map[string]bool) Segments {
	var s Segments
	for i, n := range SegmentNames {
		s[i] = m[n]
	}
	return s
}

// hex seven segment patterns
var hexPatterns = [16]Segments{
	{true, true, true, true, true, true, false},
	{false, true, true, false, false, false, false},
	{true, true, false, true, true, false, true},
	{true, true, true, true, false, false, true},
	{false, true, true, false, false, true, true},
	{true, false, true, true, false, true, true},
	{true, false, true, true, true, true, true},
	{true, true, true, false, false, false, false},
	{true, true, true, true, true, true, true},
	{true, true, true, true, false, true, true},
	{true, true, true, false, true, true, true},
	{false, false, true, true, true, true, true},
	{true, false, false, true, true, true, false},
	{false, true, true, true, true, false, true},
	{true, false, false, true, true, true, true},
	{true, false, false, false, true, true, true},
}

// HexSegments returns the segments lit to render v as a hexadecimal digit.
// Values out of the 0-15 range render as 0.
//
func HexSegments(v int) Segments {
	if v < 0 || v >= len(hexPatterns) {
		v = 0
	}
	return hexPatterns[v]
}

// Panel is one digit of a display. Value is used by BCD panels, Direct by the
// direct panel.
//
type Panel struct {
	Value  int
	Direct Segments
}

// Display is the state of a seven segment display entity.
//
type Display struct {
	Panels [Panels]Panel
}

// Segments returns the segments lit on the given panel.
//
func (d *Display) Segments(panel int) Segments {
	switch panel {
	case PanelBCD1, PanelBCD2:
		return HexSegments(d.Panels[panel].Value)
	case PanelDirect:
		return d.Panels[PanelDirect].Direct
	}
	return Segments{}
}

// set applies level v to the display pin label and reports the affected panel
// and whether its state changed.
//
func (d *Display) set(label string, v bool) (panel int, changed bool) {
	panel, bit, ok := displayPin(label)
	if !ok {
		return -1, false
	}
	p := &d.Panels[panel]
	if panel == PanelDirect {
		changed = p.Direct[bit] != v
		p.Direct[bit] = v
		return panel, changed
	}
	old := p.Value
	if v {
		p.Value |= 1 << uint(bit)
	} else {
		p.Value &^= 1 << uint(bit)
	}
	return panel, p.Value != old
}

// get returns the level last applied to the display pin label.
//
func (d *Display) get(label string) bool {
	panel, bit, ok := displayPin(label)
	if !ok {
		return false
	}
	if panel == PanelDirect {
		return d.Panels[panel].Direct[bit]
	}
	return d.Panels[panel].Value&(1<<uint(bit)) != 0
}

// displayPin decodes a display pin label: bcd1_W and bcd2_W with W one of 1,
// 2, 4, 8 address bit log2(W) of panel 0 and 1; segment_X addresses segment X
// of the direct panel.
//
func displayPin(label string) (panel, bit int, ok bool) {
	switch {
	case strings.HasPrefix(label, "bcd1_"):
		panel = PanelBCD1
	case strings.HasPrefix(label, "bcd2_"):
		panel = PanelBCD2
	case strings.HasPrefix(label, "segment_"):
		s := label[len("segment_"):]
		for i, n := range SegmentNames {
			if n == s {
				return PanelDirect, i, true
			}
		}
		return 0, 0, false
	default:
		return 0, 0, false
	}
	switch label[len("bcdN_"):] {
	case "1":
		bit = 0
	case "2":
		bit = 1
	case "4":
		bit = 2
	case "8":
		bit = 3
	default:
		return 0, 0, false
	}
	return panel, bit, true
}

// DisplayLabels returns the pin labels of a display, in panel and bit order.
//
func DisplayLabels() []string {
	ls := make([]string, 0, 15)
	for _, g := range []string{"bcd1_", "bcd2_"} {
		for _, w := range []string{"1", "2", "4", "8"} {
			ls = append(ls, g+w)
		}
	}
	for _, s := range SegmentNames {
		ls = append(ls, "segment_"+s)
	}
	return ls
}
