package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Document lengths are resolved to points. Renderers convert points to
// their own device units.

// Unit is the unit a length was written in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, taken as points
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	}
	return ""
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPT converts the length to points.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	}
	return l.Value
}

// ToMM converts the length to millimeters.
func (l Length) ToMM() float64 { return l.ToPT() * PtToMm }

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// ParseLength parses "12", "12pt", "4.2mm", "1in".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, fmt.Errorf("长度 %q 无法解析", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// LineHeightKind distinguishes factor-based vs absolute line heights.
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec keeps the author's intent: a factor ("1.2", "1.2x") or an
// absolute length ("24pt").
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// ParseLineHeight parses a line-height value.
func ParseLineHeight(value string) (LineHeightSpec, error) {
	v := strings.TrimSpace(value)
	if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64); err == nil {
		return LineHeightSpec{Kind: LineHeightFactor, Factor: f}, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return LineHeightSpec{}, err
	}
	return LineHeightSpec{Kind: LineHeightAbsolute, Len: l}, nil
}

// FactorFor returns the line height as a multiple of fontSize (in points),
// which is how runs carry it.
func (s LineHeightSpec) FactorFor(fontSize float64) float64 {
	switch s.Kind {
	case LineHeightAbsolute:
		if fontSize > 0 {
			return s.Len.ToPT() / fontSize
		}
	case LineHeightFactor:
		if s.Factor > 0 {
			return s.Factor
		}
	}
	return DefaultStyle().LineHeight
}
