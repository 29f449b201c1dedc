// Package path models vector paths as ordered segment sequences and
// resolves the edge a joint is generated on.
package path

import (
	"fmt"

	"github.com/chazu/fingerjoint/pkg/geom"
)

// Kind enumerates the drawing commands a path is made of.
type Kind int

const (
	MoveTo Kind = iota
	LineTo
	CurveTo
	ClosePath
)

func (k Kind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CurveTo:
		return "C"
	case ClosePath:
		return "Z"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Drawable reports whether a segment of this kind can carry an edge.
func (k Kind) Drawable() bool {
	return k == LineTo || k == CurveTo || k == ClosePath
}

// Segment is one drawing command. C1 and C2 are only meaningful for
// CurveTo. For ClosePath, Pt holds the start of the sub-path being closed.
type Segment struct {
	Kind Kind       `json:"kind"`
	C1   geom.Point `json:"c1"`
	C2   geom.Point `json:"c2"`
	Pt   geom.Point `json:"pt"`
}

// End returns the terminal point of the segment. For curves this is the
// final point, never a control point.
func (s Segment) End() geom.Point {
	return s.Pt
}

func (s Segment) String() string {
	switch s.Kind {
	case ClosePath:
		return "Z"
	case CurveTo:
		return fmt.Sprintf("C%v %v %v", s.C1, s.C2, s.Pt)
	default:
		return fmt.Sprintf("%s%v", s.Kind, s.Pt)
	}
}

// Move returns a MoveTo segment.
func Move(p geom.Point) Segment { return Segment{Kind: MoveTo, Pt: p} }

// Line returns a LineTo segment.
func Line(p geom.Point) Segment { return Segment{Kind: LineTo, Pt: p} }

// Curve returns a cubic CurveTo segment.
func Curve(c1, c2, p geom.Point) Segment {
	return Segment{Kind: CurveTo, C1: c1, C2: c2, Pt: p}
}

// Close returns a ClosePath segment closing a sub-path that began at start.
func Close(start geom.Point) Segment { return Segment{Kind: ClosePath, Pt: start} }
