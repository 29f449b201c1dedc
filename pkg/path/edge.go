package path

import (
	"errors"
	"fmt"

	"github.com/chazu/fingerjoint/pkg/geom"
)

var (
	// ErrNoDrawableEdge is returned when no LineTo, CurveTo or ClosePath
	// segment is reachable from the requested index.
	ErrNoDrawableEdge = errors.New("no drawable line, curve or close segment found")

	// ErrInvalidEdgeIndex is returned when the index resolves to the first
	// segment, which has no predecessor to start the edge from.
	ErrInvalidEdgeIndex = errors.New("edge index resolves to the first segment")
)

// Edge is one straight span of a path chosen as a joint carrier.
type Edge struct {
	Index   int        `json:"index"`   // segment index the edge ends at
	Start   geom.Point `json:"start"`   // terminal point of segment Index-1
	End     geom.Point `json:"end"`     // terminal point of segment Index, or of segment 0 when Closing
	Closing bool       `json:"closing"` // segment Index is a ClosePath
}

// Vector returns the edge as a vector from Start to End.
func (e Edge) Vector() geom.Vec {
	return e.End.Sub(e.Start)
}

// Length returns the length of the edge.
func (e Edge) Length() float64 {
	return e.Vector().Length()
}

// ResolveEdge resolves a requested edge index into a concrete edge.
// The index is taken modulo len(p); when it lands on a segment that cannot
// carry an edge (a MoveTo) it advances forward without wrapping.
func ResolveEdge(p Path, index int) (Edge, error) {
	n := len(p)
	if n < 2 {
		return Edge{}, fmt.Errorf("path has %d segments: %w", n, ErrNoDrawableEdge)
	}

	i := ((index % n) + n) % n
	for !p[i].Kind.Drawable() {
		i++
		if i >= n {
			return Edge{}, fmt.Errorf("edge %d: %w", index, ErrNoDrawableEdge)
		}
	}
	if i == 0 {
		return Edge{}, fmt.Errorf("edge %d: %w", index, ErrInvalidEdgeIndex)
	}

	e := Edge{
		Index: i,
		Start: p[i-1].End().Round(),
	}
	if p[i].Kind == ClosePath {
		e.Closing = true
		e.End = p[0].End().Round()
	} else {
		e.End = p[i].End().Round()
	}
	return e, nil
}
