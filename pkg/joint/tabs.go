package joint

import (
	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/path"
)

// Step is one span of a tooth pattern.
type Step struct {
	Index  int     `json:"index"`
	State  State   `json:"state"`
	Length float64 `json:"length"` // kerf-adjusted length along the edge
}

// ToothPattern is the zigzag replacement for one edge.
type ToothPattern struct {
	Segments  int       `json:"segments"`  // number of steps
	RawLength float64   `json:"rawLength"` // edge length / Segments, before kerf
	Steps     []Step    `json:"steps"`
	Commands  path.Path `json:"commands"` // replaces the edge segment in place
}

// ToothSegments returns the number of tab and valley steps along an edge:
// 2n-1 when the edge ends are tabs, 2n+1 when they are flat margins.
func ToothSegments(p Params) int {
	if p.IncludeEdgeFeatures {
		return 2*p.ToothCount - 1
	}
	return 2*p.ToothCount + 1
}

// toothStepLength applies kerf compensation to one step: valleys shrink and
// tabs grow, by kerf/2 at either end of the edge and by a full kerf inside.
func toothStepLength(raw float64, i, n int, s State, kerf float64) float64 {
	adj := kerf
	if i == 0 || i == n-1 {
		adj = kerf / 2
	}
	if s == Valley {
		return raw - adj
	}
	return raw + adj
}

// Tabs generates the tooth pattern replacing edge e.
//
// Every step emits a perpendicular move followed by a parallel move. A tab
// step first moves away from the baseline; a valley step moves back to it,
// except the first valley which starts flush with the edge start and emits a
// zero-length move. With edge features the pattern ends on a tab, so one
// final perpendicular move returns to the baseline. A closing edge keeps its
// ClosePath.
func Tabs(e path.Edge, p Params) ToothPattern {
	guide := e.Vector()
	n := ToothSegments(p)

	raw := guide.Length()
	if n > 0 {
		raw /= float64(n)
	}

	tp := ToothPattern{Segments: n, RawLength: raw}
	if n > 0 {
		tp.Steps = make([]Step, 0, n)
		tp.Commands = make(path.Path, 0, 2*n+2)
	}

	depth := p.Thickness + p.Kerf/2
	first := FirstState(p.IncludeEdgeFeatures)

	// cur stays unrounded; only emitted points are rounded.
	cur := e.Start
	emit := func(d geom.Vec) {
		cur = cur.Add(d)
		tp.Commands = append(tp.Commands, path.Line(cur.Round()))
	}

	for i := 0; i < n; i++ {
		s := StateAt(i, first)
		length := toothStepLength(raw, i, n, s, p.Kerf)

		switch {
		case s == Valley && i != 0:
			emit(geom.Perpendicular(guide, depth, p.FlipSide))
		case s == Valley:
			emit(geom.Vec{})
		case s == Tab:
			emit(geom.Perpendicular(guide, depth, !p.FlipSide))
		}
		emit(geom.Parallel(guide, length))

		tp.Steps = append(tp.Steps, Step{Index: i, State: s, Length: length})
	}

	if p.IncludeEdgeFeatures {
		emit(geom.Perpendicular(guide, depth, p.FlipSide))
	}

	if e.Closing {
		tp.Commands = append(tp.Commands, path.Close(e.End))
	}
	return tp
}
