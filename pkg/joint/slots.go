package joint

import (
	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/path"
)

// Slot is one rectangular cutout receiving a mating tab.
type Slot struct {
	Index  int        `json:"index"`  // step index along the edge
	Origin geom.Point `json:"origin"` // walking position the box is placed from
	Width  float64    `json:"width"`  // nominal length along the edge
	Height float64    `json:"height"` // nominal depth, the material thickness
	Path   path.Path  `json:"path"`   // closed, kerf-corrected outline
}

// SlotSegments returns the number of steps walked along an edge when placing
// slots: 2n-1 with edge features, 2n without.
func SlotSegments(p Params) int {
	if p.IncludeEdgeFeatures {
		return 2*p.ToothCount - 1
	}
	return 2 * p.ToothCount
}

// SlotStepLength returns the reference length of one slot or gap step.
// Without edge features one extra step of margin is reserved. A
// non-positive step count falls back to the whole edge.
func SlotStepLength(edgeLen float64, p Params) float64 {
	n := SlotSegments(p)
	if n <= 0 {
		return edgeLen
	}
	if p.IncludeEdgeFeatures {
		return edgeLen / float64(n)
	}
	return edgeLen / float64(n+1)
}

// Slots generates the slot cutouts for edge e. Slots sit on the steps where
// the mating part has tabs: even steps with edge features, odd steps
// without. The edge itself is left untouched.
func Slots(e path.Edge, p Params) []Slot {
	guide := e.Vector()
	n := SlotSegments(p)
	segLen := SlotStepLength(guide.Length(), p)
	first := FirstState(p.IncludeEdgeFeatures)

	cur := e.Start
	if p.IncludeEdgeFeatures {
		cur = geom.StepParallel(cur, guide, p.Kerf/2)
	}

	var slots []Slot
	for i := 0; i < n; i++ {
		length := segLen
		if p.IncludeEdgeFeatures && (i == 0 || i == n-1) {
			length -= p.Kerf / 2
		}

		if StateAt(i, first) == Tab {
			slots = append(slots, Slot{
				Index:  i,
				Origin: cur,
				Width:  length,
				Height: p.Thickness,
				Path:   SlotBox(cur, guide, length, p.Thickness, p.Kerf, p.GapClearance, p.FlipSide),
			})
		}

		cur = geom.StepParallel(cur, guide, length)
	}
	return slots
}

// SlotBox returns a closed rectangle of nominal size x by y placed at origin
// along guide. The box is inset by kerf/2 along the guide and centred on the
// guide line across it; the cut outline is x-kerf long and y+gap-kerf deep
// so that the hole left after the laser removes its kerf is x by y+gap.
func SlotBox(origin, guide geom.Vec, x, y, kerf, gap float64, flip bool) path.Path {
	width := y - kerf + gap

	start := geom.StepParallel(origin, guide, kerf/2)
	start = geom.StepPerpendicular(start, guide, -width/2, flip)

	c1 := geom.StepParallel(start, guide, x-kerf)
	c2 := geom.StepPerpendicular(c1, guide, y+gap-kerf, flip)
	c3 := geom.StepParallel(c2, guide, -(x - kerf))

	return path.Path{
		path.Move(start),
		path.Line(c1),
		path.Line(c2),
		path.Line(c3),
		path.Close(start),
	}
}
