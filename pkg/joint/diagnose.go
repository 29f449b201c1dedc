package joint

import (
	"fmt"

	"github.com/chazu/fingerjoint/pkg/path"
)

// Diagnose reports parameter combinations that produce degenerate or
// self-intersecting geometry on edge e. The generators still run on such
// input; the messages are meant for display next to the result.
func Diagnose(e path.Edge, p Params) []string {
	var msgs []string

	if p.ToothCount < 1 {
		msgs = append(msgs, fmt.Sprintf("tooth count %d leaves no tabs on the edge", p.ToothCount))
	}
	if p.Thickness <= 0 {
		msgs = append(msgs, fmt.Sprintf("thickness %g turns tabs inward", p.Thickness))
	}

	if n := ToothSegments(p); n > 0 {
		raw := e.Length() / float64(n)
		if p.Kerf >= raw {
			msgs = append(msgs, fmt.Sprintf("kerf %g is not smaller than the %.4g step length", p.Kerf, raw))
		}
		first := FirstState(p.IncludeEdgeFeatures)
		for i := 0; i < n; i++ {
			if l := toothStepLength(raw, i, n, StateAt(i, first), p.Kerf); l <= 0 {
				msgs = append(msgs, fmt.Sprintf("tooth step %d has non-positive length %.4g", i, l))
			}
		}
	}

	if depth := p.Thickness + p.GapClearance - p.Kerf; depth <= 0 {
		msgs = append(msgs, fmt.Sprintf("slot depth %.4g after kerf is not positive", depth))
	}
	segLen := SlotStepLength(e.Length(), p)
	if segLen-p.Kerf/2-p.Kerf <= 0 {
		msgs = append(msgs, fmt.Sprintf("slot width %.4g after kerf is not positive", segLen-p.Kerf/2-p.Kerf))
	}
	return msgs
}
