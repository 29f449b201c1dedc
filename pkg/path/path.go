package path

import (
	"github.com/chazu/fingerjoint/pkg/geom"
)

// Path is an ordered sequence of segments. Each segment starts where the
// previous one ended.
type Path []Segment

// Clone returns a copy of p that shares no storage with it.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Closed reports whether the path ends with a ClosePath.
func (p Path) Closed() bool {
	return len(p) > 0 && p[len(p)-1].Kind == ClosePath
}

// Points returns the terminal point of every segment except ClosePath.
func (p Path) Points() []geom.Point {
	pts := make([]geom.Point, 0, len(p))
	for _, s := range p {
		if s.Kind == ClosePath {
			continue
		}
		pts = append(pts, s.End())
	}
	return pts
}

// Splice returns a new path with the segment at index i replaced by repl.
// p is not modified.
func (p Path) Splice(i int, repl Path) Path {
	out := make(Path, 0, len(p)-1+len(repl))
	out = append(out, p[:i]...)
	out = append(out, repl...)
	out = append(out, p[i+1:]...)
	return out
}

// Normalize returns a copy of p with degenerate segments removed:
//   - a LineTo ending where the previous segment ended (zero length),
//   - a segment identical to its predecessor,
//   - a LineTo returning to the first point right before a trailing
//     ClosePath, which the ClosePath already draws.
func Normalize(p Path) Path {
	out := make(Path, 0, len(p))
	for _, s := range p {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if s == prev {
				continue
			}
			if s.Kind == LineTo && s.End().Equal(prev.End()) {
				continue
			}
		}
		out = append(out, s)
	}

	n := len(out)
	if n >= 3 && out[n-1].Kind == ClosePath && out[n-2].Kind == LineTo &&
		out[n-2].End().Equal(out[0].End()) {
		out = append(out[:n-2], out[n-1])
	}
	return out
}
