package path

import "github.com/chazu/fingerjoint/pkg/geom"

// Rect returns a closed rectangle with corner (x, y), drawn clockwise on
// screen in a y-down document: along +x first, then +y.
func Rect(x, y, w, h float64) Path {
	return Polygon([]geom.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	})
}

// Polygon returns a closed path through pts. The closing side from the last
// point back to the first is the ClosePath segment.
func Polygon(pts []geom.Point) Path {
	if len(pts) == 0 {
		return nil
	}
	return append(Polyline(pts), Close(pts[0]))
}

// Polyline returns an open path through pts.
func Polyline(pts []geom.Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := make(Path, 0, len(pts))
	p = append(p, Move(pts[0]))
	for _, pt := range pts[1:] {
		p = append(p, Line(pt))
	}
	return p
}

// LinePath returns the single open edge from a to b.
func LinePath(a, b geom.Point) Path {
	return Path{Move(a), Line(b)}
}
