// Package kernel defines the geometry kernel used to turn flat cut parts
// into solids for preview. A part is a 2-D profile (outline minus slot
// cutouts) extruded by its material thickness and then placed in 3-D.
package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/fingerjoint/pkg/geom"
)

// ErrDegenerateProfile is returned for polygons that enclose no area.
var ErrDegenerateProfile = errors.New("degenerate profile")

// Profile is an opaque handle to a closed 2-D region.
type Profile interface {
	Bounds() (min, max [2]float64)
}

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	BoundingBox() (min, max [3]float64)
}

// Kernel builds profiles and solids.
type Kernel interface {
	// Profiles
	Polygon(pts []geom.Point) (Profile, error)
	Union2D(ps ...Profile) Profile
	Difference2D(a, b Profile) Profile

	// Extrude lifts p into a solid spanning z in [0, height].
	Extrude(p Profile, height float64) Solid

	Union(a, b Solid) Solid
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, X then Y then Z

	ToMesh(s Solid) (*Mesh, error)
}

// CheckPolygon drops consecutive duplicate vertices, including a repeated
// closing vertex, and reports polygons with fewer than three distinct
// vertices. Kernels call it before building a profile.
func CheckPolygon(pts []geom.Point) ([]geom.Point, error) {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Equal(p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerateProfile, len(out))
	}
	return out, nil
}
