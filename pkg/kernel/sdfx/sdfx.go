// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes resolution along the longest
// side of a solid.
const DefaultMeshCells = 200

type sdfxProfile struct {
	s sdf.SDF2
}

func (p *sdfxProfile) Bounds() (min, max [2]float64) {
	bb := p.s.BoundingBox()
	return [2]float64{bb.Min.X, bb.Min.Y}, [2]float64{bb.Max.X, bb.Max.Y}
}

type sdfxSolid struct {
	s sdf.SDF3
}

func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	// Cells is the marching cubes resolution; zero means DefaultMeshCells.
	Cells int
}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{Cells: DefaultMeshCells}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

func unwrap2(p kernel.Profile) sdf.SDF2 {
	return p.(*sdfxProfile).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func wrap2(s sdf.SDF2) kernel.Profile {
	return &sdfxProfile{s: s}
}

// Polygon builds a profile from the vertices of a closed outline.
func (k *SdfxKernel) Polygon(pts []geom.Point) (kernel.Profile, error) {
	pts, err := kernel.CheckPolygon(pts)
	if err != nil {
		return nil, err
	}
	vs := make([]v2.Vec, len(pts))
	for i, pt := range pts {
		vs[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return wrap2(s), nil
}

// Union2D returns the union of the profiles.
func (k *SdfxKernel) Union2D(ps ...kernel.Profile) kernel.Profile {
	if len(ps) == 1 {
		return ps[0]
	}
	ss := make([]sdf.SDF2, len(ps))
	for i, p := range ps {
		ss[i] = unwrap2(p)
	}
	return wrap2(sdf.Union2D(ss...))
}

// Difference2D returns a - b.
func (k *SdfxKernel) Difference2D(a, b kernel.Profile) kernel.Profile {
	return wrap2(sdf.Difference2D(unwrap2(a), unwrap2(b)))
}

// Extrude lifts p to a solid from z=0 to z=height. sdf.Extrude3D centers
// the extrusion on z=0, so it is shifted up by half the height.
func (k *SdfxKernel) Extrude(p kernel.Profile, height float64) kernel.Solid {
	s := sdf.Extrude3D(unwrap2(p), height)
	return wrap(sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: height / 2})))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes. Every
// triangle gets its own three vertices carrying the face normal.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	cells := k.Cells
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	triangles := render.ToTriangles(unwrap(s), render.NewMarchingCubesUniform(cells))

	vertices := make([]float32, 0, len(triangles)*9)
	normals := make([]float32, 0, len(triangles)*9)
	indices := make([]uint32, 0, len(triangles)*3)

	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
