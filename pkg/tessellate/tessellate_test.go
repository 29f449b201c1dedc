package tessellate_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/graph"
	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/kernel"
	"github.com/chazu/fingerjoint/pkg/kernel/sdfx"
	"github.com/chazu/fingerjoint/pkg/path"
	"github.com/chazu/fingerjoint/pkg/sheet"
	"github.com/chazu/fingerjoint/pkg/tessellate"
)

// newKernel returns a coarse sdfx kernel; panels are small.
func newKernel() kernel.Kernel {
	return &sdfx.SdfxKernel{Cells: 90}
}

func mustPanel(t *testing.T, b *graph.Builder, name string, w, h float64) graph.NodeID {
	t.Helper()
	id, err := b.Panel(name, path.Rect(0, 0, w, h), graph.MaterialSpec{})
	if err != nil {
		t.Fatalf("Panel(%q) failed: %v", name, err)
	}
	return id
}

func mustBuild(t *testing.T, b *graph.Builder) *graph.DesignGraph {
	t.Helper()
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func byName(meshes []*kernel.Mesh) map[string]*kernel.Mesh {
	m := make(map[string]*kernel.Mesh, len(meshes))
	for _, mesh := range meshes {
		m[mesh.PartName] = mesh
	}
	return m
}

func TestSinglePanel(t *testing.T) {
	b := graph.NewBuilder()
	mustPanel(t, b, "front", 90, 50)

	meshes, err := tessellate.Tessellate(mustBuild(t, b), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "front" {
		t.Errorf("expected PartName %q, got %q", "front", m.PartName)
	}

	min, max := m.Bounds()
	const tol = 1.5
	if math.Abs(float64(max[0]-min[0])-90) > tol {
		t.Errorf("X extent = %.2f, expected ~90", max[0]-min[0])
	}
	if math.Abs(float64(max[1]-min[1])-50) > tol {
		t.Errorf("Y extent = %.2f, expected ~50", max[1]-min[1])
	}
	if max[2] > 3+tol || min[2] < -tol {
		t.Errorf("Z range = %.2f..%.2f, expected 0..3", min[2], max[2])
	}
}

func TestBoxWithJoints(t *testing.T) {
	b := graph.NewBuilder()
	front := mustPanel(t, b, "front", 90, 50)
	side := mustPanel(t, b, "side", 90, 40)
	b.Joint(graph.JointData{Panel: front, Edge: 1, Type: joint.TypeTabs, Params: joint.DefaultParams(), Mate: side})
	b.Joint(graph.JointData{Panel: side, Edge: 1, Type: joint.TypeSlots, Params: joint.DefaultParams(), Mate: front})

	meshes, err := tessellate.Tessellate(mustBuild(t, b), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}

	named := byName(meshes)
	if named["front"] == nil || named["side"] == nil {
		t.Fatalf("missing meshes, got %v", named)
	}

	// Tabs stand out about 3mm beyond the top edge.
	min, _ := named["front"].Bounds()
	if min[1] > -2 {
		t.Errorf("front min Y = %.2f, expected tabs below -2", min[1])
	}
}

func TestPartWithTransform(t *testing.T) {
	b := graph.NewBuilder()
	shelf := mustPanel(t, b, "shelf", 100, 50)
	b.Place(shelf, &graph.Vec3{X: 200, Y: 100, Z: 50}, nil)

	meshes, err := tessellate.Tessellate(mustBuild(t, b), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	// A 100x50x3 panel placed at (200,100,50) has its centroid near
	// (250, 125, 51.5).
	m := meshes[0]
	var cx, cy, cz float64
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		cx += float64(m.Vertices[i*3])
		cy += float64(m.Vertices[i*3+1])
		cz += float64(m.Vertices[i*3+2])
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)

	// Use a generous tolerance since marching cubes is approximate.
	const tol = 10.0
	if math.Abs(cx-250) > tol {
		t.Errorf("centroid X = %.1f, expected near 250", cx)
	}
	if math.Abs(cy-125) > tol {
		t.Errorf("centroid Y = %.1f, expected near 125", cy)
	}
	if math.Abs(cz-51.5) > tol {
		t.Errorf("centroid Z = %.1f, expected near 51.5", cz)
	}
}

func TestAssembly(t *testing.T) {
	b := graph.NewBuilder()
	left := mustPanel(t, b, "left", 40, 30)
	right := mustPanel(t, b, "right", 40, 30)
	top := mustPanel(t, b, "top", 60, 30)
	if _, err := b.Assembly("shelf",
		b.Place(left, nil, &graph.Vec3{Y: 90}),
		b.Place(right, &graph.Vec3{X: 60}, &graph.Vec3{Y: 90}),
		b.Place(top, &graph.Vec3{Z: 40}, nil),
	); err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	g := mustBuild(t, b)
	if len(g.Roots) != 1 {
		t.Fatalf("expected the assembly as the only root, got %d roots", len(g.Roots))
	}

	meshes, err := tessellate.Tessellate(g, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(meshes))
	}
	named := byName(meshes)
	for _, want := range []string{"left", "right", "top"} {
		if named[want] == nil || named[want].IsEmpty() {
			t.Errorf("missing mesh for %q", want)
		}
	}
}

func TestEmptyGraph(t *testing.T) {
	meshes, err := tessellate.Tessellate(graph.New(), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 0 {
		t.Fatalf("expected 0 meshes, got %d", len(meshes))
	}
}

func TestJointRootIgnored(t *testing.T) {
	b := graph.NewBuilder()
	a := mustPanel(t, b, "a", 60, 30)
	jid, _ := b.Joint(graph.JointData{Panel: a, Edge: 1, Type: joint.TypeTabs, Params: joint.DefaultParams()})
	b.Root(a).Root(jid)

	meshes, err := tessellate.Tessellate(mustBuild(t, b), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
}

func TestJointErrorPropagates(t *testing.T) {
	b := graph.NewBuilder()
	a, _ := b.Panel("strip", path.Path{path.Line(geom.Point{X: 1}), path.Line(geom.Point{X: 2})}, graph.MaterialSpec{})
	b.Joint(graph.JointData{Panel: a, Edge: 0, Params: joint.DefaultParams()})

	_, err := tessellate.Tessellate(mustBuild(t, b), newKernel())
	var je *sheet.JointError
	if !errors.As(err, &je) {
		t.Fatalf("Tessellate error = %v, want *sheet.JointError", err)
	}
	if !errors.Is(err, path.ErrInvalidEdgeIndex) {
		t.Errorf("Tessellate error = %v, want ErrInvalidEdgeIndex", err)
	}
}

func TestPartSolid(t *testing.T) {
	b := graph.NewBuilder()
	side := mustPanel(t, b, "side", 90, 40)
	b.Joint(graph.JointData{Panel: side, Edge: 1, Type: joint.TypeSlots, Params: joint.DefaultParams()})
	s, err := sheet.Build(mustBuild(t, b), nil)
	if err != nil {
		t.Fatalf("sheet.Build failed: %v", err)
	}

	solid, err := tessellate.PartSolid(newKernel(), s.Part("side"))
	if err != nil {
		t.Fatalf("PartSolid failed: %v", err)
	}
	min, max := solid.BoundingBox()
	if min[2] != 0 || math.Abs(max[2]-3) > 1e-9 {
		t.Errorf("Z range = %v..%v, expected 0..3", min[2], max[2])
	}
	if math.Abs(max[0]-90) > 1e-9 || math.Abs(max[1]-40) > 1e-9 {
		t.Errorf("max = %v, expected outline corner (90, 40)", max)
	}
}

func TestTabsWithoutEdgeFeaturesMesh(t *testing.T) {
	p := joint.DefaultParams()
	p.IncludeEdgeFeatures = false

	b := graph.NewBuilder()
	front := mustPanel(t, b, "front", 90, 50)
	b.Joint(graph.JointData{Panel: front, Edge: 1, Type: joint.TypeTabs, Params: p})

	meshes, err := tessellate.Tessellate(mustBuild(t, b), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	m := byName(meshes)["front"]
	if m == nil || m.IsEmpty() {
		t.Fatal("expected a mesh for front")
	}
	for i, v := range m.Vertices {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("vertex component %d is %v", i, v)
		}
	}
	min, _ := m.Bounds()
	if min[1] > -2 {
		t.Errorf("min Y = %v, expected tabs below the panel", min[1])
	}
}
