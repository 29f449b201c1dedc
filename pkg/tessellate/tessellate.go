// Package tessellate walks a design graph and produces triangle meshes
// using a geometry kernel. Every panel reached from a root becomes one
// mesh: its cut outline, with slot cutouts removed, extruded by the
// material thickness and placed by the transforms above it.
package tessellate

import (
	"fmt"

	"github.com/chazu/fingerjoint/pkg/graph"
	"github.com/chazu/fingerjoint/pkg/kernel"
	"github.com/chazu/fingerjoint/pkg/sheet"
)

// transformStack accumulates spatial transforms during graph traversal.
type transformStack struct {
	translations []graph.Vec3
	rotations    []graph.Vec3
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) pushTranslation(v graph.Vec3) {
	ts.translations = append(ts.translations, v)
}

func (ts *transformStack) pushRotation(v graph.Vec3) {
	ts.rotations = append(ts.rotations, v)
}

func (ts *transformStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
	}
	if len(ts.rotations) > 0 {
		ts.rotations = ts.rotations[:len(ts.rotations)-1]
	}
}

// accumulatedTranslation returns the sum of all translations on the stack.
func (ts *transformStack) accumulatedTranslation() graph.Vec3 {
	var sum graph.Vec3
	for _, t := range ts.translations {
		sum = sum.Add(t)
	}
	return sum
}

// accumulatedRotation returns the sum of all rotations on the stack.
func (ts *transformStack) accumulatedRotation() graph.Vec3 {
	var sum graph.Vec3
	for _, r := range ts.rotations {
		sum = sum.Add(r)
	}
	return sum
}

// Tessellate builds the cut sheet for g and tessellates it. The
// tessellator is read-only and never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}
	s, err := sheet.Build(g, nil)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	return TessellateSheet(g, s, k)
}

// TessellateSheet walks the roots of g and meshes the parts of s, which
// must have been built from g.
func TessellateSheet(g *graph.DesignGraph, s *sheet.Sheet, k kernel.Kernel) ([]*kernel.Mesh, error) {
	w := &walker{
		g:     g,
		k:     k,
		parts: make(map[graph.NodeID]*sheet.Part, len(s.Parts)),
		ts:    newTransformStack(),
	}
	for i := range s.Parts {
		w.parts[s.Parts[i].NodeID] = &s.Parts[i]
	}

	var meshes []*kernel.Mesh
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := w.walk(root)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// PartSolid extrudes a part: the outline minus the union of its slot
// cutouts, from z=0 to the material thickness.
func PartSolid(k kernel.Kernel, part *sheet.Part) (kernel.Solid, error) {
	profile, err := k.Polygon(part.Outline.Points())
	if err != nil {
		return nil, fmt.Errorf("outline of %q: %w", part.Name, err)
	}

	var cutouts []kernel.Profile
	for _, g := range part.Slots {
		for _, sl := range g.Slots {
			c, err := k.Polygon(sl.Path.Points())
			if err != nil {
				return nil, fmt.Errorf("slot %s of %q: %w", g.ID, part.Name, err)
			}
			cutouts = append(cutouts, c)
		}
	}
	if len(cutouts) > 0 {
		profile = k.Difference2D(profile, k.Union2D(cutouts...))
	}
	return k.Extrude(profile, part.Material.Thickness), nil
}

type walker struct {
	g     *graph.DesignGraph
	k     kernel.Kernel
	parts map[graph.NodeID]*sheet.Part
	ts    *transformStack
}

// walk recursively traverses a node and its children, collecting meshes.
func (w *walker) walk(n *graph.Node) ([]*kernel.Mesh, error) {
	switch n.Kind {
	case graph.NodePanel:
		return w.panel(n)

	case graph.NodeTransform:
		return w.transform(n)

	case graph.NodeGroup:
		return w.children(n)

	case graph.NodeJoint:
		// Joints are already folded into the panel outlines.
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func (w *walker) panel(n *graph.Node) ([]*kernel.Mesh, error) {
	part, ok := w.parts[n.ID]
	if !ok {
		return nil, fmt.Errorf("panel %s has no cut part", n.ID.Short())
	}
	solid, err := PartSolid(w.k, part)
	if err != nil {
		return nil, err
	}

	// Apply accumulated rotation first, then translation.
	rot := w.ts.accumulatedRotation()
	if rot.X != 0 || rot.Y != 0 || rot.Z != 0 {
		solid = w.k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}

	trans := w.ts.accumulatedTranslation()
	if trans.X != 0 || trans.Y != 0 || trans.Z != 0 {
		solid = w.k.Translate(solid, trans.X, trans.Y, trans.Z)
	}

	mesh, err := w.k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
	}
	mesh.PartName = part.Name
	return []*kernel.Mesh{mesh}, nil
}

// transform pushes the placement, recurses into children, then pops.
func (w *walker) transform(n *graph.Node) ([]*kernel.Mesh, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	var translation, rotation graph.Vec3
	if td.Translation != nil {
		translation = *td.Translation
	}
	if td.Rotation != nil {
		rotation = *td.Rotation
	}
	w.ts.pushTranslation(translation)
	w.ts.pushRotation(rotation)
	defer w.ts.pop()

	return w.children(n)
}

func (w *walker) children(n *graph.Node) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, child := range w.g.Children(n) {
		collected, err := w.walk(child)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}
