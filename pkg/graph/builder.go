package graph

import (
	"errors"
	"fmt"

	"github.com/chazu/fingerjoint/pkg/path"
)

// Builder provides an API for building design graphs from Go and from the
// script engine. Methods that can fail return the error and also record it
// for Build.
type Builder struct {
	g      *DesignGraph
	errs   []error
	counts map[string]int
}

// NewBuilder creates a builder around an empty graph.
func NewBuilder() *Builder {
	return &Builder{g: New(), counts: make(map[string]int)}
}

// Defaults replaces the graph-wide defaults used for subsequent nodes.
func (b *Builder) Defaults(d GlobalDefaults) *Builder {
	b.g.Defaults = d
	return b
}

// nextPath returns a unique logical path under prefix.
func (b *Builder) nextPath(prefix string) string {
	b.counts[prefix]++
	return fmt.Sprintf("%s/%d", prefix, b.counts[prefix])
}

// Graph returns the graph under construction.
func (b *Builder) Graph() *DesignGraph {
	return b.g
}

func (b *Builder) fail(err error) (NodeID, error) {
	b.errs = append(b.errs, err)
	return NodeID{}, err
}

// Panel adds a named panel. A zero material thickness takes the default.
func (b *Builder) Panel(name string, outline path.Path, mat MaterialSpec) (NodeID, error) {
	if name == "" {
		return b.fail(errors.New("panel name must not be empty"))
	}
	if b.g.Lookup(name) != nil {
		return b.fail(fmt.Errorf("panel name %q already defined", name))
	}
	if mat.Thickness == 0 {
		mat.Thickness = b.g.Defaults.Material.Thickness
	}
	if mat.Name == "" {
		mat.Name = b.g.Defaults.Material.Name
	}

	id := NewNodeID("defpanel/" + name)
	b.g.AddNode(&Node{
		ID:   id,
		Kind: NodePanel,
		Name: name,
		Data: PanelData{Outline: outline.Clone(), Material: mat},
	})
	return id, nil
}

// Joint adds a finger joint node.
func (b *Builder) Joint(jd JointData) (NodeID, error) {
	if jd.Panel.IsZero() {
		return b.fail(errors.New("joint has no target panel"))
	}
	id := NewNodeID(b.nextPath("finger-joint/" + jd.Panel.String()))
	b.g.AddNode(&Node{ID: id, Kind: NodeJoint, Data: jd})
	return id, nil
}

// Place wraps child in a transform node.
func (b *Builder) Place(child NodeID, translation, rotation *Vec3) NodeID {
	id := NewNodeID(b.nextPath("place/" + child.String()))
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     NodeTransform,
		Children: []NodeID{child},
		Data:     TransformData{Translation: translation, Rotation: rotation},
	})
	return id
}

// Assembly groups children under a group node. Named assemblies must be
// unique.
func (b *Builder) Assembly(name string, children ...NodeID) (NodeID, error) {
	var id NodeID
	if name == "" {
		id = NewNodeID(b.nextPath("assembly"))
	} else {
		if b.g.Lookup(name) != nil {
			return b.fail(fmt.Errorf("assembly name %q already defined", name))
		}
		id = NewNodeID("assembly/" + name)
	}
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     NodeGroup,
		Name:     name,
		Children: children,
		Data:     GroupData{},
	})
	return id, nil
}

// Root marks id as a graph root.
func (b *Builder) Root(id NodeID) *Builder {
	b.g.AddRoot(id)
	return b
}

// Build returns the completed graph, rooted by AutoRoot when no roots were
// given.
func (b *Builder) Build() (*DesignGraph, error) {
	if len(b.g.Roots) == 0 {
		AutoRoot(b.g)
	}
	return b.g, errors.Join(b.errs...)
}

// AutoRoot roots the top-level assemblies: group nodes no other node lists
// as a child. A graph without assemblies roots every top-level panel and
// transform instead. Roots follow insertion order.
func AutoRoot(g *DesignGraph) {
	child := make(map[NodeID]bool)
	for _, n := range g.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}

	var groups, others []NodeID
	for _, id := range g.Order {
		n := g.Nodes[id]
		switch {
		case child[id] || n.Kind == NodeJoint:
		case n.Kind == NodeGroup:
			groups = append(groups, id)
		default:
			others = append(others, id)
		}
	}

	if len(groups) == 0 {
		groups = others
	}
	for _, id := range groups {
		g.AddRoot(id)
	}
}
