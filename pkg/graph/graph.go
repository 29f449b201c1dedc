package graph

import (
	"fmt"

	"github.com/chazu/fingerjoint/pkg/joint"
)

// GlobalDefaults contains graph-wide default settings.
type GlobalDefaults struct {
	Units    string       `json:"units"`    // "mm" (only option)
	Material MaterialSpec `json:"material"` // default material for new panels
	Joint    joint.Params `json:"joint"`    // default joint parameters, set by (joint-defaults ...)
}

// DesignGraph is the top-level immutable data structure produced by script
// evaluation. It is never mutated in place; each evaluation produces a new
// graph.
type DesignGraph struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Order     []NodeID          `json:"order"` // insertion order
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	Defaults  GlobalDefaults    `json:"defaults"`
	Version   uint64            `json:"version"`
}

// New creates an empty DesignGraph with default settings.
func New() *DesignGraph {
	return &DesignGraph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Defaults: GlobalDefaults{
			Units: "mm",
			Material: MaterialSpec{
				Thickness: joint.DefaultParams().Thickness,
			},
			Joint: joint.DefaultParams(),
		},
	}
}

// AddNode adds a node to the graph. Re-adding an ID replaces the node but
// keeps its original position in Order.
func (g *DesignGraph) AddNode(n *Node) {
	if _, ok := g.Nodes[n.ID]; !ok {
		g.Order = append(g.Order, n.ID)
	}
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the graph.
func (g *DesignGraph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (g *DesignGraph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *DesignGraph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("graph: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *DesignGraph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

func (g *DesignGraph) ofKind(k NodeKind) []*Node {
	var out []*Node
	for _, id := range g.Order {
		if n := g.Nodes[id]; n != nil && n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// Panels returns all panel nodes in insertion order.
func (g *DesignGraph) Panels() []*Node {
	return g.ofKind(NodePanel)
}

// Joints returns all joint nodes in insertion order.
func (g *DesignGraph) Joints() []*Node {
	return g.ofKind(NodeJoint)
}

// JointsOf returns the joint nodes targeting panel, in insertion order.
func (g *DesignGraph) JointsOf(panel NodeID) []*Node {
	var out []*Node
	for _, n := range g.Joints() {
		if jd, ok := n.Data.(JointData); ok && jd.Panel == panel {
			out = append(out, n)
		}
	}
	return out
}

// Children returns the child nodes of the given node.
func (g *DesignGraph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the total number of nodes.
func (g *DesignGraph) NodeCount() int {
	return len(g.Nodes)
}
