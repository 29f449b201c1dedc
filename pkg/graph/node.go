package graph

// NodeKind enumerates the types of nodes in the design graph.
type NodeKind int

const (
	NodePanel     NodeKind = iota // flat sheet part with a 2-D outline
	NodeJoint                     // finger joint applied to one panel edge
	NodeTransform                 // spatial placement (place)
	NodeGroup                     // logical grouping (assembly)
)

func (k NodeKind) String() string {
	switch k {
	case NodePanel:
		return "panel"
	case NodeJoint:
		return "joint"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the design graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
