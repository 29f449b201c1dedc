package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NodeID is a content-addressed node identifier: the SHA-256 of the node's
// logical path ("defpanel/front", "finger-joint/front/1").
type NodeID [32]byte

// NewNodeID returns the identifier for a logical path.
func NewNodeID(logicalPath string) NodeID {
	return NodeID(sha256.Sum256([]byte(logicalPath)))
}

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex digits, for messages.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:4])
}

func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *NodeID) UnmarshalText(b []byte) error {
	if hex.DecodedLen(len(b)) != len(id) {
		return fmt.Errorf("graph: node id %q has %d hex digits, want %d", b, len(b), 2*len(id))
	}
	_, err := hex.Decode(id[:], b)
	return err
}

// Vec3 is a 3-D vector in mm (translation) or degrees (rotation).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}
