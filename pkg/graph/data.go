package graph

import (
	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/path"
)

// MaterialSpec describes the sheet stock a panel is cut from.
type MaterialSpec struct {
	Name      string  `json:"name,omitempty"`      // e.g. "birch-ply", "acrylic"
	Thickness float64 `json:"thickness,omitempty"` // sheet thickness in mm
	Notes     string  `json:"notes,omitempty"`
}

// PanelData is a flat part: its outline before any joints are applied and
// the material it is cut from.
type PanelData struct {
	Outline  path.Path    `json:"outline"`
	Material MaterialSpec `json:"material"`
}

func (PanelData) nodeData() {}

// JointData applies a finger joint to one edge of a panel. Created by the
// (finger-joint ...) form. Joints on the same panel apply in graph order,
// each against the outline produced by the previous one.
type JointData struct {
	Panel  NodeID       `json:"panel"`
	Edge   int          `json:"edge"` // requested segment index, resolved by path.ResolveEdge
	Type   joint.Type   `json:"type"`
	Params joint.Params `json:"params"`
	Mate   NodeID       `json:"mate"`     // optional mating panel, checked for thickness
}

func (JointData) nodeData() {}

// TransformData places a child node in 3-D. Created by the (place ...) form.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// GroupData represents a logical grouping (assembly, subassembly).
// Created by the (assembly ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
