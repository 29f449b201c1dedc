// Package sheet turns a design graph into a cut sheet: every panel's final
// outline after its finger joints are applied, plus the slot cutouts those
// joints produce.
package sheet

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/graph"
	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/path"
	"github.com/samber/lo"
)

// SlotGroup is one joint's slot cutouts on a part.
type SlotGroup struct {
	joint.SlotGroup
	Joint graph.NodeID `json:"joint"`
	Kerf  float64      `json:"kerf"`
}

// Part is one panel ready to cut.
type Part struct {
	Name     string             `json:"name"`
	NodeID   graph.NodeID       `json:"nodeId"`
	Material graph.MaterialSpec `json:"material"`
	Outline  path.Path          `json:"outline"`
	Slots    []SlotGroup        `json:"slots,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

// Points returns the terminal points of the outline and every slot.
func (p Part) Points() []geom.Point {
	pts := p.Outline.Points()
	for _, g := range p.Slots {
		pts = append(pts, lo.FlatMap(g.Slots, func(s joint.Slot, _ int) []geom.Point {
			return s.Path.Points()
		})...)
	}
	return pts
}

// Bounds returns the axis-aligned bounding box of Points. An empty part has
// zero bounds.
func (p Part) Bounds() (bmin, bmax geom.Vec) {
	pts := p.Points()
	if len(pts) == 0 {
		return geom.Vec{}, geom.Vec{}
	}
	bmin, bmax = pts[0], pts[0]
	for _, pt := range pts[1:] {
		bmin.X, bmin.Y = math.Min(bmin.X, pt.X), math.Min(bmin.Y, pt.Y)
		bmax.X, bmax.Y = math.Max(bmax.X, pt.X), math.Max(bmax.Y, pt.Y)
	}
	return bmin, bmax
}

// Sheet is the full set of parts of a design, in graph order.
type Sheet struct {
	Units string `json:"units"`
	Parts []Part `json:"parts"`
}

// Part returns the part with the given name, or nil. The pointer refers
// into s.Parts.
func (s *Sheet) Part(name string) *Part {
	_, i, ok := lo.FindIndexOf(s.Parts, func(p Part) bool { return p.Name == name })
	if !ok {
		return nil
	}
	return &s.Parts[i]
}

// JointError reports a joint that could not be applied to its panel.
type JointError struct {
	Joint graph.NodeID
	Panel string
	Edge  int
	Err   error
}

func (e *JointError) Error() string {
	return fmt.Sprintf("joint %s on panel %q edge %d: %v", e.Joint.Short(), e.Panel, e.Edge, e.Err)
}

func (e *JointError) Unwrap() error { return e.Err }

// Build applies every joint node to its panel and collects the parts.
// Joints on a panel apply in graph order, each against the outline the
// previous one produced. ids names slot groups; nil uses a fresh sequence
// shared by the whole sheet. The first joint that fails stops the build.
func Build(g *graph.DesignGraph, ids joint.IDSource) (*Sheet, error) {
	if ids == nil {
		ids = joint.NewSequence()
	}
	log := joint.Logger()

	s := &Sheet{Units: g.Defaults.Units}
	for _, n := range g.Panels() {
		pd := n.Data.(graph.PanelData)
		part := Part{
			Name:     n.Name,
			NodeID:   n.ID,
			Material: pd.Material,
			Outline:  path.Normalize(pd.Outline),
		}

		for _, jn := range g.JointsOf(n.ID) {
			jd := jn.Data.(graph.JointData)
			res, err := joint.Apply(part.Outline, jd.Edge, jd.Type, jd.Params, ids)
			if err != nil {
				return nil, &JointError{Joint: jn.ID, Panel: n.Name, Edge: jd.Edge, Err: err}
			}
			part.Outline = res.Path
			part.Warnings = append(part.Warnings, res.Warnings...)
			if res.Slots != nil {
				part.Slots = append(part.Slots, SlotGroup{SlotGroup: *res.Slots, Joint: jn.ID, Kerf: jd.Params.Kerf})
			}
		}

		log.Debug("sheet: part",
			slog.String("name", part.Name),
			slog.Int("segments", len(part.Outline)),
			slog.Int("slotGroups", len(part.Slots)))
		s.Parts = append(s.Parts, part)
	}
	return s, nil
}
