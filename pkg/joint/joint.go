package joint

import (
	"fmt"
	"log/slog"

	"github.com/chazu/fingerjoint/pkg/path"
)

// SlotPrefix is the prefix requested from the IDSource for slot groups.
const SlotPrefix = "slot"

// SlotGroup is the set of slot cutouts generated for one edge.
type SlotGroup struct {
	ID    string   `json:"id"`
	Slots []Slot   `json:"slots"`
	IDs   []string `json:"ids"` // one per slot, "<group>-<step index>"
}

// Result is the outcome of applying a joint to one edge of a path.
type Result struct {
	Path     path.Path     `json:"path"` // input with the edge replaced by tabs, or the normalized input
	Edge     path.Edge     `json:"edge"`
	Teeth    *ToothPattern `json:"teeth,omitempty"`
	Slots    *SlotGroup    `json:"slots,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Apply normalizes p, resolves edgeIndex and generates the requested halves
// of the joint. Tabs replace the edge segment in place; slots are generated
// from the edge of the unmodified path and returned separately. ids names
// the slot group; nil uses a fresh Sequence.
func Apply(p path.Path, edgeIndex int, t Type, params Params, ids IDSource) (*Result, error) {
	np := path.Normalize(p)
	e, err := path.ResolveEdge(np, edgeIndex)
	if err != nil {
		return nil, fmt.Errorf("joint: %w", err)
	}

	log := Logger()
	log.Debug("joint: resolved edge",
		slog.Int("requested", edgeIndex),
		slog.Int("index", e.Index),
		slog.Bool("closing", e.Closing),
		slog.Float64("length", e.Length()))

	res := &Result{Path: np, Edge: e, Warnings: Diagnose(e, params)}
	for _, w := range res.Warnings {
		log.Warn("joint: "+w, slog.Int("edge", e.Index))
	}

	if t.Slots() {
		if ids == nil {
			ids = NewSequence()
		}
		g := &SlotGroup{ID: ids.NextID(SlotPrefix), Slots: Slots(e, params)}
		for _, s := range g.Slots {
			g.IDs = append(g.IDs, fmt.Sprintf("%s-%d", g.ID, s.Index))
		}
		res.Slots = g
		log.Debug("joint: slots", slog.String("group", g.ID), slog.Int("count", len(g.Slots)))
	}

	if t.Tabs() {
		tp := Tabs(e, params)
		res.Teeth = &tp
		res.Path = np.Splice(e.Index, tp.Commands)
		log.Debug("joint: tabs", slog.Int("steps", tp.Segments), slog.Int("commands", len(tp.Commands)))
	}
	return res, nil
}
