package main

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/samber/lo"

	"github.com/chazu/fingerjoint/pkg/engine"
	"github.com/chazu/fingerjoint/pkg/export"
	"github.com/chazu/fingerjoint/pkg/graph"
	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/kernel"
	"github.com/chazu/fingerjoint/pkg/kernel/sdfx"
	"github.com/chazu/fingerjoint/pkg/path"
	"github.com/chazu/fingerjoint/pkg/sheet"
	"github.com/chazu/fingerjoint/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
	svg    export.SVGOptions
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	NodeID  string `json:"nodeId,omitempty"`
}

// SlotGroupData is one slot group as SVG path data.
type SlotGroupData struct {
	ID    string   `json:"id"`
	IDs   []string `json:"ids"`
	Paths []string `json:"paths"`
}

// PartData is a cut part as SVG path data.
type PartData struct {
	Name     string          `json:"name"`
	Outline  string          `json:"outline"`
	Slots    []SlotGroupData `json:"slots"`
	Color    string          `json:"color"`
	Warnings []string        `json:"warnings"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Parts    []PartData      `json:"parts"`
	SheetSVG string          `json:"sheetSvg"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// JointRequest asks for a single joint on one edge of a path.
type JointRequest struct {
	PathData string        `json:"pathData"`
	Edge     int           `json:"edge"`
	Type     string        `json:"type"`             // both, tabs or slots; empty is both
	Params   *joint.Params `json:"params,omitempty"` // nil means defaults
}

// JointResponse is the rewritten path and any slots.
type JointResponse struct {
	PathData string         `json:"pathData"`
	Slots    *SlotGroupData `json:"slots,omitempty"`
	Warnings []string       `json:"warnings"`
	Error    string         `json:"error,omitempty"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
		svg:    export.DefaultSVGOptions(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func nodeRef(id graph.NodeID) string {
	if id.IsZero() {
		return ""
	}
	return id.String()
}

func slotGroupData(g joint.SlotGroup) SlotGroupData {
	return SlotGroupData{
		ID:    g.ID,
		IDs:   g.IDs,
		Paths: lo.Map(g.Slots, func(s joint.Slot, _ int) string { return s.Path.SVG() }),
	}
}

// Evaluate takes DSL source and returns meshes, the cut sheet and errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Parts:    []PartData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate and validate the source into a design graph.
	res := a.engine.EvaluateAndValidate(source)
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:    w.Line,
			Col:     w.Col,
			Message: w.Message,
			NodeID:  nodeRef(w.NodeID),
		})
	}
	if !res.OK() {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
				NodeID:  nodeRef(e.NodeID),
			})
		}
		return result
	}

	// Step 2: Apply every joint to its panel.
	s, err := sheet.Build(res.Graph, nil)
	if err != nil {
		log.Printf("Cut sheet error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "cut sheet failed: " + err.Error()})
		return result
	}
	colors := make(map[string]string, len(s.Parts))
	for i, p := range s.Parts {
		colors[p.Name] = colorPalette[i%len(colorPalette)]
		result.Parts = append(result.Parts, PartData{
			Name:    p.Name,
			Outline: p.Outline.SVG(),
			Slots: lo.Map(p.Slots, func(g sheet.SlotGroup, _ int) SlotGroupData {
				return slotGroupData(g.SlotGroup)
			}),
			Color:    colors[p.Name],
			Warnings: append([]string{}, p.Warnings...),
		})
	}

	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, s, a.svg); err != nil {
		log.Printf("SVG export error: %v", err)
	}
	result.SheetSVG = buf.String()

	// Step 3: Tessellate the placed panels into triangle meshes.
	meshes, err := tessellate.TessellateSheet(res.Graph, s, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	for _, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colors[m.PartName],
		})
	}

	return result
}

// GenerateJoint applies one joint to a single path. Parameters are
// validated here; the generators themselves accept anything.
func (a *App) GenerateJoint(req JointRequest) JointResponse {
	resp := JointResponse{Warnings: []string{}}
	fail := func(err error) JointResponse {
		log.Printf("GenerateJoint error: %v", err)
		resp.Error = err.Error()
		return resp
	}

	p, err := path.ParseSVG(req.PathData)
	if err != nil {
		return fail(err)
	}
	t, err := joint.ParseType(req.Type)
	if err != nil {
		return fail(err)
	}
	params := joint.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}
	if err := params.Validate(); err != nil {
		return fail(err)
	}

	res, err := joint.Apply(p, req.Edge, t, params, nil)
	if err != nil {
		return fail(fmt.Errorf("edge %d: %w", req.Edge, err))
	}
	resp.PathData = res.Path.SVG()
	resp.Warnings = append(resp.Warnings, res.Warnings...)
	if res.Slots != nil {
		sg := slotGroupData(*res.Slots)
		resp.Slots = &sg
	}
	return resp
}
