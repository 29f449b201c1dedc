package engine

import (
	"fmt"

	"github.com/chazu/fingerjoint/pkg/graph"
	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/path"
	zygo "github.com/glycerine/zygomys/zygo"
)

// jointKeywords are the parameter keywords accepted by joint-defaults and
// finger-joint.
var jointKeywords = []string{"teeth", "edge-features", "flip", "kerf", "thickness", "gap"}

// applyJointKeywords overrides fields of base from keyword arguments.
func applyJointKeywords(pa kwArgs, base joint.Params) (joint.Params, error) {
	p := base
	if v, ok := pa.kw["teeth"]; ok {
		n, err := toInt(v)
		if err != nil {
			return p, fmt.Errorf("teeth: %w", err)
		}
		p.ToothCount = n
	}
	if v, ok := pa.kw["edge-features"]; ok {
		b, err := toBool(v)
		if err != nil {
			return p, fmt.Errorf("edge-features: %w", err)
		}
		p.IncludeEdgeFeatures = b
	}
	if v, ok := pa.kw["flip"]; ok {
		b, err := toBool(v)
		if err != nil {
			return p, fmt.Errorf("flip: %w", err)
		}
		p.FlipSide = b
	}
	for name, dst := range map[string]*float64{
		"kerf":      &p.Kerf,
		"thickness": &p.Thickness,
		"gap":       &p.GapClearance,
	} {
		v, ok := pa.kw[name]
		if !ok {
			continue
		}
		f, err := toFloat64(v)
		if err != nil {
			return p, fmt.Errorf("%s: %w", name, err)
		}
		*dst = f
	}
	return p, nil
}

// registerBuiltins installs the design DSL into a zygomys environment. The
// builtins populate the graph held by b as the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *graph.Builder) {
	g := b.Graph()

	// -----------------------------------------------------------------------
	// (material :name "birch-ply" :thickness 3 :notes "...")
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.unknown("name", "thickness", "notes"); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		spec := graph.MaterialSpec{}

		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: name: %w", err)
			}
			spec.Name = s
		}
		if v, ok := pa.kw["thickness"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: thickness: %w", err)
			}
			spec.Thickness = f
		}
		if v, ok := pa.kw["notes"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: notes: %w", err)
			}
			spec.Notes = s
		}

		return &sexpMaterial{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (svg-path "M 0 0 L 90 0 L 90 50 L 0 50 Z")
	// -----------------------------------------------------------------------
	env.AddFunction("svg_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("svg-path requires exactly 1 argument, got %d", len(args))
		}
		d, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("svg-path: %w", err)
		}
		p, err := path.ParseSVG(d)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("svg-path: %w", err)
		}
		return &sexpPath{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (rect-path x y width height)
	// -----------------------------------------------------------------------
	env.AddFunction("rect_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rect-path requires exactly 4 arguments, got %d", len(args))
		}
		var v [4]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect-path: argument %d: %w", i+1, err)
			}
			v[i] = f
		}
		return &sexpPath{p: path.Rect(v[0], v[1], v[2], v[3])}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon-path x0 y0 x1 y1 x2 y2 ...)   closed
	// (polyline-path x0 y0 x1 y1 ...)        open
	// (line-path x0 y0 x1 y1)
	// -----------------------------------------------------------------------
	env.AddFunction("polygon_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := toPoints("polygon-path", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPath{p: path.Polygon(pts)}, nil
	})
	env.AddFunction("polyline_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := toPoints("polyline-path", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPath{p: path.Polyline(pts)}, nil
	})
	env.AddFunction("line_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("line-path requires exactly 4 arguments, got %d", len(args))
		}
		pts, err := toPoints("line-path", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPath{p: path.LinePath(pts[0], pts[1])}, nil
	})

	// -----------------------------------------------------------------------
	// (defpanel "name" (rect-path ...) :material ply)
	// -----------------------------------------------------------------------
	env.AddFunction("defpanel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("defpanel requires a name and an outline")
		}
		if err := pa.unknown("material"); err != nil {
			return zygo.SexpNull, fmt.Errorf("defpanel: %w", err)
		}

		panelName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpanel: name: %w", err)
		}
		outline, err := toPath(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpanel %q: outline: %w", panelName, err)
		}

		var mat graph.MaterialSpec
		if v, ok := pa.kw["material"]; ok {
			if mat, err = toMaterial(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("defpanel %q: material: %w", panelName, err)
			}
		}

		id, err := b.Panel(panelName, outline, mat)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpanel: %w", err)
		}
		return &sexpNodeRef{id: id, name: panelName}, nil
	})

	// -----------------------------------------------------------------------
	// (panel "name")
	// -----------------------------------------------------------------------
	env.AddFunction("panel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("panel requires a name argument")
		}
		panelName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("panel: name: %w", err)
		}
		n := g.Lookup(panelName)
		if n == nil || n.Kind != graph.NodePanel {
			return zygo.SexpNull, fmt.Errorf("panel: no panel named %q", panelName)
		}
		return &sexpNodeRef{id: n.ID, name: panelName}, nil
	})

	// -----------------------------------------------------------------------
	// (joint-defaults :teeth 4 :kerf 0.2 :thickness 3 :edge-features true
	//                 :flip true :gap 0.05)
	// -----------------------------------------------------------------------
	env.AddFunction("joint_defaults", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("joint-defaults takes only keyword arguments")
		}
		if err := pa.unknown(jointKeywords...); err != nil {
			return zygo.SexpNull, fmt.Errorf("joint-defaults: %w", err)
		}
		p, err := applyJointKeywords(pa, g.Defaults.Joint)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("joint-defaults: %w", err)
		}
		if err := p.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("joint-defaults: %w", err)
		}
		g.Defaults.Joint = p
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (finger-joint (panel "front") :edge 1 :type :tabs :mate (panel "side")
	//               :teeth 3 :kerf 0.15 ...)
	//
	// Without :thickness the joint takes the mate's material thickness, or
	// the joint defaults when there is no mate.
	// -----------------------------------------------------------------------
	env.AddFunction("finger_joint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("finger-joint requires a panel reference as its only positional argument")
		}
		if err := pa.unknown(append([]string{"edge", "type", "mate"}, jointKeywords...)...); err != nil {
			return zygo.SexpNull, fmt.Errorf("finger-joint: %w", err)
		}

		ref, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("finger-joint: panel: %w", err)
		}
		if n := g.Get(ref.id); n == nil || n.Kind != graph.NodePanel {
			return zygo.SexpNull, fmt.Errorf("finger-joint: %s is not a panel", ref.SexpString(nil))
		}
		jd := graph.JointData{Panel: ref.id, Params: g.Defaults.Joint}

		if v, ok := pa.kw["edge"]; ok {
			if jd.Edge, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("finger-joint: edge: %w", err)
			}
		}
		if v, ok := pa.kw["type"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("finger-joint: type: %w", err)
			}
			if jd.Type, err = joint.ParseType(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("finger-joint: %w", err)
			}
		}
		if v, ok := pa.kw["mate"]; ok {
			mate, err := toNodeRef(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("finger-joint: mate: %w", err)
			}
			jd.Mate = mate.id
			mn := g.Get(mate.id)
			if mn == nil || mn.Kind != graph.NodePanel {
				return zygo.SexpNull, fmt.Errorf("finger-joint: mate %s is not a panel", mate.SexpString(nil))
			}
			if _, explicit := pa.kw["thickness"]; !explicit && mn.Data.(graph.PanelData).Material.Thickness > 0 {
				jd.Params.Thickness = mn.Data.(graph.PanelData).Material.Thickness
			}
		}
		if jd.Params, err = applyJointKeywords(pa, jd.Params); err != nil {
			return zygo.SexpNull, fmt.Errorf("finger-joint: %w", err)
		}

		id, err := b.Joint(jd)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("finger-joint: %w", err)
		}
		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: graph.Vec3{X: v[0], Y: v[1], Z: v[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (place (panel "front") :at (vec3 0 0 3) :rotate (vec3 90 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a node reference as first argument")
		}
		if err := pa.unknown("at", "rotate"); err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		child, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		var at, rot *graph.Vec3
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			at = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			rot = &vec
		}

		return &sexpNodeRef{id: b.Place(child.id, at, rot)}, nil
	})

	// -----------------------------------------------------------------------
	// (assembly "name" (place ...) (panel "front") ...)
	// -----------------------------------------------------------------------
	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("assembly requires a name argument")
		}
		asmName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: name: %w", err)
		}

		var children []graph.NodeID
		for i := 1; i < len(args); i++ {
			ref, err := toNodeRef(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("assembly: child %d: %w", i, err)
			}
			if n := g.Get(ref.id); n != nil && n.Kind == graph.NodeJoint {
				return zygo.SexpNull, fmt.Errorf("assembly: child %d: joints belong to their panel, not an assembly", i)
			}
			children = append(children, ref.id)
		}

		id, err := b.Assembly(asmName, children...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: %w", err)
		}
		return &sexpNodeRef{id: id, name: asmName}, nil
	})
}
