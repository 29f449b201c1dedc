package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/graph"
	"github.com/chazu/fingerjoint/pkg/path"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMaterial wraps a graph.MaterialSpec so it can be passed between builtins.
type sexpMaterial struct {
	spec graph.MaterialSpec
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material :name %q :thickness %g)", m.spec.Name, m.spec.Thickness)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// sexpPath wraps an outline returned by svg-path, rect-path and
// polygon-path and consumed by defpanel.
type sexpPath struct {
	p path.Path
}

func (p *sexpPath) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(svg-path %q)", p.p.SVG())
}
func (p *sexpPath) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. A keyword
// in last position has no value and maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		switch {
		case !ok:
			result.positional = append(result.positional, args[i])
		case i+1 < len(args):
			result.kw[name] = args[i+1]
			i++
		default:
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// unknown returns an error naming the first keyword not in allowed.
func (a kwArgs) unknown(allowed ...string) error {
	for name := range a.kw {
		found := false
		for _, ok := range allowed {
			if name == ok {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown keyword :%s", name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func sexpText(s zygo.Sexp) string {
	if s == nil {
		return "nil"
	}
	return s.SexpString(nil)
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, sexpText(s))
}

// toInt extracts an integer; floats are accepted when they are whole.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, sexpText(s))
}

// toBool accepts true/false and the keywords :yes/:no.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	if name, ok := isKW(s); ok {
		switch name {
		case "yes", "true":
			return true, nil
		case "no", "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, sexpText(s))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, sexpText(s))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_tabs) and plain strings ("tabs").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, err := toString(s)
	if err != nil {
		return "", fmt.Errorf("expected keyword or string: %w", err)
	}
	return strings.TrimPrefix(str, kwPrefix), nil
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (*sexpNodeRef, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref, nil
	}
	return nil, fmt.Errorf("expected node reference, got %T (%s)", s, sexpText(s))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (graph.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return graph.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, sexpText(s))
}

// toMaterial extracts a MaterialSpec from a sexpMaterial.
func toMaterial(s zygo.Sexp) (graph.MaterialSpec, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.spec, nil
	}
	return graph.MaterialSpec{}, fmt.Errorf("expected material, got %T (%s)", s, sexpText(s))
}

// toPath extracts an outline from a sexpPath, or parses a string as SVG
// path data.
func toPath(s zygo.Sexp) (path.Path, error) {
	switch v := s.(type) {
	case *sexpPath:
		return v.p, nil
	case *zygo.SexpStr:
		return path.ParseSVG(v.S)
	}
	return nil, fmt.Errorf("expected path, got %T (%s)", s, sexpText(s))
}

// toPoints reads flat x y pairs; at least min points are required.
func toPoints(fn string, args []zygo.Sexp, min int) ([]geom.Point, error) {
	if len(args) < 2*min || len(args)%2 != 0 {
		return nil, fmt.Errorf("%s requires at least %d x y pairs, got %d numbers", fn, min, len(args))
	}
	pts := make([]geom.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := toFloat64(args[i])
		if err != nil {
			return nil, fmt.Errorf("%s: point %d: x: %w", fn, i/2, err)
		}
		y, err := toFloat64(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: point %d: y: %w", fn, i/2, err)
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	return pts, nil
}
