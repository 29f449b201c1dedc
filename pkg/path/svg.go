package path

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/fingerjoint/pkg/geom"
	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// SyntaxError reports malformed SVG path data.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("path data: offset %d: %s", e.Offset, e.Msg)
}

// ----------------------------------------------------------------------------
// Parsing
// ----------------------------------------------------------------------------

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

type svgParser struct {
	b []byte
	i int
}

func (ps *svgParser) num() (float64, error) {
	ps.i += skipCommaWhitespace(ps.b[ps.i:])
	f, n := parsestrconv.ParseFloat(ps.b[ps.i:])
	if n == 0 {
		return 0, &SyntaxError{Offset: ps.i, Msg: "expected number"}
	}
	ps.i += n
	return f, nil
}

func (ps *svgParser) point() (geom.Point, error) {
	x, err := ps.num()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := ps.num()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: x, Y: y}, nil
}

// flag parses an arc flag, which may be written without a separator.
func (ps *svgParser) flag() error {
	ps.i += skipCommaWhitespace(ps.b[ps.i:])
	if ps.i < len(ps.b) && (ps.b[ps.i] == '0' || ps.b[ps.i] == '1') {
		ps.i++
		return nil
	}
	return &SyntaxError{Offset: ps.i, Msg: "expected arc flag"}
}

// ParseSVG parses SVG path data. Quadratic Béziers are elevated to cubics;
// arcs become a CurveTo with exact end point and control points on the
// chord, since only terminal points matter to edge resolution.
func ParseSVG(d string) (Path, error) {
	ps := &svgParser{b: []byte(d)}
	var p Path
	var cur, start, ctrl geom.Point
	var prevCmd byte

	ps.i = skipCommaWhitespace(ps.b)
	for ps.i < len(ps.b) {
		cmd := prevCmd
		if isCommand(ps.b[ps.i]) {
			cmd = ps.b[ps.i]
			ps.i++
		} else if prevCmd == 0 || prevCmd == 'Z' || prevCmd == 'z' {
			return nil, &SyntaxError{Offset: ps.i, Msg: fmt.Sprintf("unexpected %q, expected command", ps.b[ps.i])}
		}
		if len(p) == 0 && cmd != 'M' && cmd != 'm' {
			return nil, &SyntaxError{Offset: ps.i - 1, Msg: "path data must start with a moveto"}
		}

		rel := cmd >= 'a'
		var origin geom.Point
		if rel {
			origin = cur
		}

		switch cmd {
		case 'M', 'm':
			pt, err := ps.point()
			if err != nil {
				return nil, err
			}
			cur = origin.Add(pt)
			start = cur
			p = append(p, Move(cur))
			// Subsequent pairs are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			pt, err := ps.point()
			if err != nil {
				return nil, err
			}
			cur = origin.Add(pt)
			p = append(p, Line(cur))
		case 'H', 'h':
			x, err := ps.num()
			if err != nil {
				return nil, err
			}
			cur = geom.Point{X: origin.X + x, Y: cur.Y}
			p = append(p, Line(cur))
		case 'V', 'v':
			y, err := ps.num()
			if err != nil {
				return nil, err
			}
			cur = geom.Point{X: cur.X, Y: origin.Y + y}
			p = append(p, Line(cur))
		case 'C', 'c':
			var pts [3]geom.Point
			for k := range pts {
				pt, err := ps.point()
				if err != nil {
					return nil, err
				}
				pts[k] = origin.Add(pt)
			}
			p = append(p, Curve(pts[0], pts[1], pts[2]))
			ctrl, cur = pts[1], pts[2]
		case 'S', 's':
			c1 := cur
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				c1 = cur.Add(cur.Sub(ctrl))
			}
			c2, err := ps.point()
			if err != nil {
				return nil, err
			}
			end, err := ps.point()
			if err != nil {
				return nil, err
			}
			c2, end = origin.Add(c2), origin.Add(end)
			p = append(p, Curve(c1, c2, end))
			ctrl, cur = c2, end
		case 'Q', 'q', 'T', 't':
			q := cur
			if cmd == 'Q' || cmd == 'q' {
				pt, err := ps.point()
				if err != nil {
					return nil, err
				}
				q = origin.Add(pt)
			} else if strings.IndexByte("QqTt", prevCmd) >= 0 {
				q = cur.Add(cur.Sub(ctrl))
			}
			pt, err := ps.point()
			if err != nil {
				return nil, err
			}
			end := origin.Add(pt)
			p = append(p, Curve(lerp(cur, q, 2.0/3.0), lerp(end, q, 2.0/3.0), end))
			ctrl, cur = q, end
		case 'A', 'a':
			for k := 0; k < 3; k++ {
				if _, err := ps.num(); err != nil {
					return nil, err
				}
			}
			if err := ps.flag(); err != nil {
				return nil, err
			}
			if err := ps.flag(); err != nil {
				return nil, err
			}
			pt, err := ps.point()
			if err != nil {
				return nil, err
			}
			end := origin.Add(pt)
			p = append(p, Curve(cur, end, end))
			cur = end
		case 'Z', 'z':
			p = append(p, Close(start))
			cur = start
		}
		prevCmd = cmd
		ps.i += skipCommaWhitespace(ps.b[ps.i:])
	}
	return p, nil
}

func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// MustParseSVG is like ParseSVG but panics on malformed input.
func MustParseSVG(d string) Path {
	p, err := ParseSVG(d)
	if err != nil {
		panic(err)
	}
	return p
}

// ----------------------------------------------------------------------------
// Formatting
// ----------------------------------------------------------------------------

// ftos writes f at geom.Precision without trailing zeros.
func ftos(f float64) string {
	f = geom.Round(f)
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writePoint(sb *strings.Builder, pt geom.Point) {
	sb.WriteString(ftos(pt.X))
	sb.WriteByte(' ')
	sb.WriteString(ftos(pt.Y))
}

// SVG formats p as SVG path data using absolute commands.
func (p Path) SVG() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Kind.String())
		switch s.Kind {
		case MoveTo, LineTo:
			writePoint(&sb, s.Pt)
		case CurveTo:
			writePoint(&sb, s.C1)
			sb.WriteByte(' ')
			writePoint(&sb, s.C2)
			sb.WriteByte(' ')
			writePoint(&sb, s.Pt)
		}
	}
	return sb.String()
}

func (p Path) String() string {
	return p.SVG()
}
