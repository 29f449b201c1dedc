// Package export writes cut sheets as SVG documents and DXF drawings.
package export

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/samber/lo"

	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/path"
	"github.com/chazu/fingerjoint/pkg/sheet"
)

const (
	OutlineStroke = "#000000"
	SlotStroke    = "#FF0000"

	// MinStrokeWidth is the hairline used when the kerf is smaller.
	MinStrokeWidth = 0.1
)

// SVGOptions configures WriteSVG.
type SVGOptions struct {
	Margin float64 // gap around and between parts, in document units
}

// DefaultSVGOptions returns the options used by the CLI and the desktop app.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Margin: 10}
}

// Placement is where a part lands on the exported sheet.
type Placement struct {
	Part   *sheet.Part
	Offset geom.Vec // added to every part coordinate
	Size   geom.Vec
}

// Layout places parts left to right in sheet order, each separated by
// margin, and returns the placements and overall document size.
func Layout(s *sheet.Sheet, margin float64) ([]Placement, geom.Vec) {
	out := make([]Placement, 0, len(s.Parts))
	x := margin
	for i := range s.Parts {
		p := &s.Parts[i]
		bmin, bmax := p.Bounds()
		size := bmax.Sub(bmin)
		out = append(out, Placement{
			Part:   p,
			Offset: geom.Vec{X: x - bmin.X, Y: margin - bmin.Y},
			Size:   size,
		})
		x += size.X + margin
	}
	h := lo.Max(lo.Map(out, func(pl Placement, _ int) float64 { return pl.Size.Y }))
	return out, geom.Vec{X: x, Y: h + 2*margin}
}

// SlotStrokeWidth is the stroke width of a slot group: the kerf, but never
// thinner than MinStrokeWidth.
func SlotStrokeWidth(kerf float64) float64 {
	return math.Max(kerf, MinStrokeWidth)
}

func num(f float64) string {
	return strconv.FormatFloat(geom.Round(f), 'f', -1, 64)
}

func translate(p path.Path, by geom.Vec) path.Path {
	out := p.Clone()
	for i := range out {
		out[i].Pt = out[i].Pt.Add(by)
		if out[i].Kind == path.CurveTo {
			out[i].C1 = out[i].C1.Add(by)
			out[i].C2 = out[i].C2.Add(by)
		}
	}
	return out
}

// WriteSVG writes s as a standalone SVG document. Every part outline is a
// path with the part name as id; every slot group is a group with the slot
// group id holding one path per slot.
func WriteSVG(w io.Writer, s *sheet.Sheet, opts SVGOptions) error {
	cw := &errWriter{w: w}
	canvas := svg.New(cw)

	placements, size := Layout(s, opts.Margin)
	units := s.Units
	if units == "" {
		units = "mm"
	}
	canvas.Startraw(
		fmt.Sprintf(`width="%s%s"`, num(size.X), units),
		fmt.Sprintf(`height="%s%s"`, num(size.Y), units),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, num(size.X), num(size.Y)),
	)
	for _, pl := range placements {
		part := pl.Part
		canvas.Path(translate(part.Outline, pl.Offset).SVG(),
			`id="`+html.EscapeString(part.Name)+`"`,
			`fill="none"`,
			`stroke="`+OutlineStroke+`"`,
			`stroke-width="`+num(MinStrokeWidth)+`"`,
		)
		for _, g := range part.Slots {
			canvas.Group(
				fmt.Sprintf(`id="%s"`, g.ID),
				`fill="none"`,
				`stroke="`+SlotStroke+`"`,
				`stroke-width="`+num(SlotStrokeWidth(g.Kerf))+`"`,
			)
			for i, sl := range g.Slots {
				canvas.Path(translate(sl.Path, pl.Offset).SVG(), fmt.Sprintf(`id="%s"`, g.IDs[i]))
			}
			canvas.Gend()
		}
	}
	canvas.End()
	return cw.err
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
