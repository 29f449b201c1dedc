package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"

	"github.com/chazu/fingerjoint/pkg/geom"
	"github.com/chazu/fingerjoint/pkg/path"
	"github.com/chazu/fingerjoint/pkg/sheet"
)

// DXF layer names.
const (
	LayerOutline = "OUTLINE"
	LayerSlots   = "SLOTS"
)

// curveSteps is the number of lines a cubic curve is flattened into.
const curveSteps = 8

// line is one straight DXF entity.
type line [2]geom.Point

// lines flattens p into straight lines between consecutive points.
func lines(p path.Path) []line {
	var out []line
	var cur geom.Point
	for _, s := range p {
		switch s.Kind {
		case path.MoveTo:
		case path.CurveTo:
			prev := cur
			for i := 1; i <= curveSteps; i++ {
				pt := cubic(cur, s.C1, s.C2, s.Pt, float64(i)/curveSteps)
				out = append(out, line{prev, pt})
				prev = pt
			}
		default:
			if !cur.Equal(s.Pt) {
				out = append(out, line{cur, s.Pt})
			}
		}
		cur = s.Pt
	}
	return out
}

func cubic(p0, c1, c2, p1 geom.Point, t float64) geom.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// WriteDXF saves s as a DXF drawing: part outlines on the OUTLINE layer
// and slot cutouts on the SLOTS layer, laid out like WriteSVG. DXF is
// y-up, so the layout is mirrored to read the same way as the SVG.
func WriteDXF(filename string, s *sheet.Sheet, opts SVGOptions) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerOutline, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("dxf: %w", err)
	}
	if _, err := d.AddLayer(LayerSlots, dxfcolor.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("dxf: %w", err)
	}

	placements, size := Layout(s, opts.Margin)
	flip := func(p geom.Point, off geom.Vec) (float64, float64) {
		q := p.Add(off)
		return q.X, size.Y - q.Y
	}
	draw := func(p path.Path, off geom.Vec) error {
		for _, l := range lines(p) {
			x1, y1 := flip(l[0], off)
			x2, y2 := flip(l[1], off)
			if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
				return fmt.Errorf("dxf: %w", err)
			}
		}
		return nil
	}

	for _, pl := range placements {
		if err := d.ChangeLayer(LayerOutline); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		if err := draw(pl.Part.Outline, pl.Offset); err != nil {
			return err
		}

		if len(pl.Part.Slots) == 0 {
			continue
		}
		if err := d.ChangeLayer(LayerSlots); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		for _, g := range pl.Part.Slots {
			for _, sl := range g.Slots {
				if err := draw(sl.Path, pl.Offset); err != nil {
					return err
				}
			}
		}
	}

	if err := d.SaveAs(filename); err != nil {
		return fmt.Errorf("dxf: save %s: %w", filename, err)
	}
	return nil
}
