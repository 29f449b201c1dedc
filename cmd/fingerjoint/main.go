package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tdewolff/argp"

	"github.com/chazu/fingerjoint/pkg/engine"
	"github.com/chazu/fingerjoint/pkg/export"
	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/path"
	"github.com/chazu/fingerjoint/pkg/sheet"
)

type Joint struct {
	Data         string  `short:"d" desc:"SVG path data to put the joint on"`
	Script       string  `short:"s" desc:"Design file; cuts every panel in it"`
	Edge         int     `short:"e" default:"0" desc:"Edge index"`
	Type         string  `short:"t" default:"both" desc:"Joint type: both, tabs or slots"`
	Teeth        int     `short:"n" default:"3" desc:"Number of tabs"`
	EdgeFeatures bool    `name:"edge-features" default:"true" desc:"Put tabs at both ends of the edge"`
	Flip         bool    `default:"true" desc:"Flip the side the tabs stand out on"`
	Kerf         float64 `short:"k" default:"0.15" desc:"Kerf width"`
	Thickness    float64 `default:"3" desc:"Material thickness"`
	Gap          float64 `default:"0" desc:"Extra slot width for fit"`
	Format       string  `short:"f" default:"d" desc:"Output format: d, svg or dxf"`
	Output       string  `short:"o" desc:"Output file, stdout when empty"`
	Verbose      bool    `short:"v" desc:"Log joint generation to stderr"`
}

func main() {
	root := argp.NewCmd(&Joint{}, "Laser-cut finger joint generator")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Joint) Run() error {
	if cmd.Verbose {
		joint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var s *sheet.Sheet
	var err error
	switch {
	case cmd.Script != "":
		s, err = cmd.scriptSheet()
	case cmd.Data != "":
		s, err = cmd.pathSheet()
	default:
		return argp.ShowUsage
	}
	if err != nil {
		return err
	}
	return cmd.write(s)
}

func (cmd *Joint) params() (joint.Params, error) {
	p := joint.Params{
		ToothCount:          cmd.Teeth,
		IncludeEdgeFeatures: cmd.EdgeFeatures,
		FlipSide:            cmd.Flip,
		Kerf:                cmd.Kerf,
		Thickness:           cmd.Thickness,
		GapClearance:        cmd.Gap,
	}
	return p, p.Validate()
}

// pathSheet applies one joint to the path data and wraps the result as a
// single-part sheet.
func (cmd *Joint) pathSheet() (*sheet.Sheet, error) {
	p, err := path.ParseSVG(cmd.Data)
	if err != nil {
		return nil, err
	}
	t, err := joint.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}
	params, err := cmd.params()
	if err != nil {
		return nil, err
	}

	res, err := joint.Apply(p, cmd.Edge, t, params, nil)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	part := sheet.Part{
		Name:     "path",
		Outline:  res.Path,
		Warnings: res.Warnings,
	}
	if res.Slots != nil {
		part.Slots = []sheet.SlotGroup{{SlotGroup: *res.Slots, Kerf: params.Kerf}}
	}
	return &sheet.Sheet{Units: "mm", Parts: []sheet.Part{part}}, nil
}

// scriptSheet evaluates a design file and builds its cut sheet.
func (cmd *Joint) scriptSheet() (*sheet.Sheet, error) {
	src, err := os.ReadFile(cmd.Script)
	if err != nil {
		return nil, err
	}

	res := engine.NewEngine().EvaluateAndValidate(string(src))
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", cmd.Script, w.Message)
	}
	if !res.OK() {
		errs := make([]error, 0, len(res.Errors))
		for _, e := range res.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", cmd.Script, e))
		}
		return nil, errors.Join(errs...)
	}
	return sheet.Build(res.Graph, nil)
}

func (cmd *Joint) write(s *sheet.Sheet) error {
	if cmd.Format == "dxf" {
		if cmd.Output == "" {
			return fmt.Errorf("dxf output needs a file name (-o)")
		}
		return export.WriteDXF(cmd.Output, s, export.DefaultSVGOptions())
	}

	w := io.Writer(os.Stdout)
	if cmd.Output != "" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch cmd.Format {
	case "svg":
		return export.WriteSVG(w, s, export.DefaultSVGOptions())
	case "d", "":
		return writePathData(w, s)
	default:
		return fmt.Errorf("unknown format %q, expected d, svg or dxf", cmd.Format)
	}
}

// writePathData prints one line per outline and per slot: the id, a tab
// and the path data.
func writePathData(w io.Writer, s *sheet.Sheet) error {
	for _, p := range s.Parts {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Outline.SVG()); err != nil {
			return err
		}
		for _, g := range p.Slots {
			for i, sl := range g.Slots {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", g.IDs[i], sl.Path.SVG()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
