// Package roundplot provides the functionality for the
// roundplot binary as a library.
package roundplot

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/gcode"
	"github.com/paulhankin/roundplot/internal/logging"
	"github.com/paulhankin/roundplot/paths"
	"github.com/paulhankin/roundplot/render"
)

type Config struct {
	In      string
	Out     string
	FullSVG bool    // parse SVG input with the full parser
	Radius  float64 // radius for points that don't give one

	Debug  bool
	Trace  bool // list primitives on Stdout
	Color  bool // colour the trace
	Imgcat bool // show PNG output on Stdout
	Stdout io.Writer

	Delta     paths.Vec2
	Size      paths.Vec2
	PaperSize paths.Vec2
	Center    bool

	PenUp      int
	FeedRate   int
	NativeArcs bool // send arcs to the plotter as arcs

	Tol      float64 // arc flattening tolerance
	Simplify float64
	Sort     bool
	Scale    float64 // PNG pixels per unit
}

// adjustSize works out where on the paper the drawing of bounds b
// goes, given the requested size (either coordinate may be zero to
// keep the aspect ratio), paper size and offset.
func adjustSize(sz, ps, delta paths.Vec2, center bool, b paths.Bounds) (paths.Bounds, error) {
	ow, oh := b.Size()[0], b.Size()[1]
	if ow <= 0 || oh <= 0 {
		return paths.Bounds{}, errors.Errorf("can't resize a drawing of size %g,%g", ow, oh)
	}
	switch {
	case sz[0] == 0 && sz[1] == 0:
		sz = paths.Vec2{ow, oh}
	case sz[1] == 0:
		sz[1] = sz[0] * oh / ow
	case sz[0] == 0:
		sz[0] = sz[1] * ow / oh
	}

	if !(math.Abs(sz[0]/sz[1]-ow/oh) < 1e-3) {
		return paths.Bounds{}, errors.Errorf("target image size %g,%g not compatible with image size %g,%g", sz[0], sz[1], ow, oh)
	}

	if ps[0] != 0 || ps[1] != 0 {
		if ps[0] == 0 || ps[1] == 0 {
			return paths.Bounds{}, errors.Errorf("paper size %g,%g doesn't make sense", ps[0], ps[1])
		}
		if sz[0] > ps[0] || sz[1] > ps[1] {
			return paths.Bounds{}, errors.Errorf("paper size %g,%g is smaller than image %g,%g", ps[0], ps[1], sz[0], sz[1])
		}
	}

	if center {
		if ps[0] == 0 {
			return paths.Bounds{}, errors.Errorf("must set -paper to use -center")
		}
		delta[0] += (ps[0] - sz[0]) / 2
		delta[1] += (ps[1] - sz[1]) / 2
	}

	return paths.Bounds{
		Min: delta,
		Max: sz.Add(delta),
	}, nil
}

// fit moves and scales the drawing as the config asks. Radii are
// scaled with the drawing.
func fit(cfg *Config, d *Drawing) error {
	if cfg.Size == (paths.Vec2{}) && cfg.PaperSize == (paths.Vec2{}) && !cfg.Center && cfg.Delta == (paths.Vec2{}) {
		return nil
	}
	nb, err := adjustSize(cfg.Size, cfg.PaperSize, cfg.Delta, cfg.Center, d.Bounds)
	if err != nil {
		return err
	}
	s := nb.Size()[0] / d.Bounds.Size()[0]
	for _, pl := range d.Polylines {
		for i, cp := range pl {
			pl[i] = corner.ControlPoint{
				Pos: cp.Pos.Sub(d.Bounds.Min).Scale(s).Add(nb.Min),
				R:   cp.R * s,
			}
		}
	}
	d.Bounds = nb
	return nil
}

// draw renders every polyline of d onto s. Each call rounds fresh
// copies of the polylines, so d can be drawn more than once.
func draw(cfg *Config, d *Drawing, s corner.Sink) {
	for _, pl := range d.Polylines {
		corner.NewRoundSet(pl, cfg.Debug).Render(s)
	}
}

// layerColors are the SVG stroke colours of the layers.
var layerColors = map[corner.Layer]string{
	corner.LayerPath:         "black",
	corner.LayerConstruction: "blue",
	corner.LayerTangent:      "red",
}

// plot renders d to polylines, ready to write as SVG or gcode.
func plot(cfg *Config, d *Drawing) *render.Plotter {
	p := render.NewPlotter(cfg.Tol)
	draw(cfg, d, p)
	for _, l := range p.Layers() {
		ps := p.Paths(l)
		if cfg.PaperSize != (paths.Vec2{}) {
			ps.Clip(paths.Bounds{Max: cfg.PaperSize})
		}
		if cfg.Simplify > 0 {
			n := ps.Simplify(cfg.Simplify)
			logging.Logger().Debug("simplified", "layer", l, "removed", n)
		}
		if cfg.Sort {
			ps.Sort(&paths.SortConfig{Reverse: true})
		}
	}
	return p
}

// viewBounds is the region an output file shows.
func viewBounds(cfg *Config, d *Drawing, p *render.Plotter) paths.Bounds {
	if cfg.PaperSize != (paths.Vec2{}) {
		return paths.Bounds{Max: cfg.PaperSize}
	}
	b := d.Bounds
	if len(p.Layers()) > 0 {
		b = b.Union(p.Bounds())
	}
	return b.Expand(1)
}

func writeSVG(cfg *Config, d *Drawing) error {
	p := plot(cfg, d)
	var gs []paths.SVGGroup
	for _, l := range p.Layers() {
		gs = append(gs, paths.SVGGroup{Stroke: layerColors[l], Paths: p.Paths(l)})
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return err
	}
	if err := paths.WriteSVG(f, viewBounds(cfg, d, p), gs...); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write svg file")
	}
	return f.Close()
}

func writePNG(cfg *Config, d *Drawing) error {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 10
	}
	c := render.NewCanvas(viewBounds(cfg, d, plot(cfg, d)), scale, 10)
	draw(cfg, d, c)
	if err := c.SavePNG(cfg.Out); err != nil {
		return errors.Wrap(err, "failed to write png file")
	}
	if cfg.Imgcat {
		if err := imgcat.CatFile(cfg.Out, cfg.Stdout); err != nil {
			return errors.Wrap(err, "showing png")
		}
	}
	return nil
}

func writeGCode(cfg *Config, d *Drawing) error {
	f, err := os.Create(cfg.Out)
	if err != nil {
		return errors.Wrap(err, "failed to open output file")
	}
	gw := gcode.NewWriter(f, &gcode.Config{
		PenUp:    cfg.PenUp,
		FeedRate: cfg.FeedRate,
	})
	gw.Preamble()
	// only the path goes to the plotter.
	pcfg := *cfg
	pcfg.Debug = false
	if cfg.NativeArcs {
		draw(&pcfg, d, render.NewGCode(gw))
	} else {
		ps := plot(&pcfg, d).Paths(corner.LayerPath)
		if ps == nil {
			ps = &paths.Paths{}
		}
		for _, p := range ps.P {
			for i, v := range p.V {
				if i == 0 {
					gw.Move(v[0], v[1])
				} else {
					gw.Line(v[0], v[1])
				}
			}
		}
	}
	gw.Postamble()

	if err := gw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write gcode")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to write gcode")
	}
	return nil
}

// Run loads the input, rounds its corners and writes the output,
// whose format is chosen by the extension of cfg.Out.
func Run(cfg *Config) error {
	if cfg.In == "" {
		return errors.New("input file must be specified")
	}
	if cfg.Out == "" && !cfg.Trace {
		return errors.New("output file must be specified")
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	d, err := Load(cfg)
	if err != nil {
		return err
	}
	if err := fit(cfg, d); err != nil {
		return err
	}
	logging.Logger().Info("loaded drawing", "in", cfg.In, "polylines", len(d.Polylines))

	if cfg.Trace {
		tr := render.NewTrace(cfg.Stdout, cfg.Color)
		draw(cfg, d, tr)
		if err := tr.Err(); err != nil {
			return errors.Wrap(err, "writing trace")
		}
	}
	if cfg.Out == "" {
		return nil
	}

	switch ext := strings.ToLower(filepath.Ext(cfg.Out)); ext {
	case ".svg":
		err = writeSVG(cfg, d)
	case ".png":
		err = writePNG(cfg, d)
	case ".gcode", ".gc", ".nc":
		err = writeGCode(cfg, d)
	default:
		return errors.Errorf("unknown output format %q", ext)
	}
	if err != nil {
		return err
	}
	logging.Logger().Info("wrote output", "out", cfg.Out)
	return nil
}
