package render

import (
	"math"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/gcode"
	"github.com/paulhankin/roundplot/paths"
)

// minArcRadius is the smallest arc radius sent to the plotter as an
// arc; smaller arcs are dropped.
const minArcRadius = 1e-6

// GCode streams the path layer to a gcode writer, keeping arcs as
// native arc moves. Other layers are not drawn.
type GCode struct {
	w       *gcode.Writer
	layer   corner.Layer
	started bool
}

// NewGCode returns a sink writing to w. The caller writes the preamble
// and postamble.
func NewGCode(w *gcode.Writer) *GCode {
	return &GCode{w: w, layer: corner.LayerPath}
}

func (g *GCode) pos() paths.Vec2 {
	x, y := g.w.Pos()
	return paths.Vec2{x, y}
}

// moveTo moves the pen to p, unless it's already there.
func (g *GCode) moveTo(p paths.Vec2) {
	if g.started && g.pos().Dist(p) <= 1e-9 {
		return
	}
	g.w.Move(p[0], p[1])
	g.started = true
}

func (g *GCode) Line(p, q paths.Vec2) {
	if g.layer != corner.LayerPath {
		return
	}
	g.moveTo(p)
	g.w.Line(q[0], q[1])
}

func (g *GCode) Arc(c paths.Vec2, r, start, end float64) {
	if g.layer != corner.LayerPath || math.Abs(r) < minArcRadius {
		return
	}
	a := corner.Arc{Center: c, Radius: r, Start: start, End: end}
	if g.started {
		a = a.From(g.pos())
	}
	from, to := a.StartPoint(), a.EndPoint()
	g.moveTo(from)
	off := c.Sub(from)
	g.w.Arc(to[0], to[1], off[0], off[1], a.End > a.Start)
}

func (g *GCode) Circle(c paths.Vec2, r float64) {
	if g.layer != corner.LayerPath || math.Abs(r) < minArcRadius {
		return
	}
	from := c.Add(paths.Vec2{r, 0})
	g.moveTo(from)
	g.w.Arc(from[0], from[1], -r, 0, true)
}

func (g *GCode) Layer() corner.Layer     { return g.layer }
func (g *GCode) SetLayer(l corner.Layer) { g.layer = l }
