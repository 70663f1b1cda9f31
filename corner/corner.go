// Package corner rounds the corners of polylines.
//
// Each interior vertex of a polyline is replaced by a circular arc of
// the radius requested at that vertex, tangent to both segments that
// meet there. The result is a sequence of straight segments and arcs
// drawn onto a Sink:
//
//	rs := corner.NewRoundSet(nil, false)
//	rs.Append(0, 0, 0)
//	rs.Append(10, 0, 2)
//	rs.Append(10, 10, 0)
//	rs.Render(sink)
//
// Corners are processed left to right. Each rounded corner's outgoing
// tangent point becomes the start of the next straight run, so
// consecutive corners join without extra segments.
package corner

import (
	"log/slog"
	"strconv"

	"github.com/paulhankin/roundplot/internal/logging"
	"github.com/paulhankin/roundplot/paths"
)

// SetLogger configures the logger used by roundplot and all its
// packages. By default nothing is logged. Pass nil to silence logging
// again. It is safe to call concurrently with rendering.
//
// Corners that can't be rounded are reported at [slog.LevelDebug].
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// A ControlPoint is a vertex of a polyline, with the radius to round
// the polyline's corner at that vertex. The radius of the first and
// last points is unused.
type ControlPoint struct {
	Pos paths.Vec2
	R   float64
}

// Pt is shorthand for a ControlPoint at (x, y) with radius r.
func Pt(x, y, r float64) ControlPoint {
	return ControlPoint{Pos: paths.Vec2{x, y}, R: r}
}

// A RoundSet is a polyline to be drawn with rounded corners.
type RoundSet struct {
	points []ControlPoint
	debug  bool
}

// NewRoundSet returns a RoundSet of a copy of the given points. If
// debug is set, Render also draws construction geometry.
func NewRoundSet(points []ControlPoint, debug bool) *RoundSet {
	return &RoundSet{
		points: append([]ControlPoint(nil), points...),
		debug:  debug,
	}
}

// Append adds a point to the end of the polyline. The radius isn't
// validated: zero gives a sharp corner drawn as a zero-size arc.
func (rs *RoundSet) Append(x, y, r float64) {
	rs.points = append(rs.points, Pt(x, y, r))
}

// Points returns a copy of the set's points. After Render, each
// rounded corner's position is its outgoing tangent point.
func (rs *RoundSet) Points() []ControlPoint {
	return append([]ControlPoint(nil), rs.points...)
}

// Len returns the number of points in the set.
func (rs *RoundSet) Len() int {
	return len(rs.points)
}

// visitFunc is called for each window of three consecutive points.
// from is where the straight run into the corner starts: the previous
// corner's outgoing tangent point, or the original point if that
// corner wasn't rounded.
type visitFunc func(i int, from paths.Vec2, vertex, next ControlPoint, c Corner, ok bool)

// walk visits every corner of points in order and returns the chained
// points: each rounded corner moved to its outgoing tangent point.
// points is not modified.
func walk(points []ControlPoint, visit visitFunc) []ControlPoint {
	chained := append([]ControlPoint(nil), points...)
	if len(points) < 3 {
		return chained
	}
	from := points[0].Pos
	for i := 0; i+2 < len(points); i++ {
		vertex, next := points[i+1], points[i+2]
		c, ok := Fillet(from, vertex.Pos, next.Pos, vertex.R)
		if !ok {
			logging.Logger().Debug("corner left sharp",
				"index", i+1, "x", vertex.Pos[0], "y", vertex.Pos[1])
		}
		visit(i, from, vertex, next, c, ok)
		if ok {
			chained[i+1].Pos = c.Out
			from = c.Out
		} else {
			from = vertex.Pos
		}
	}
	return chained
}

// emit appends the primitives for one window. last is set for the
// final window, which also draws the run to the end of the polyline.
func emit(prims []Primitive, from paths.Vec2, next ControlPoint, c Corner, last bool) []Primitive {
	prims = append(prims, Segment{P: from, Q: c.In}, c.Arc())
	if last {
		prims = append(prims, Segment{P: c.Out, Q: next.Pos})
	}
	return prims
}

// Plan returns the primitives that draw points with rounded corners,
// in drawing order, together with the chained points (see Points).
// Corners that can't be rounded contribute nothing. Fewer than three
// points give no primitives.
func Plan(points []ControlPoint) ([]Primitive, []ControlPoint) {
	var prims []Primitive
	chained := walk(points, func(i int, from paths.Vec2, _, next ControlPoint, c Corner, ok bool) {
		if ok {
			prims = emit(prims, from, next, c, i+3 == len(points))
		}
	})
	return prims, chained
}

// Render draws the polyline with rounded corners onto s, and replaces
// the set's points with the chained points. Construction geometry is
// drawn too if the set was created with debug set.
func (rs *RoundSet) Render(s Sink) {
	rs.RenderDebug(s, rs.debug)
}

// Sizes of debug geometry, in drawing units.
const (
	pointMarker    = 0.1
	tangentMarker  = 0.05
	bisectorLength = 0.5
)

// RenderDebug is like Render, but debug overrides the set's setting.
func (rs *RoundSet) RenderDebug(s Sink, debug bool) {
	if debug {
		lb, canLabel := s.(Labeler)
		for i, p := range rs.points {
			withLayer(s, LayerConstruction, func() {
				s.Circle(p.Pos, pointMarker)
				if canLabel {
					lb.Label(p.Pos, strconv.Itoa(i))
				}
			})
		}
	}
	n := len(rs.points)
	rs.points = walk(rs.points, func(i int, from paths.Vec2, vertex, next ControlPoint, c Corner, ok bool) {
		if debug {
			withLayer(s, LayerConstruction, func() {
				s.Line(from, vertex.Pos)
				s.Line(vertex.Pos, next.Pos)
			})
		}
		if !ok {
			return
		}
		if debug {
			drawConstruction(s, c)
		}
		for _, p := range emit(nil, from, next, c, i+3 == n) {
			p.Draw(s)
		}
	})
}

func drawConstruction(s Sink, c Corner) {
	withLayer(s, LayerConstruction, func() {
		s.Circle(c.Center, c.Radius)
	})
	withLayer(s, LayerTangent, func() {
		s.Circle(c.In, tangentMarker)
		s.Circle(c.Out, tangentMarker)
	})
	withLayer(s, LayerTangent, func() {
		s.Line(c.Vertex, c.Vertex.Add(c.Bisector.Scale(bisectorLength)))
	})
}
