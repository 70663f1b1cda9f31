package corner

import (
	"fmt"

	"github.com/paulhankin/roundplot/paths"
)

// A Layer selects the pen (or stroke style) a sink draws with.
type Layer int

const (
	// LayerPath is the rounded path itself.
	LayerPath Layer = 1 + iota
	// LayerConstruction holds debug markers, reference lines and
	// construction circles.
	LayerConstruction
	// LayerTangent holds debug tangent points and bisectors.
	LayerTangent
)

func (l Layer) String() string {
	switch l {
	case LayerPath:
		return "path"
	case LayerConstruction:
		return "construction"
	case LayerTangent:
		return "tangent"
	}
	return fmt.Sprintf("layer%d", int(l))
}

// A Sink receives drawing primitives.
//
// Arc angles are measured in the sink's own coordinate frame: the
// point at angle a is center + radius*(cos a, sin a), and the arc is
// swept from start to end in the direction of end-start.
type Sink interface {
	Line(p, q paths.Vec2)
	Arc(center paths.Vec2, radius, start, end float64)
	Circle(center paths.Vec2, radius float64)
	Layer() Layer
	SetLayer(Layer)
}

// A Labeler is a Sink that can also draw text.
type Labeler interface {
	Label(p paths.Vec2, text string)
}

// withLayer runs draw with the sink switched to layer l, and switches
// back to the sink's previous layer however draw returns.
func withLayer(s Sink, l Layer, draw func()) {
	prev := s.Layer()
	s.SetLayer(l)
	defer s.SetLayer(prev)
	draw()
}

// A Primitive is a piece of output geometry.
type Primitive interface {
	Draw(Sink)
}

// Segment is a straight line from P to Q.
type Segment struct {
	P, Q paths.Vec2
}

func (s Segment) Draw(sk Sink) { sk.Line(s.P, s.Q) }

func (s Segment) String() string {
	return fmt.Sprintf("line (%.3f, %.3f) -> (%.3f, %.3f)", s.P[0], s.P[1], s.Q[0], s.Q[1])
}

// Arc is a circular arc around Center, from angle Start to angle End.
type Arc struct {
	Center     paths.Vec2
	Radius     float64
	Start, End float64
}

func (a Arc) Draw(sk Sink) { sk.Arc(a.Center, a.Radius, a.Start, a.End) }

func (a Arc) String() string {
	return fmt.Sprintf("arc c=(%.3f, %.3f) r=%.3f %.4f -> %.4f", a.Center[0], a.Center[1], a.Radius, a.Start, a.End)
}

// StartPoint returns the point where the arc begins.
func (a Arc) StartPoint() paths.Vec2 { return a.Center.Polar(a.Radius, a.Start) }

// EndPoint returns the point where the arc finishes.
func (a Arc) EndPoint() paths.Vec2 { return a.Center.Polar(a.Radius, a.End) }

// Reversed returns the same arc traced in the other direction.
func (a Arc) Reversed() Arc {
	a.Start, a.End = a.End, a.Start
	return a
}

// From returns the arc traced in whichever direction starts nearer
// to p, so a pen at p can continue along it.
func (a Arc) From(p paths.Vec2) Arc {
	if a.EndPoint().Dist(p) < a.StartPoint().Dist(p) {
		return a.Reversed()
	}
	return a
}
