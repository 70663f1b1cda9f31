package corner

import (
	"math"

	"github.com/paulhankin/roundplot/paths"
)

// eps is the threshold below which lengths and angles are treated as
// zero when deciding whether a corner can be rounded.
const eps = 1e-10

// A Corner is the geometry of one rounded corner: the circle of the
// requested radius tangent to both segments meeting at the vertex,
// and the arc of it that replaces the vertex.
type Corner struct {
	Vertex   paths.Vec2
	Radius   float64
	InDir    paths.Vec2 // unit vector along the incoming segment, towards Vertex
	OutDir   paths.Vec2 // unit vector along the outgoing segment, away from Vertex
	Theta    float64    // interior angle between the two segments
	Tangent  float64    // distance from Vertex to each tangent point
	In, Out  paths.Vec2 // tangent points on the incoming and outgoing segments
	Bisector paths.Vec2 // unit vector from Vertex towards Center
	Distance float64    // distance from Vertex to Center
	Center   paths.Vec2
	// Start and End are the angles of the arc around Center. The arc
	// runs in the direction of End-Start and never spans more than pi.
	Start, End float64
}

// Fillet computes the corner that rounds the vertex g between the
// segments a-g and g-b with the given radius. It reports false if the
// corner is degenerate: a segment of (nearly) zero length, or
// segments that are (nearly) collinear or fully folded back.
//
// The radius is not checked against the segment lengths; a radius
// too large for the segments gives tangent points beyond them.
func Fillet(a, g, b paths.Vec2, radius float64) (Corner, bool) {
	in, inLen := g.Sub(a).Unit()
	out, outLen := b.Sub(g).Unit()
	if inLen < eps || outLen < eps {
		return Corner{}, false
	}

	dot := math.Max(-1, math.Min(1, in.Dot(out.Scale(-1))))
	theta := math.Acos(dot)
	if theta < eps || theta > math.Pi-eps {
		return Corner{}, false
	}

	c := Corner{
		Vertex: g,
		Radius: radius,
		InDir:  in,
		OutDir: out,
		Theta:  theta,
	}
	c.Tangent = radius / math.Tan(theta/2)
	c.In = g.Sub(in.Scale(c.Tangent))
	c.Out = g.Add(out.Scale(c.Tangent))

	bis, bisLen := out.Sub(in).Unit()
	if bisLen < eps {
		// only reachable for near-parallel segments; the side is arbitrary.
		bis = paths.Vec2{in[1], -in[0]}
	}
	c.Bisector = bis
	c.Distance = radius / math.Sin(theta/2)
	c.Center = g.Add(bis.Scale(c.Distance))

	ca, cb := c.In.Sub(c.Center), c.Out.Sub(c.Center)
	c.Start = math.Atan2(ca[1], ca[0])
	c.End = math.Atan2(cb[1], cb[0])
	if ca.Cross(cb) < 0 {
		c.Start, c.End = c.End, c.Start
	}
	if math.Abs(c.End-c.Start) > math.Pi {
		if c.End > c.Start {
			c.End -= 2 * math.Pi
		} else {
			c.End += 2 * math.Pi
		}
	}
	return c, true
}

// Arc returns the arc primitive of the corner.
func (c Corner) Arc() Arc {
	return Arc{Center: c.Center, Radius: c.Radius, Start: c.Start, End: c.End}
}
