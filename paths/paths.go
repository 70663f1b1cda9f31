// Package paths provides tools for manipulating 2d paths consisting
// of line segments, as drawn by a pen plotter.
package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v[0] + w[0], v[1] + w[1]} }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v[0] - w[0], v[1] - w[1]} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v[0] * s, v[1] * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v[0]*w[0] + v[1]*w[1] }

// Cross returns the z component of the cross product of v and w.
func (v Vec2) Cross(w Vec2) float64 { return v[0]*w[1] - v[1]*w[0] }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v[0], v[1]) }

// Dist returns the distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return v.Sub(w).Len() }

// Unit returns v scaled to length 1, along with its original length.
// The zero vector is returned unchanged.
func (v Vec2) Unit() (Vec2, float64) {
	l := v.Len()
	if l == 0 {
		return v, 0
	}
	return v.Scale(1 / l), l
}

// Polar returns the point at angle a (radians) and distance r from v.
func (v Vec2) Polar(r, a float64) Vec2 {
	return Vec2{v[0] + r*math.Cos(a), v[1] + r*math.Sin(a)}
}

// A Path is a contiguous series of line segments, from the
// first point in the V slice to the last.
type Path struct {
	V []Vec2
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Size returns the width and height of the bounds.
func (b Bounds) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// Expand returns the bounds grown by m on every side.
func (b Bounds) Expand(m float64) Bounds {
	return Bounds{
		Min: b.Min.Sub(Vec2{m, m}),
		Max: b.Max.Add(Vec2{m, m}),
	}
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: Vec2{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1])},
		Max: Vec2{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1])},
	}
}

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// Len returns the total number of vertices over all paths.
func (ps *Paths) Len() int {
	n := 0
	for _, p := range ps.P {
		n += len(p.V)
	}
	return n
}

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	if ps.Len() == 0 {
		ps.Bounds = Bounds{}
		return
	}
	inf := math.Inf(1)
	b := Bounds{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
	for _, p := range ps.P {
		for _, v := range p.V {
			b = b.Union(Bounds{Min: v, Max: v})
		}
	}
	ps.Bounds = b
}

// Translate moves all the paths by the given amount.
func (ps *Paths) Translate(dx Vec2) {
	ps.Transform(Bounds{
		Min: ps.Bounds.Min.Add(dx),
		Max: ps.Bounds.Max.Add(dx),
	})
}

// Transform resizes all paths so that the rectangle forming the
// current bounds is the size of the new bounds. The bounds
// are also updated to the new bounds. An axis of zero extent
// is translated but not stretched.
func (ps *Paths) Transform(nb Bounds) {
	ob := ps.Bounds
	var scale Vec2
	for k := 0; k < 2; k++ {
		scale[k] = 1
		if d := ob.Max[k] - ob.Min[k]; d != 0 {
			scale[k] = (nb.Max[k] - nb.Min[k]) / d
		}
	}
	for _, p := range ps.P {
		for i, v := range p.V {
			for k := 0; k < 2; k++ {
				v[k] = (v[k]-ob.Min[k])*scale[k] + nb.Min[k]
			}
			p.V[i] = v
		}
	}
	ps.Bounds = nb
}

// Append adds copies of the paths in o to ps, without changing
// the bounds of ps.
func (ps *Paths) Append(o *Paths) {
	for _, p := range o.P {
		ps.P = append(ps.P, Path{V: append([]Vec2(nil), p.V...)})
	}
}

// joinTol is how close two points must be to count as the same
// point when deciding whether to continue a path.
const joinTol = 1e-9

// move adds a new (initially empty) path starting at x,
// unless the last path already ends at x.
func (ps *Paths) move(x Vec2) {
	if n := len(ps.P); n > 0 {
		p := &ps.P[n-1]
		if len(p.V) > 0 && p.V[len(p.V)-1].Dist(x) <= joinTol {
			return
		}
	}
	ps.P = append(ps.P, Path{V: []Vec2{x}})
}

// line extends the last path with an edge that goes to x.
func (ps *Paths) line(x Vec2) {
	p := &ps.P[len(ps.P)-1]
	p.V = append(p.V, x)
}

// Line adds the segment p-q, continuing the last path if it ends at p.
func (ps *Paths) Line(p, q Vec2) {
	ps.move(p)
	ps.line(q)
}
