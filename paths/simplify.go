package paths

import "math"

// segmentDist returns the distance from v to the segment s-e.
func segmentDist(v, s, e Vec2) float64 {
	d := e.Sub(s)
	l2 := d.Dot(d)
	if l2 == 0 {
		return v.Dist(s)
	}
	t := math.Max(0, math.Min(1, v.Sub(s).Dot(d)/l2))
	return v.Dist(s.Add(d.Scale(t)))
}

// simplifyPath is Douglas-Peucker: keep the vertex furthest from
// the chord if it's out of tolerance, and recurse on both halves.
func simplifyPath(v []Vec2, tol float64) []Vec2 {
	if len(v) < 3 {
		return v
	}
	worst, worstD := 0, 0.0
	for i := 1; i < len(v)-1; i++ {
		if d := segmentDist(v[i], v[0], v[len(v)-1]); d > worstD {
			worst, worstD = i, d
		}
	}
	if worstD <= tol {
		return []Vec2{v[0], v[len(v)-1]}
	}
	lefts := simplifyPath(v[:worst+1], tol)
	rights := simplifyPath(v[worst:], tol)
	return append(lefts[:len(lefts):len(lefts)], rights[1:]...)
}

// Simplify removes points from paths, with the guarantee that
// all removed points are within the given tolerance (distance)
// from the new path. It returns the number of vertices removed.
func (ps *Paths) Simplify(tol float64) int {
	before := ps.Len()
	for i, p := range ps.P {
		ps.P[i].V = simplifyPath(p.V, tol)
	}
	return before - ps.Len()
}
