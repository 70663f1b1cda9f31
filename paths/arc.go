package paths

import "math"

// arcSteps returns how many chords are needed so that no chord of an
// arc of radius r spanning sweep radians strays more than tol from it.
func arcSteps(r, sweep, tol float64) int {
	r = math.Abs(r)
	sweep = math.Abs(sweep)
	if r <= tol || sweep == 0 {
		return 1
	}
	// a chord subtending angle s is at most r(1-cos(s/2)) from the arc.
	maxStep := 2 * math.Acos(1-tol/r)
	n := int(math.Ceil(sweep / maxStep))
	if n < 1 {
		n = 1
	}
	return n
}

// Arc adds a polyline approximation of the arc centred at c with
// radius r, going from angle start to angle end (radians). The
// direction of travel follows the sign of end-start. No point of the
// arc is further than tol from the polyline. The arc continues the
// last path if that path ends where the arc starts.
func (ps *Paths) Arc(c Vec2, r, start, end, tol float64) {
	n := arcSteps(r, end-start, tol)
	ps.move(c.Polar(r, start))
	for i := 1; i <= n; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		ps.line(c.Polar(r, a))
	}
}

// Circle adds a closed polyline approximation of the circle centred
// at c with radius r, within tolerance tol.
func (ps *Paths) Circle(c Vec2, r, tol float64) {
	n := arcSteps(r, 2*math.Pi, tol)
	if n < 4 {
		n = 4
	}
	first := c.Polar(r, 0)
	ps.P = append(ps.P, Path{V: []Vec2{first}})
	for i := 1; i < n; i++ {
		ps.line(c.Polar(r, 2*math.Pi*float64(i)/float64(n)))
	}
	ps.line(first)
}
