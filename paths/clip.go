package paths

type outcode uint

const (
	inside outcode = 0
	left   outcode = 1
	right  outcode = 2
	bottom outcode = 4
	top    outcode = 8
)

func (b Bounds) outcode(v Vec2) outcode {
	var c outcode
	switch {
	case v[0] < b.Min[0]:
		c |= left
	case v[0] > b.Max[0]:
		c |= right
	}
	switch {
	case v[1] < b.Min[1]:
		c |= bottom
	case v[1] > b.Max[1]:
		c |= top
	}
	return c
}

// Contains reports whether v lies inside or on the edge of b.
func (b Bounds) Contains(v Vec2) bool {
	return b.outcode(v) == inside
}

// edgePoint returns where the segment v0-v1 crosses the boundary
// edge named by oc.
func (b Bounds) edgePoint(v0, v1 Vec2, oc outcode) Vec2 {
	d := v1.Sub(v0)
	switch {
	case oc&top != 0:
		return Vec2{v0[0] + d[0]*(b.Max[1]-v0[1])/d[1], b.Max[1]}
	case oc&bottom != 0:
		return Vec2{v0[0] + d[0]*(b.Min[1]-v0[1])/d[1], b.Min[1]}
	case oc&right != 0:
		return Vec2{b.Max[0], v0[1] + d[1]*(b.Max[0]-v0[0])/d[0]}
	default:
		return Vec2{b.Min[0], v0[1] + d[1]*(b.Min[0]-v0[0])/d[0]}
	}
}

// clipLine clips the segment v0-v1 to b, using the Cohen-Sutherland
// algorithm. It reports false if no part of the segment is inside.
func (b Bounds) clipLine(v0, v1 Vec2) (Vec2, Vec2, bool) {
	oc0, oc1 := b.outcode(v0), b.outcode(v1)
	for {
		if oc0 == inside && oc1 == inside {
			return v0, v1, true
		}
		if oc0&oc1 != 0 {
			return v0, v1, false
		}
		if oc0 > oc1 {
			v0 = b.edgePoint(v0, v1, oc0)
			oc0 = b.outcode(v0)
		} else {
			v1 = b.edgePoint(v0, v1, oc1)
			oc1 = b.outcode(v1)
		}
	}
}

func (b Bounds) clipPath(p Path) []Path {
	var parts []Path
	cont := false
	for i := 1; i < len(p.V); i++ {
		v0, v1, ok := b.clipLine(p.V[i-1], p.V[i])
		if !ok {
			cont = false
			continue
		}
		if !cont || v0 != p.V[i-1] {
			parts = append(parts, Path{V: []Vec2{v0}})
		}
		cur := &parts[len(parts)-1]
		cur.V = append(cur.V, v1)
		cont = v1 == p.V[i]
	}
	// drop degenerate pieces with fewer than 2 vertices.
	j := 0
	for _, part := range parts {
		if len(part.V) >= 2 {
			parts[j] = part
			j++
		}
	}
	return parts[:j]
}

// Clip removes all line segments outside the given bounds.
// If a path crosses the bounds, it's broken into multiple paths.
func (ps *Paths) Clip(b Bounds) {
	var result []Path
	for _, p := range ps.P {
		result = append(result, b.clipPath(p)...)
	}
	ps.P = result
}
