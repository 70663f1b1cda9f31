package paths

import (
	"math"
	"sort"
)

// SortConfig controls how Sort may rearrange paths.
type SortConfig struct {
	Split   bool // ok to split continuous paths
	Reverse bool // ok to draw paths in the reverse direction
}

// A stroke is a run of one path that the pen draws without lifting,
// from vertex start to vertex end (which may be before start when the
// run is drawn backwards).
type stroke struct {
	path       int
	start, end int
}

func (s stroke) reversed() stroke {
	s.start, s.end = s.end, s.start
	return s
}

// kdNode is a node of a 2d tree over stroke start points. Leaves
// hold up to leafSize strokes and have no children.
type kdNode struct {
	pos         Vec2
	s           stroke
	axis        int
	left, right *kdNode
	leaf        []stroke
}

const leafSize = 20

// strokeIndex finds the nearest not-yet-drawn stroke to a point.
type strokeIndex struct {
	ps    *Paths
	minR  float64
	avail map[stroke]bool
	root  *kdNode
}

func (si *strokeIndex) startOf(s stroke) Vec2 {
	return si.ps.P[s.path].V[s.start]
}

func (si *strokeIndex) build(ss []stroke, axis int) *kdNode {
	if len(ss) == 0 {
		return nil
	}
	if len(ss) < leafSize {
		return &kdNode{leaf: append([]stroke(nil), ss...)}
	}
	sort.Slice(ss, func(i, j int) bool {
		return si.startOf(ss[i])[axis] < si.startOf(ss[j])[axis]
	})
	k := len(ss) / 2
	return &kdNode{
		pos:   si.startOf(ss[k]),
		s:     ss[k],
		axis:  axis,
		left:  si.build(ss[:k], 1-axis),
		right: si.build(ss[k+1:], 1-axis),
	}
}

func newStrokeIndex(ps *Paths, ss []stroke, minR float64) *strokeIndex {
	si := &strokeIndex{
		ps:    ps,
		minR:  minR,
		avail: make(map[stroke]bool, len(ss)),
	}
	for _, s := range ss {
		si.avail[s] = true
	}
	si.root = si.build(ss, 0)
	return si
}

type candidate struct {
	dist float64
	s    stroke
}

// boundsDist returns the distance from v to the nearest point of b.
func boundsDist(v Vec2, b Bounds) float64 {
	c := Vec2{
		math.Min(math.Max(v[0], b.Min[0]), b.Max[0]),
		math.Min(math.Max(v[1], b.Min[1]), b.Max[1]),
	}
	return v.Dist(c)
}

func (si *strokeIndex) consider(cand []candidate, s stroke, pos Vec2, r float64) []candidate {
	if !si.avail[s] {
		return cand
	}
	if d := si.startOf(s).Dist(pos); d <= r {
		cand = append(cand, candidate{dist: d, s: s})
	}
	return cand
}

// within returns the available strokes starting within r of pos.
// b is the region of the plane covered by n.
func (si *strokeIndex) within(n *kdNode, pos Vec2, r float64, b Bounds) []candidate {
	if n == nil {
		return nil
	}
	var cand []candidate
	if n.leaf != nil {
		for _, s := range n.leaf {
			cand = si.consider(cand, s, pos, r)
		}
		return cand
	}
	cand = si.consider(cand, n.s, pos, r)

	lb, rb := b, b
	lb.Max[n.axis] = n.pos[n.axis]
	rb.Min[n.axis] = n.pos[n.axis]
	near, far, nb, fb := n.left, n.right, lb, rb
	if pos[n.axis] > n.pos[n.axis] {
		near, far, nb, fb = n.right, n.left, rb, lb
	}
	cand = append(cand, si.within(near, pos, r, nb)...)
	if math.Abs(pos[n.axis]-n.pos[n.axis]) <= r && boundsDist(pos, fb) <= r {
		cand = append(cand, si.within(far, pos, r, fb)...)
	}
	return cand
}

// take removes s and its reverse from the available strokes.
func (si *strokeIndex) take(s stroke) stroke {
	delete(si.avail, s)
	delete(si.avail, s.reversed())
	return s
}

// popAny removes and returns the first available stroke in path
// order. It is used when no distance to pos is meaningful, for example
// when pos or the stroke starts aren't finite.
func (si *strokeIndex) popAny() stroke {
	less := func(a, b stroke) bool {
		if a.path != b.path {
			return a.path < b.path
		}
		if a.start != b.start {
			return a.start < b.start
		}
		return a.end < b.end
	}
	var best stroke
	found := false
	for s := range si.avail {
		if !found || less(s, best) {
			best, found = s, true
		}
	}
	return si.take(best)
}

// popNearest removes and returns the available stroke starting
// closest to pos. Its reverse is removed too. It must only be called
// while some stroke is available.
func (si *strokeIndex) popNearest(pos Vec2) stroke {
	const huge = 1e19
	everywhere := Bounds{Min: Vec2{-huge, -huge}, Max: Vec2{huge, huge}}
	for r := si.minR; r <= 4*huge; r *= 2 {
		cand := si.within(si.root, pos, r, everywhere)
		if len(cand) == 0 {
			continue
		}
		best := cand[0]
		for _, c := range cand[1:] {
			if c.dist < best.dist {
				best = c
			}
		}
		return si.take(best.s)
	}
	return si.popAny()
}

func (ps *Paths) strokes(cfg *SortConfig) []stroke {
	var ss []stroke
	add := func(s stroke) {
		ss = append(ss, s)
		if cfg.Reverse {
			ss = append(ss, s.reversed())
		}
	}
	for i, p := range ps.P {
		if len(p.V) < 2 {
			continue
		}
		if !cfg.Split {
			add(stroke{i, 0, len(p.V) - 1})
			continue
		}
		for j := 0; j+1 < len(p.V); j++ {
			add(stroke{i, j, j + 1})
		}
	}
	return ss
}

// Sort reorders (and depending on cfg, splits and reverses) the paths
// to reduce the distance the pen travels while lifted, by greedily
// drawing the nearest remaining stroke next, starting from the origin.
func (ps *Paths) Sort(cfg *SortConfig) {
	ss := ps.strokes(cfg)
	want := len(ss)
	if cfg.Reverse {
		want /= 2
	}
	minR := ps.Bounds.Size()[0] / 100
	if !(minR > 0) || math.IsInf(minR, 0) {
		minR = 1
	}
	si := newStrokeIndex(ps, ss, minR)

	np := &Paths{Bounds: ps.Bounds}
	var pos Vec2
	for i := 0; i < want; i++ {
		s := si.popNearest(pos)
		d := 1
		if s.end < s.start {
			d = -1
		}
		for k := s.start; k != s.end; k += d {
			np.Line(ps.P[s.path].V[k], ps.P[s.path].V[k+d])
		}
		pos = ps.P[s.path].V[s.end]
	}
	*ps = *np
}
