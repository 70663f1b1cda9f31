// Package render provides sinks that corner.RoundSet draws onto.
package render

import (
	"sort"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/paths"
)

// DefaultTolerance is the default maximum distance between an arc and
// the polyline that approximates it.
const DefaultTolerance = 0.01

// Plotter collects drawing into polylines, one set per layer, ready
// for a pen plotter. Arcs and circles are flattened.
type Plotter struct {
	tol    float64
	layer  corner.Layer
	layers map[corner.Layer]*paths.Paths
}

// NewPlotter returns an empty Plotter that flattens arcs to within
// tol. A tol of zero means DefaultTolerance.
func NewPlotter(tol float64) *Plotter {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &Plotter{
		tol:    tol,
		layer:  corner.LayerPath,
		layers: map[corner.Layer]*paths.Paths{},
	}
}

func (p *Plotter) current() *paths.Paths {
	ps, ok := p.layers[p.layer]
	if !ok {
		ps = &paths.Paths{}
		p.layers[p.layer] = ps
	}
	return ps
}

// end returns the last point drawn on ps.
func end(ps *paths.Paths) (paths.Vec2, bool) {
	if len(ps.P) == 0 {
		return paths.Vec2{}, false
	}
	v := ps.P[len(ps.P)-1].V
	if len(v) == 0 {
		return paths.Vec2{}, false
	}
	return v[len(v)-1], true
}

func (p *Plotter) Line(a, b paths.Vec2) {
	p.current().Line(a, b)
}

// Arc flattens the arc. It is traced from whichever end is nearer the
// last point drawn, so that line, arc, line sequences form a single
// path.
func (p *Plotter) Arc(c paths.Vec2, r, start, stop float64) {
	ps := p.current()
	a := corner.Arc{Center: c, Radius: r, Start: start, End: stop}
	if last, ok := end(ps); ok {
		a = a.From(last)
	}
	ps.Arc(a.Center, a.Radius, a.Start, a.End, p.tol)
}

func (p *Plotter) Circle(c paths.Vec2, r float64) {
	p.current().Circle(c, r, p.tol)
}

func (p *Plotter) Layer() corner.Layer     { return p.layer }
func (p *Plotter) SetLayer(l corner.Layer) { p.layer = l }

// Layers returns the layers that have been drawn on, in order.
func (p *Plotter) Layers() []corner.Layer {
	ls := make([]corner.Layer, 0, len(p.layers))
	for l := range p.layers {
		ls = append(ls, l)
	}
	sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
	return ls
}

// Paths returns the paths drawn on layer l, with bounds tightened
// around them. The result is nil if nothing was drawn on l.
func (p *Plotter) Paths(l corner.Layer) *paths.Paths {
	ps, ok := p.layers[l]
	if !ok {
		return nil
	}
	ps.TightenBounds()
	return ps
}

// Bounds returns the bounds of everything drawn on any layer.
func (p *Plotter) Bounds() paths.Bounds {
	var b paths.Bounds
	first := true
	for _, l := range p.Layers() {
		ps := p.Paths(l)
		if ps.Len() == 0 {
			continue
		}
		if first {
			b, first = ps.Bounds, false
		} else {
			b = b.Union(ps.Bounds)
		}
	}
	return b
}
