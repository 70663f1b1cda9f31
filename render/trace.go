package render

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/paths"
)

// Trace writes a line of text for every primitive it receives, tagged
// with the layer it was drawn on.
type Trace struct {
	w     io.Writer
	au    aurora.Aurora
	layer corner.Layer
	err   error
}

// NewTrace returns a Trace writing to w, using terminal colours if
// color is set.
func NewTrace(w io.Writer, color bool) *Trace {
	return &Trace{w: w, au: aurora.NewAurora(color), layer: corner.LayerPath}
}

func (t *Trace) print(s string) {
	if t.err != nil {
		return
	}
	var v aurora.Value
	switch t.layer {
	case corner.LayerPath:
		v = t.au.Green(s)
	case corner.LayerConstruction:
		v = t.au.Cyan(s)
	case corner.LayerTangent:
		v = t.au.Red(s)
	default:
		v = t.au.Faint(s)
	}
	_, t.err = fmt.Fprintf(t.w, "%-12s %s\n", t.layer, v)
}

func (t *Trace) Line(p, q paths.Vec2) {
	t.print(corner.Segment{P: p, Q: q}.String())
}

func (t *Trace) Arc(c paths.Vec2, r, start, end float64) {
	t.print(corner.Arc{Center: c, Radius: r, Start: start, End: end}.String())
}

func (t *Trace) Circle(c paths.Vec2, r float64) {
	t.print(fmt.Sprintf("circle c=(%.3f, %.3f) r=%.3f", c[0], c[1], r))
}

func (t *Trace) Label(p paths.Vec2, text string) {
	t.print(fmt.Sprintf("label %q at (%.3f, %.3f)", text, p[0], p[1]))
}

func (t *Trace) Layer() corner.Layer     { return t.layer }
func (t *Trace) SetLayer(l corner.Layer) { t.layer = l }

// Err returns the first error writing the trace.
func (t *Trace) Err() error {
	return t.err
}
