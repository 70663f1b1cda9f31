package paths

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rustyoz/svg"
)

// drawing builds paths from a stream of SVG drawing instructions.
type drawing struct {
	ps    *Paths
	start Vec2 // where the current subpath began
}

func (d *drawing) add(ins *svg.DrawingInstruction) error {
	switch ins.Kind {
	case svg.MoveInstruction:
		d.start = Vec2(*ins.M)
		d.ps.P = append(d.ps.P, Path{V: []Vec2{d.start}})
		return nil
	case svg.LineInstruction, svg.CurveInstruction, svg.CloseInstruction:
	default:
		return nil
	}
	if len(d.ps.P) == 0 {
		return errors.Errorf("drawing instruction %v before any move", ins.Kind)
	}
	switch ins.Kind {
	case svg.LineInstruction:
		d.ps.line(Vec2(*ins.M))
	case svg.CurveInstruction:
		if ins.CurvePoints == nil || ins.CurvePoints.T == nil {
			return errors.New("curve without an end point")
		}
		d.ps.line(Vec2(*ins.CurvePoints.T))
	case svg.CloseInstruction:
		v := d.ps.P[len(d.ps.P)-1].V
		if v[len(v)-1].Dist(d.start) > joinTol {
			d.ps.line(d.start)
		}
	}
	return nil
}

// FromSVGDrawing extracts paths from an SVG file using the drawing
// instructions of a full SVG parser. It understands more of the path
// syntax than FromSVG (relative commands, closepath, groups with any
// transform), at the cost of replacing curves by the straight line to
// their end point. Only path elements are read: circles, lines and
// polylines are skipped.
func FromSVGDrawing(r io.Reader) (*Paths, error) {
	doc, err := svg.ParseSvgFromReader(r, "", 1.0)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}
	d := &drawing{ps: &Paths{}}
	draw, errs := doc.ParseDrawingInstructions()
	for draw != nil {
		select {
		case err := <-errs:
			if err != nil {
				return nil, errors.Wrap(err, "reading svg drawing instructions")
			}
		case ins, ok := <-draw:
			if !ok {
				draw = nil
				break
			}
			if err := d.add(ins); err != nil {
				return nil, err
			}
		}
	}
	d.ps.TightenBounds()
	return d.ps, nil
}
