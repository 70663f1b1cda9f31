package roundplot

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/paths"
)

// A Drawing is the input: polylines of control points, and the region
// they were drawn on.
type Drawing struct {
	Bounds    paths.Bounds
	Polylines [][]corner.ControlPoint
}

// ReadPoints reads polylines from a text file. Each line holds the x
// and y coordinates of a point and optionally the radius to round it
// with; radius is used when it's missing. Blank lines separate
// polylines, and text after # is ignored.
func ReadPoints(r io.Reader, radius float64) (*Drawing, error) {
	d := &Drawing{}
	var cur []corner.ControlPoint
	flush := func() {
		if len(cur) > 0 {
			d.Polylines = append(d.Polylines, cur)
			cur = nil
		}
	}
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if strings.TrimSpace(scanner.Text()) == "" {
				flush()
			}
			continue
		}
		if len(fields) != 2 && len(fields) != 3 {
			return nil, errors.Errorf("line %d: want x y [r], got %q", n, line)
		}
		var v [3]float64
		v[2] = radius
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", n)
			}
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, errors.Errorf("line %d: %q is not a finite number", n, f)
			}
			v[i] = x
		}
		cur = append(cur, corner.Pt(v[0], v[1], v[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	flush()
	d.Bounds = pointBounds(d.Polylines)
	return d, nil
}

// FromPaths makes a drawing whose polylines are the given paths, with
// every vertex rounded with radius.
func FromPaths(ps *paths.Paths, radius float64) *Drawing {
	d := &Drawing{Bounds: ps.Bounds}
	for _, p := range ps.P {
		if len(p.V) == 0 {
			continue
		}
		cps := make([]corner.ControlPoint, len(p.V))
		for i, v := range p.V {
			cps[i] = corner.ControlPoint{Pos: v, R: radius}
		}
		d.Polylines = append(d.Polylines, cps)
	}
	return d
}

func pointBounds(pls [][]corner.ControlPoint) paths.Bounds {
	ps := &paths.Paths{}
	for _, pl := range pls {
		p := paths.Path{}
		for _, cp := range pl {
			p.V = append(p.V, cp.Pos)
		}
		ps.P = append(ps.P, p)
	}
	ps.TightenBounds()
	return ps.Bounds
}

// Load reads the input file named by cfg: SVG files by extension,
// and points files otherwise.
func Load(cfg *Config) (*Drawing, error) {
	f, err := os.Open(cfg.In)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(cfg.In), ".svg") {
		return ReadPoints(f, cfg.Radius)
	}
	var ps *paths.Paths
	if cfg.FullSVG {
		ps, err = paths.FromSVGDrawing(f)
	} else {
		ps, err = paths.FromSVG(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", cfg.In)
	}
	return FromPaths(ps, cfg.Radius), nil
}
