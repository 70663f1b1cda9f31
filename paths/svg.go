package paths

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"

	"github.com/paulhankin/roundplot/internal/logging"
)

// xform is a 2d affine transform: the top two rows of a 3x3 matrix.
type xform [2][3]float64

var identity = xform{{1, 0, 0}, {0, 1, 0}}

func translate(x, y float64) xform { return xform{{1, 0, x}, {0, 1, y}} }

func scale(x, y float64) xform { return xform{{x, 0, 0}, {0, y, 0}} }

// Then returns the transform that applies o first, and then xf.
func (xf xform) Then(o xform) xform {
	var r xform
	for i := 0; i < 2; i++ {
		r[i][0] = xf[i][0]*o[0][0] + xf[i][1]*o[1][0]
		r[i][1] = xf[i][0]*o[0][1] + xf[i][1]*o[1][1]
		r[i][2] = xf[i][0]*o[0][2] + xf[i][1]*o[1][2] + xf[i][2]
	}
	return r
}

func (xf xform) Apply(v Vec2) Vec2 {
	return Vec2{
		xf[0][0]*v[0] + xf[0][1]*v[1] + xf[0][2],
		xf[1][0]*v[0] + xf[1][1]*v[1] + xf[1][2],
	}
}

func parseFloats(a []string) ([]float64, error) {
	r := make([]float64, 0, len(a))
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Errorf("%q is not a finite number", x)
		}
		r = append(r, f)
	}
	return r, nil
}

func parseSingleXform(name string, args []string) (xform, error) {
	fa, err := parseFloats(args)
	if err != nil {
		return identity, err
	}
	if len(fa) != 1 && len(fa) != 2 {
		return identity, errors.Errorf("%s should have one or two parameters: got %s", name, args)
	}
	switch name {
	case "translate":
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return translate(fa[0], fa[1]), nil
	case "scale":
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return scale(fa[0], fa[1]), nil
	}
	return identity, errors.Errorf("unknown transform function %q", name)
}

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

// parseXform parses the value of an SVG transform attribute. Only
// translate and scale are understood.
func parseXform(x string) (xform, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(x))
	xf := identity
	state := xfsName
	name := ""
	var args []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return identity, errors.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			name = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return identity, errors.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				continue
			}
			fallthrough
		case xfsArg:
			switch {
			case tok == ')':
				nxf, err := parseSingleXform(name, args)
				if err != nil {
					return identity, err
				}
				xf = xf.Then(nxf)
				state = xfsName
				args = nil
			case tok == '-':
				args = append(args, "-")
				state = xfsArg
			case tok == scanner.Float || tok == scanner.Int:
				if n := len(args); n > 0 && args[n-1] == "-" {
					args[n-1] += s.TokenText()
				} else {
					args = append(args, s.TokenText())
				}
				state = xfsMaybeComma
			default:
				return identity, errors.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return identity, errors.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}

func parseBounds(e *svgparser.Element) (Bounds, error) {
	width, err := strconv.ParseFloat(e.Attributes["width"], 64)
	if err != nil {
		return Bounds{}, errors.Wrap(err, "svg width")
	}
	height, err := strconv.ParseFloat(e.Attributes["height"], 64)
	if err != nil {
		return Bounds{}, errors.Wrap(err, "svg height")
	}
	// TODO: honour viewBox when it differs from width and height.
	return Bounds{Max: Vec2{width, height}}, nil
}

// coords parses a flat list of numbers separated by spaces and/or
// commas into points.
func coords(s string) ([]Vec2, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	fs, err := parseFloats(fields)
	if err != nil {
		return nil, err
	}
	if len(fs)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", s)
	}
	vs := make([]Vec2, 0, len(fs)/2)
	for i := 0; i < len(fs); i += 2 {
		vs = append(vs, Vec2{fs[i], fs[i+1]})
	}
	return vs, nil
}

func parseLine(ps *Paths, xf xform, e *svgparser.Element) error {
	var v [4]float64
	for i, a := range []string{"x1", "y1", "x2", "y2"} {
		f, err := strconv.ParseFloat(e.Attributes[a], 64)
		if err != nil {
			return errors.Wrapf(err, "line attribute %s", a)
		}
		v[i] = f
	}
	ps.P = append(ps.P, Path{V: []Vec2{
		xf.Apply(Vec2{v[0], v[1]}),
		xf.Apply(Vec2{v[2], v[3]}),
	}})
	return nil
}

func parsePolyline(ps *Paths, xf xform, e *svgparser.Element) error {
	vs, err := coords(e.Attributes["points"])
	if err != nil {
		return errors.Wrap(err, "polyline points")
	}
	if len(vs) == 0 {
		return nil
	}
	for i := range vs {
		vs[i] = xf.Apply(vs[i])
	}
	ps.P = append(ps.P, Path{V: vs})
	return nil
}

// parsePath understands absolute M and L commands only.
func parsePath(ps *Paths, xf xform, e *svgparser.Element) error {
	d := e.Attributes["d"]
	for _, c := range "ML" {
		d = strings.ReplaceAll(d, string(c), " "+string(c)+" ")
	}
	var nums []string
	flush := func(move bool) error {
		vs, err := coords(strings.Join(nums, " "))
		if err != nil {
			return err
		}
		nums = nil
		for i, v := range vs {
			if (move && i == 0) || len(ps.P) == 0 {
				ps.P = append(ps.P, Path{})
			}
			last := &ps.P[len(ps.P)-1]
			last.V = append(last.V, xf.Apply(v))
		}
		return nil
	}
	move := false
	for _, p := range strings.Fields(d) {
		switch p {
		case "M", "L":
			if err := flush(move); err != nil {
				return err
			}
			move = p == "M"
		default:
			nums = append(nums, p)
		}
	}
	return flush(move)
}

func parseElements(ps *Paths, xf xform, e *svgparser.Element) error {
	for _, c := range e.Children {
		var err error
		switch c.Name {
		case "g":
			var gxf xform
			if gxf, err = parseXform(c.Attributes["transform"]); err == nil {
				err = parseElements(ps, xf.Then(gxf), c)
			}
		case "path":
			err = parsePath(ps, xf, c)
		case "line":
			err = parseLine(ps, xf, c)
		case "polyline":
			err = parsePolyline(ps, xf, c)
		default:
			logging.Logger().Debug("skipping svg element", "name", c.Name)
		}
		if err != nil {
			return errors.Wrapf(err, "<%s>", c.Name)
		}
	}
	return nil
}

// FromSVG parses an SVG file, extracting paths.
// This provides only limited SVG parsing support, and
// will fail or produce incorrect results if the SVG file
// uses features that it doesn't understand.
func FromSVG(r io.Reader) (*Paths, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, errors.Wrap(err, "decoding svg")
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding svg")
	}
	bs, err := parseBounds(elt)
	if err != nil {
		return nil, err
	}
	ps := &Paths{Bounds: bs}
	return ps, parseElements(ps, identity, elt)
}

// An SVGGroup is a set of paths drawn with one stroke style.
type SVGGroup struct {
	Stroke string  // stroke colour; black if empty
	Width  float64 // stroke width; 0.1 if zero
	Paths  *Paths
}

const svgHeader = `<svg height="%g" width="%g" viewBox="%g %g %g %g" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`

// WriteSVG writes an SVG file of the given bounds, with one group
// of strokes per element of gs.
func WriteSVG(w io.Writer, b Bounds, gs ...SVGGroup) error {
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	sz := b.Size()
	wr(svgHeader, b.Max[1], b.Max[0], b.Min[0], b.Min[1], sz[0], sz[1])
	wr("\n")
	for _, g := range gs {
		stroke, width := g.Stroke, g.Width
		if stroke == "" {
			stroke = "black"
		}
		if width == 0 {
			width = 0.1
		}
		wr("<g fill=\"none\" stroke=%q stroke-width=\"%g\">\n", stroke, width)
		for _, p := range g.Paths.P {
			if len(p.V) == 0 {
				continue
			}
			wr(`<path d="`)
			for i, v := range p.V {
				if i == 0 {
					wr("M %.2f, %.2f", v[0], v[1])
				} else {
					wr(" %.2f, %.2f", v[0], v[1])
				}
			}
			wr("\"/>\n")
		}
		wr("</g>\n")
	}
	wr("</svg>\n")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	return WriteSVG(w, ps.Bounds, SVGGroup{Paths: ps})
}
