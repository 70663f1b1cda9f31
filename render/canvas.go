package render

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/paths"
)

// Style is how a layer is stroked on a Canvas.
type Style struct {
	R, G, B float64 // colour components, 0 to 1
	Width   float64 // line width in pixels
}

// DefaultStyles are the Canvas styles of the standard layers.
var DefaultStyles = map[corner.Layer]Style{
	corner.LayerPath:         {0, 0, 0, 2},
	corner.LayerConstruction: {0.2, 0.4, 1, 1},
	corner.LayerTangent:      {0.9, 0.1, 0.1, 1},
}

// Canvas renders to a raster image, for previewing.
type Canvas struct {
	dc     *gg.Context
	layer  corner.Layer
	Styles map[corner.Layer]Style
}

// NewCanvas returns a white canvas showing the region b at the given
// scale (pixels per drawing unit), with a margin of blank pixels on
// every side.
func NewCanvas(b paths.Bounds, scale float64, margin int) *Canvas {
	size := b.Size()
	w := int(math.Ceil(size[0]*scale)) + 2*margin
	h := int(math.Ceil(size[1]*scale)) + 2*margin
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Translate(float64(margin), float64(margin))
	dc.Scale(scale, scale)
	dc.Translate(-b.Min[0], -b.Min[1])
	dc.SetFontFace(basicfont.Face7x13)

	c := &Canvas{dc: dc, Styles: DefaultStyles}
	c.SetLayer(corner.LayerPath)
	return c
}

func (c *Canvas) Line(p, q paths.Vec2) {
	c.dc.DrawLine(p[0], p[1], q[0], q[1])
	c.dc.Stroke()
}

func (c *Canvas) Arc(center paths.Vec2, r, start, end float64) {
	c.dc.NewSubPath()
	c.dc.DrawArc(center[0], center[1], r, start, end)
	c.dc.Stroke()
}

func (c *Canvas) Circle(center paths.Vec2, r float64) {
	c.dc.DrawCircle(center[0], center[1], r)
	c.dc.Stroke()
}

// Label writes text just below and to the right of p. The text is
// drawn at the font's pixel size whatever the canvas scale.
func (c *Canvas) Label(p paths.Vec2, text string) {
	x, y := c.dc.TransformPoint(p[0], p[1])
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.Identity()
	c.dc.DrawStringAnchored(text, x, y, -0.3, 1.2)
}

func (c *Canvas) Layer() corner.Layer { return c.layer }

// SetLayer switches to the layer's style. Layers without a style are
// drawn like the path layer.
func (c *Canvas) SetLayer(l corner.Layer) {
	c.layer = l
	st, ok := c.Styles[l]
	if !ok {
		st = c.Styles[corner.LayerPath]
	}
	c.dc.SetRGB(st.R, st.G, st.B)
	c.dc.SetLineWidth(st.Width)
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the image to w as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the image to the named file as a PNG.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
