package render

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/gcode"
	"github.com/paulhankin/roundplot/paths"
)

// rightAngle turns left: (0,0) to (10,0) to (10,10).
func rightAngle(debug bool) *corner.RoundSet {
	return corner.NewRoundSet([]corner.ControlPoint{
		corner.Pt(0, 0, 0), corner.Pt(10, 0, 2), corner.Pt(10, 10, 0),
	}, debug)
}

// rightAngleCW turns right: (0,0) to (10,0) to (10,-10).
func rightAngleCW() *corner.RoundSet {
	return corner.NewRoundSet([]corner.ControlPoint{
		corner.Pt(0, 0, 0), corner.Pt(10, 0, 2), corner.Pt(10, -10, 0),
	}, false)
}

// distToRounded returns the distance from v to the rounded right
// angle: the two straight runs and the quarter circle around c.
func distToRounded(v paths.Vec2, c paths.Vec2, turn float64) float64 {
	d := math.Inf(1)
	// straight run along y=0 from x=0 to x=8.
	if v[0] <= 8 {
		d = math.Min(d, math.Abs(v[1])+math.Max(0, -v[0]))
	}
	// straight run along x=10 from y=±2 to y=±10.
	if v[1]*turn >= 2 {
		d = math.Min(d, math.Abs(v[0]-10))
	}
	return math.Min(d, math.Abs(v.Dist(c)-2))
}

func TestPlotterSinglePath(t *testing.T) {
	cases := []struct {
		desc   string
		rs     *corner.RoundSet
		center paths.Vec2
		turn   float64
		end    paths.Vec2
	}{
		{"left turn", rightAngle(false), paths.Vec2{8, 2}, 1, paths.Vec2{10, 10}},
		{"right turn", rightAngleCW(), paths.Vec2{8, -2}, -1, paths.Vec2{10, -10}},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			p := NewPlotter(0.001)
			tc.rs.Render(p)
			assert.Equal(t, []corner.Layer{corner.LayerPath}, p.Layers())
			ps := p.Paths(corner.LayerPath)
			require.Len(t, ps.P, 1, "line, arc and line should be one pen stroke")
			v := ps.P[0].V
			assert.Equal(t, paths.Vec2{0, 0}, v[0])
			assert.Equal(t, tc.end, v[len(v)-1])
			assert.Greater(t, len(v), 4)
			for _, x := range v {
				assert.InDelta(t, 0, distToRounded(x, tc.center, tc.turn), 1e-9, "vertex %v off the rounded path", x)
			}
		})
	}
}

func TestPlotterDebugLayers(t *testing.T) {
	p := NewPlotter(0)
	rightAngle(true).Render(p)
	assert.Equal(t, []corner.Layer{corner.LayerPath, corner.LayerConstruction, corner.LayerTangent}, p.Layers())
	assert.Equal(t, corner.LayerPath, p.Layer())
	assert.Nil(t, p.Paths(corner.Layer(9)))

	b := p.Bounds()
	// markers of radius 0.1 stick out around the corner points.
	assert.InDelta(t, -0.1, b.Min[0], 0.02)
	assert.InDelta(t, 10.1, b.Max[0], 0.02)
	assert.InDelta(t, -0.1, b.Min[1], 0.02)
	assert.InDelta(t, 10.1, b.Max[1], 0.02)
}

func TestCanvas(t *testing.T) {
	b := paths.Bounds{Max: paths.Vec2{10, 10}}
	c := NewCanvas(b, 10, 5)
	rightAngle(true).Render(c)
	assert.Equal(t, corner.LayerPath, c.Layer())

	img := c.Image()
	assert.Equal(t, 110, img.Bounds().Dx())
	assert.Equal(t, 110, img.Bounds().Dy())

	// (4, 0) is on the first straight run: 5+40, 5+0 in pixels.
	r, g, bl, _ := img.At(45, 5).RGBA()
	assert.Less(t, r+g+bl, uint32(3*0x8000), "expected ink on the path")
	// the far corner of the image is untouched.
	r, g, bl, _ = img.At(108, 1).RGBA()
	assert.Equal(t, uint32(3*0xffff), r+g+bl)

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestGCodeArcs(t *testing.T) {
	cases := []struct {
		desc string
		rs   *corner.RoundSet
		want []string
	}{
		{"left turn", rightAngle(true), []string{
			"G1 X8.000 Y0.000 F800",
			"G3 X10.000 Y2.000 I",
			"J2.000 F800",
			"G1 X10.000 Y10.000 F800",
		}},
		{"right turn", rightAngleCW(), []string{
			"G1 X8.000 Y0.000 F800",
			"G2 X10.000 Y-2.000 I",
			"J-2.000 F800",
			"G1 X10.000 Y-10.000 F800",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			var buf bytes.Buffer
			gw := gcode.NewWriter(&buf, &gcode.Config{PenUp: 40, FeedRate: 800})
			tc.rs.Render(NewGCode(gw))
			require.NoError(t, gw.Flush())
			out := buf.String()
			for _, w := range tc.want {
				assert.Contains(t, out, w)
			}
			assert.Equal(t, 1, strings.Count(out, "G0 "), "pen should be lowered once:\n%s", out)
			assert.NotContains(t, out, "G2 X10.000 Y10.000")
		})
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrace(&buf, false)
	rightAngle(true).Render(tr)
	require.NoError(t, tr.Err())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 3 markers and labels, 2 reference lines, construction circle,
	// 2 tangent markers, bisector, then the path.
	require.Len(t, lines, 15)
	assert.True(t, strings.HasPrefix(lines[0], "construction circle c=(0.000, 0.000) r=0.100"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `construction label "0"`), lines[1])
	assert.True(t, strings.HasPrefix(lines[9], "tangent"), lines[9])
	assert.Equal(t, "path         line (0.000, 0.000) -> (8.000, 0.000)", lines[12])
	assert.True(t, strings.HasPrefix(lines[13], "path         arc c=(8.000, 2.000) r=2.000"), lines[13])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTraceColor(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrace(&buf, true)
	rightAngle(false).Render(tr)
	assert.Contains(t, buf.String(), "\x1b[")
}
