package paths

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// A simple test svg that contains paths and groups that have
// transforms applied to them.
var testSVG = `
<svg width="2000" height="1000">
   <path d="M 123, 456 321, 654"/>
   <g transform="translate(200, 100) scale(2)" stroke="black" fill="none">
	   <path d="M100,50 300, 200"/>
	   <g transform="translate(50,50)">
		   <path d="M 50, 50 250, 50 150, 100"/>
	   </g>
   </g>
</svg>`

func TestSVG(t *testing.T) {
	got, err := FromSVG(strings.NewReader(testSVG))
	if err != nil {
		t.Fatalf("failed to parse svg: %v", err)
	}
	want := &Paths{
		Bounds: Bounds{Max: Vec2{2000, 1000}},
		P: []Path{
			{V: []Vec2{{123, 456}, {321, 654}}},
			{V: []Vec2{{400, 200}, {800, 500}}},
			{V: []Vec2{{400, 300}, {800, 300}, {600, 400}}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("svg parse. Got:\n%v\nWant:\n%v\n", got, want)
	}
}

// TestSVGRoundTrip parses paths out of an svg, writes them back
// to a new svg file, parses the paths out of that, and then checks
// that the paths (or bounds) don't change.
func TestSVGRoundTrip(t *testing.T) {
	got, err := FromSVG(strings.NewReader(testSVG))
	if err != nil {
		t.Fatalf("failed to parse svg: %v", err)
	}
	if len(got.P) == 0 {
		t.Fatalf("expected some paths")
	}
	var bb bytes.Buffer
	if err := got.SVG(&bb); err != nil {
		t.Fatalf("failed to write back svg: %v", err)
	}
	got2, err := FromSVG(&bb)
	if err != nil {
		t.Fatalf("failed to re-parse svg: %v", err)
	}
	if !reflect.DeepEqual(got, got2) {
		t.Errorf("svg round-trip not identity. Started with:\n%v\nGot:\n%v", got, got2)
	}
}

var testSVGShapes = `
<svg width="100" height="50">
   <polyline points="0,0 10,0 10,10"/>
   <g transform="translate(-5, 5)">
      <line x1="0" y1="0" x2="5" y2="0"/>
      <path d="M 0 0 L 1 1 M 2 2 L 3 3"/>
   </g>
   <circle cx="1" cy="1" r="1"/>
</svg>`

func TestSVGShapes(t *testing.T) {
	got, err := FromSVG(strings.NewReader(testSVGShapes))
	if err != nil {
		t.Fatalf("failed to parse svg: %v", err)
	}
	want := []Path{
		{V: []Vec2{{0, 0}, {10, 0}, {10, 10}}},
		{V: []Vec2{{-5, 5}, {0, 5}}},
		{V: []Vec2{{-5, 5}, {-4, 6}}},
		{V: []Vec2{{-3, 7}, {-2, 8}}},
	}
	if !reflect.DeepEqual(got.P, want) {
		t.Errorf("svg parse. Got:\n%v\nWant:\n%v\n", got.P, want)
	}
}

func TestSVGErrors(t *testing.T) {
	cases := []string{
		`<svg width="x" height="10"></svg>`,
		`<svg width="10" height="10"><g transform="rotate(45)"><path d="M 0 0 1 1"/></g></svg>`,
		`<svg width="10" height="10"><path d="M 0 0 1"/></svg>`,
		`<svg width="10" height="10"><line x1="0" y1="0" x2="a" y2="1"/></svg>`,
		`<svg width="10" height="10"><path d="M 0 0 NaN 1"/></svg>`,
	}
	for _, c := range cases {
		if _, err := FromSVG(strings.NewReader(c)); err == nil {
			t.Errorf("FromSVG(%q) succeeded, want error", c)
		}
	}
}

func TestWriteSVGGroups(t *testing.T) {
	a := &Paths{P: []Path{{V: []Vec2{{1, 2}, {3, 4}}}}}
	b := &Paths{P: []Path{{V: []Vec2{{5, 6}, {7, 8}}}}}
	var bb bytes.Buffer
	bounds := Bounds{Max: Vec2{10, 10}}
	if err := WriteSVG(&bb, bounds, SVGGroup{Paths: a}, SVGGroup{Stroke: "red", Width: 0.05, Paths: b}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := bb.String()
	for _, want := range []string{`stroke="black" stroke-width="0.1"`, `stroke="red" stroke-width="0.05"`, `M 5.00, 6.00 7.00, 8.00`} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteSVG output missing %q:\n%s", want, out)
		}
	}
	got, err := FromSVG(&bb)
	if err != nil {
		t.Fatalf("failed to re-parse svg: %v", err)
	}
	if len(got.P) != 2 {
		t.Errorf("re-parsed %d paths, want 2", len(got.P))
	}
}
