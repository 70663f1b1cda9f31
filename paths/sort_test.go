package paths

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

// moved computes the move distance of a pen (excluding draw distance).
func moved(ps *Paths) float64 {
	d := 0.0
	var last Vec2
	for _, p := range ps.P {
		d += last.Dist(p.V[0])
		last = p.V[len(p.V)-1]
	}
	return d
}

type testSortCase struct {
	desc        string
	paths       *Paths
	cfg         *SortConfig
	wantMaxMove float64
}

func testSortRandom() testSortCase {
	ps := &Paths{Bounds: Bounds{Min: Vec2{-1000, -1000}, Max: Vec2{1000, 1000}}}
	const N = 100
	for i := 0; i < N; i++ {
		randStart := Vec2{rand.Float64()*2000 - 1000, rand.Float64()*2000 - 1000}
		randEnd := Vec2{rand.Float64()*2000 - 1000, rand.Float64()*2000 - 1000}
		randLine := Path{V: []Vec2{randStart, randEnd}}
		ps.P = append(ps.P, randLine)
	}
	return testSortCase{
		desc:        fmt.Sprintf("%d random lines", N),
		paths:       ps,
		cfg:         &SortConfig{},
		wantMaxMove: 0.5,
	}
}

// testSortReversed has lines laid out so that drawing each one
// backwards saves most of the travel.
func testSortReversed() testSortCase {
	ps := &Paths{Bounds: Bounds{Max: Vec2{1000, 1000}}}
	for i := 0; i < 10; i++ {
		y := float64(i * 100)
		ps.P = append(ps.P, Path{V: []Vec2{{1000, y}, {0, y}}})
	}
	return testSortCase{
		desc:        "reversible parallel lines",
		paths:       ps,
		cfg:         &SortConfig{Reverse: true},
		wantMaxMove: 0.2,
	}
}

func TestSort(t *testing.T) {
	cases := []testSortCase{
		testSortRandom(),
		testSortReversed(),
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			mvd0 := moved(tc.paths)
			N := len(tc.paths.P)
			tc.paths.Sort(tc.cfg)
			mvd1 := moved(tc.paths)
			if !(mvd1 < tc.wantMaxMove*mvd0) {
				t.Errorf("got move distance %f, want at most %f", mvd1, mvd0*tc.wantMaxMove)
			}
			if len(tc.paths.P) != N {
				// In theory, we could end up with less paths than we started with if the
				// end-point of one matches the start-point of another. It's not very likely
				// though.
				t.Errorf("started with %d paths, ended with %d paths", N, len(tc.paths.P))
			}
		})
	}
}

func TestSortSplitKeepsSegments(t *testing.T) {
	ps := &Paths{
		Bounds: Bounds{Max: Vec2{10, 10}},
		P: []Path{
			{V: []Vec2{{9, 9}, {9, 0}, {0, 0}}},
			{V: []Vec2{{1, 1}, {2, 2}}},
		},
	}
	ps.Sort(&SortConfig{Split: true, Reverse: true})
	segs := 0
	for _, p := range ps.P {
		segs += len(p.V) - 1
	}
	if segs != 3 {
		t.Errorf("after sort got %d segments, want 3: %v", segs, ps.P)
	}
	if first := ps.P[0].V[0]; first != (Vec2{0, 0}) {
		t.Errorf("sorted paths start at %v, want the vertex nearest the origin", first)
	}
}

func TestSortNonFinite(t *testing.T) {
	nan := math.NaN()
	for _, cfg := range []*SortConfig{{}, {Reverse: true}, {Split: true, Reverse: true}} {
		ps := &Paths{P: []Path{
			{V: []Vec2{{0, 0}, {nan, 0}, {10, 10}}},
			{V: []Vec2{{5, 5}, {6, 6}}},
		}}
		ps.TightenBounds()
		ps.Sort(cfg)
		segs := 0
		for _, p := range ps.P {
			segs += len(p.V) - 1
		}
		if segs != 3 {
			t.Errorf("Sort(%+v) left %d segments, want 3: %v", *cfg, segs, ps.P)
		}
	}
}
