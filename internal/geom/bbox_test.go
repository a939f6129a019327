package geom

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestNewBBoxFirstPointSetsAllFields(t *testing.T) {
	for _, pt := range [][2]float64{
		{0, 0},
		{1.5, -2.25},
		{-1e300, 1e300},
		{math.MaxFloat64, -math.MaxFloat64},
	} {
		b := NewBBox()
		b.AddPoint(pt)
		want := BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		if b != want {
			t.Errorf("AddPoint(%v) on empty box = %+v, want %+v", pt, b, want)
		}
	}
}

func TestBBoxScenario(t *testing.T) {
	b := NewBBox()
	b.AddPoint([2]float64{1, 1})
	b.AddPoint([2]float64{-2, 5})
	b.AddPoint([2]float64{4, -3})
	want := BBox{MinX: -2, MinY: -3, MaxX: 4, MaxY: 5}
	if b != want {
		t.Fatalf("box = %+v, want %+v", b, want)
	}
	w, h := b.WidthHeight()
	if w != 6 || h != 8 {
		t.Fatalf("WidthHeight = (%v, %v), want (6, 8)", w, h)
	}
}

func TestWidthHeight(t *testing.T) {
	tests := []struct {
		name string
		pts  [][2]float64
		w, h float64
	}{
		{"origin and 3,4", [][2]float64{{0, 0}, {3, 4}}, 3, 4},
		{"single point", [][2]float64{{7, -7}}, 0, 0},
		{"repeated point", [][2]float64{{2, 2}, {2, 2}, {2, 2}}, 0, 0},
		{"fractional", [][2]float64{{0.1, 0.2}, {0.4, 0.9}}, 0.3, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := BBoxOf(tt.pts...).WidthHeight()
			if !scalar.EqualWithinAbs(w, tt.w, 1e-12) || !scalar.EqualWithinAbs(h, tt.h, 1e-12) {
				t.Errorf("WidthHeight = (%v, %v), want (%v, %v)", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestWidthHeightEmptyIsNegative(t *testing.T) {
	w, h := NewBBox().WidthHeight()
	if w >= 0 || h >= 0 {
		t.Fatalf("empty box WidthHeight = (%v, %v), want negative", w, h)
	}
}

func TestAddPointIdempotent(t *testing.T) {
	b := BBoxOf([2]float64{1, 2}, [2]float64{-3, 4})
	p := [2]float64{5, -6}
	b.AddPoint(p)
	once := b
	b.AddPoint(p)
	if b != once {
		t.Fatalf("re-adding %v changed box: %+v -> %+v", p, once, b)
	}
}

func TestAddPointMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBBox()
	for i := 0; i < 500; i++ {
		prev := b
		b.AddPoint([2]float64{rng.NormFloat64() * 100, rng.NormFloat64() * 100})
		if b.MinX > prev.MinX || b.MinY > prev.MinY || b.MaxX < prev.MaxX || b.MaxY < prev.MaxY {
			t.Fatalf("step %d shrank box: %+v -> %+v", i, prev, b)
		}
		if b.MinX > b.MaxX || b.MinY > b.MaxY {
			t.Fatalf("step %d: min exceeds max: %+v", i, b)
		}
	}
}

func TestAddPointOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := make([][2]float64, 64)
	for i := range pts {
		pts[i] = [2]float64{rng.Float64()*360 - 180, rng.Float64()*180 - 90}
	}
	want := BBoxOf(pts...)
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(pts), func(a, b int) { pts[a], pts[b] = pts[b], pts[a] })
		if got := BBoxOf(pts...); got != want {
			t.Fatalf("permutation %d: box = %+v, want %+v", i, got, want)
		}
	}
}

func TestAddPointIgnoresNaN(t *testing.T) {
	b := BBoxOf([2]float64{0, 0}, [2]float64{1, 1})
	before := b
	b.AddPoint([2]float64{math.NaN(), 10})
	b.AddPoint([2]float64{10, math.NaN()})
	if b != before {
		t.Fatalf("NaN point changed box: %+v -> %+v", before, b)
	}
	e := NewBBox()
	e.AddPoint([2]float64{math.NaN(), math.NaN()})
	if !e.IsEmpty() {
		t.Fatalf("NaN point made empty box non-empty: %+v", e)
	}
}

func TestAddPointInfinity(t *testing.T) {
	b := BBoxOf([2]float64{math.Inf(-1), 0}, [2]float64{0, math.Inf(1)})
	if !math.IsInf(b.MinX, -1) || !math.IsInf(b.MaxY, 1) {
		t.Fatalf("infinite coordinates not kept: %+v", b)
	}
}

func TestIsEmpty(t *testing.T) {
	b := NewBBox()
	if !b.IsEmpty() {
		t.Fatal("new box should be empty")
	}
	b.AddPoint([2]float64{0, 0})
	if b.IsEmpty() {
		t.Fatal("box with a point should not be empty")
	}
	if (BBox{}).IsEmpty() {
		t.Fatal("zero value is a degenerate box at the origin, not empty")
	}
}
