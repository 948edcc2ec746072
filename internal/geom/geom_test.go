package geom

import (
	"math"
	"testing"
)

func approxEq(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name     string
		cur, tgt Vec3
		step     float64
		want     Vec3
	}{
		{"partial step", Vec3{}, Vec3{X: 2}, 0.01, Vec3{X: 0.01}},
		{"lands on target", Vec3{}, Vec3{X: 0.005}, 0.01, Vec3{X: 0.005}},
		{"exact distance", Vec3{}, Vec3{Y: 1}, 1, Vec3{Y: 1}},
		{"already there", Vec3{X: 1}, Vec3{X: 1}, 0.5, Vec3{X: 1}},
		{"diagonal", Vec3{}, Vec3{X: 3, Z: 4}, 1, Vec3{X: 0.6, Z: 0.8}},
		{"zero step", Vec3{}, Vec3{X: 1}, 0, Vec3{}},
	}
	for _, c := range cases {
		got := MoveTowards(c.cur, c.tgt, c.step)
		if !approxEq(got, c.want) {
			t.Fatalf("%s: got %+v want %+v", c.name, got, c.want)
		}
	}
}

func TestBoundsContainsAndClosest(t *testing.T) {
	b := BoundsMinMax(Vec3{-5, 0, -1}, Vec3{5, 4, 1})
	if !b.Contains(Vec3{5, 2, 0}) {
		t.Fatalf("face point should be inside")
	}
	if b.Contains(Vec3{5.9, 2, 0}) {
		t.Fatalf("outside point reported inside")
	}
	if got := b.ClosestPoint(Vec3{5.9, 3, 0}); !approxEq(got, Vec3{5, 3, 0}) {
		t.Fatalf("closest=%+v", got)
	}
	if got := b.ClosestPoint(Vec3{1, 1, 0}); !approxEq(got, Vec3{1, 1, 0}) {
		t.Fatalf("inside point moved: %+v", got)
	}
}

func TestSegmentHit(t *testing.T) {
	box := Bounds{Center: Vec3{2, 0.5, 0}, Extents: Vec3{0.5, 0.5, 0.5}}
	tt, ok := box.SegmentHit(Vec3{2, 3, 0}, Vec3{2, 0, 0})
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(tt-2.0/3.0) > 1e-9 {
		t.Fatalf("t=%v", tt)
	}
	if _, ok := box.SegmentHit(Vec3{4, 3, 0}, Vec3{4, 0, 0}); ok {
		t.Fatalf("expected miss")
	}
	if _, ok := box.SegmentHit(Vec3{2, 3, 0}, Vec3{2, 2, 0}); ok {
		t.Fatalf("segment ends above box; expected miss")
	}
}
