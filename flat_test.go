package bezier

import (
	"math"
	"slices"
	"testing"
)

func TestFlatness(t *testing.T) {
	tests := []struct {
		pts  []Point
		want float64
	}{
		{[]Point{Pt(0, 0), Pt(1, 0)}, 0},
		{[]Point{Pt(0, 0), Pt(0.5, 1), Pt(1, 0)}, 1},
		{[]Point{Pt(0, 0), Pt(1, 2), Pt(3, -1), Pt(4, 0)}, 2},
		// Overshooting the chord counts.
		{[]Point{Pt(0, 0), Pt(2, 0), Pt(1, 0)}, 1},
		// Closed curves measure from the start point.
		{[]Point{Pt(0, 0), Pt(3, 4), Pt(0, 0)}, 5},
	}
	for _, tt := range tests {
		b := MustBez(tt.pts...)
		if got := b.Flatness(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%v: got flatness %v, want %v", b, got, tt.want)
		}
	}

	b := MustBez(Pt(0, 0), Pt(0.5, 1e-8), Pt(1, 0))
	if !b.IsFlat(1e-7) || b.IsFlat(1e-9) {
		t.Errorf("%v has flatness %g", b, b.Flatness())
	}
}

func TestFlatten(t *testing.T) {
	b := MustBez(Pt(0, 0), Pt(1, 2), Pt(3, -1), Pt(4, 0))
	const tol = 1e-3
	pts := slices.Collect(b.Flatten(tol))
	if len(pts) < 3 {
		t.Fatalf("got %d points", len(pts))
	}
	if pts[0].T != 0 || pts[0].Point != b.Start() {
		t.Errorf("first point is %v", pts[0])
	}
	if last := pts[len(pts)-1]; last.T != 1 || last.Point != b.End() {
		t.Errorf("last point is %v", last)
	}
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		if p1.T <= p0.T {
			t.Fatalf("parameters aren't increasing: %v, %v", p0, p1)
		}
		assertNear(t, p1.Point, b.Eval(p1.T), 1e-12)
		// The curve between two vertices stays close to the segment.
		seg := Line{p0.Point, p1.Point}
		for j := range 5 {
			ts := p0.T + (p1.T-p0.T)*float64(j)/4
			pt := b.Eval(ts)
			if d := pt.Distance(seg.Eval(seg.project(pt))); d > tol {
				t.Errorf("curve at %v is %g away from its polyline", ts, d)
			}
		}
	}

	// Stopping early.
	var n int
	for range b.Flatten(tol) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d times", n)
	}
}
