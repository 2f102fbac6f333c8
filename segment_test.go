package bezier

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// segment is implemented by the fixed-degree curve types.
type segment interface {
	Curve
	Bez() Bez
	BoundingBox() Rect
}

func TestSegmentsAgreeWithBez(t *testing.T) {
	segs := []segment{
		Line{Pt(-2, 1), Pt(3, 0.5)},
		QuadBez{Pt(3.1, 4.1), Pt(5.9, 2.6), Pt(5.3, 5.8)},
		CubicBez{Pt(0, -10), Pt(10, 20), Pt(20, -20), Pt(30, 10)},
	}
	for _, s := range segs {
		b := s.Bez()
		if b.Start() != s.Start() || b.End() != s.End() {
			t.Errorf("%v: end points differ from %v", s, b)
		}
		for i := range 17 {
			u := float64(i) / 16
			assertNear(t, s.Eval(u), b.Eval(u), 1e-12)
			if d := s.Deriv(u).Sub(b.Deriv(u)).Hypot(); d > 1e-12 {
				t.Errorf("%v: derivative at %v differs by %g", s, u, d)
			}
		}
		diff(t, b.BoundingBox(), s.BoundingBox())
	}
}

func TestSegmentDerivatives(t *testing.T) {
	check := func(name string, s Curve) {
		t.Helper()
		const delta = 1e-7
		for i := range 11 {
			u := float64(i) / 10
			approx := s.Eval(u + delta).Sub(s.Eval(u)).Mul(1 / delta)
			if d := s.Deriv(u).Sub(approx).Hypot(); d > 1e-5 {
				t.Errorf("%s: derivative at %v is off by %g", name, u, d)
			}
		}
	}
	// x = t, y = t²
	check("quadratic", QuadBez{Pt(0, 0), Pt(0.5, 0), Pt(1, 1)})
	// x = t, y = t³
	check("cubic", CubicBez{Pt(0, 0), Pt(1.0/3, 0), Pt(2.0/3, 0), Pt(1, 1)})
}

func TestSegmentSplit(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	q := QuadBez{Pt(3.1, 4.1), Pt(5.9, 2.6), Pt(5.3, 5.8)}
	ql, qr := q.Subdivide()
	assertNear(t, ql.End(), q.Eval(0.5), 1e-12)
	assertNear(t, qr.Start(), q.Eval(0.5), 1e-12)
	qs := q.Subsegment(0.1, 0.8)
	for i := range 11 {
		u := float64(i) / 10
		assertNear(t, qs.Eval(u), q.Eval(0.1+0.7*u), 1e-12)
	}

	c := CubicBez{Pt(0, -10), Pt(10, 20), Pt(20, -20), Pt(30, 10)}
	cl, cr := c.Subdivide()
	bl, br := c.Bez().Subdivide()
	diff(t, bl.ControlPoints(), cl.ControlPoints(), approx)
	diff(t, br.ControlPoints(), cr.ControlPoints(), approx)
	diff(t, CubicBez{Pt(0, -10), Pt(5, 5), Pt(10, 2.5), Pt(15, 0)}, cl, approx)
}

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{Pt(3.1, 4.1), Pt(5.9, 2.6), Pt(5.3, 5.8)}
	c := q.Raise()
	for i := range 11 {
		u := float64(i) / 10
		assertNear(t, q.Eval(u), c.Eval(u), 1e-12)
		assertNear(t, Point(q.Deriv(u)), Point(c.Deriv(u)), 1e-12)
	}
	// The inner control points lie two thirds of the way towards P1.
	diff(t, CubicBez{q.P0, Pt(4.966666666666667, 3.1), Pt(5.7, 3.666666666666667), q.P2}, c, cmpopts.EquateApprox(0, 1e-12))
}

func TestSegmentTransform(t *testing.T) {
	aff := Rotate(0.4).ThenTranslate(Vec(2, -1))
	c := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0)}
	tc := c.Transform(aff)
	q := QuadBez{Pt(0, 0), Pt(1, 2), Pt(4, 0)}
	tq := q.Transform(aff)
	for i := range 11 {
		u := float64(i) / 10
		assertNear(t, tc.Eval(u), c.Eval(u).Transform(aff), 1e-12)
		assertNear(t, tq.Eval(u), q.Eval(u).Transform(aff), 1e-12)
	}
}

func TestSegmentExtrema(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	// y = x²
	q := QuadBez{Pt(-1, 1), Pt(0, -1), Pt(1, 1)}
	diff(t, []float64{0.5}, q.Bez().Extrema(), approx)
	diff(t, Rect{-1, 0, 1, 1}, q.BoundingBox(), approx)

	// Reversing the curve mirrors the extrema.
	q = QuadBez{Pt(0, 0.5), Pt(1, 1), Pt(0.5, 0)}
	diff(t, []float64{1.0 / 3, 2.0 / 3}, q.Bez().Extrema(), approx)
	q = QuadBez{Pt(0.5, 0), Pt(1, 1), Pt(0, 0.5)}
	diff(t, []float64{1.0 / 3, 2.0 / 3}, q.Bez().Extrema(), approx)

	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	diff(t, []float64{0.5}, c.Bez().Extrema(), approx)
	c = CubicBez{Pt(0.4, 0.5), Pt(0, 1), Pt(1, 0), Pt(0.5, 0.4)}
	if ex := c.Bez().Extrema(); len(ex) != 4 {
		t.Errorf("got extrema %v, expected 4", ex)
	}
}

func TestSegmentIntersectLine(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	vLine := Line{Pt(10, -10), Pt(10, 10)}
	hLine := Line{Pt(0, 0), Pt(100, 0)}

	q := QuadBez{Pt(0, -10), Pt(10, 20), Pt(20, -10)}
	xs, n := q.IntersectLine(vLine)
	diff(t, []LineIntersection{{LineT: 0.75, SegmentT: 0.5}}, xs[:n], approx)
	if _, n := q.IntersectLine(hLine); n != 2 {
		t.Errorf("got %d intersections with the quadratic, want 2", n)
	}

	c := CubicBez{Pt(0, -10), Pt(10, 20), Pt(20, -20), Pt(30, 10)}
	xs, n = c.IntersectLine(vLine)
	diff(t, []LineIntersection{{LineT: 16.0 / 27, SegmentT: 1.0 / 3}}, xs[:n], approx)
	if _, n := c.IntersectLine(hLine); n != 3 {
		t.Errorf("got %d intersections with the cubic, want 3", n)
	}

	// A line that stops short of the curve.
	if _, n := c.IntersectLine(Line{Pt(10, -10), Pt(10, -5)}); n != 0 {
		t.Errorf("got %d intersections with a short line, want 0", n)
	}
}

func TestLocateCubic(t *testing.T) {
	// x = t, y = t³
	c := CubicBez{Pt(0, 0), Pt(1.0/3, 0), Pt(2.0/3, 0), Pt(1, 1)}.Bez()
	for i := range 11 {
		u := float64(i) / 10
		got, ok := c.Locate(Pt(u, u*u*u), 1e-9)
		if !ok {
			t.Fatalf("(%v, %v) is not on the curve", u, u*u*u)
		}
		if math.Abs(got-u) > 1e-9 {
			t.Errorf("got %v, want %v", got, u)
		}
	}
	if _, ok := c.Locate(Pt(0.5, 0.5), 1e-9); ok {
		t.Error("located a point off the curve")
	}
}
