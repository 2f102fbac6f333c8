package bezier

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewBez(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 2), Pt(2, 0)}
	b, err := NewBez(pts...)
	if err != nil {
		t.Fatal(err)
	}
	pts[1] = Pt(5, 5)
	if b.ControlPoints()[1] != Pt(1, 2) {
		t.Error("NewBez doesn't copy its input")
	}
	if b.Degree() != 2 {
		t.Errorf("got degree %d, want 2", b.Degree())
	}

	a, err := AdoptBez(pts)
	if err != nil {
		t.Fatal(err)
	}
	pts[1] = Pt(1, 2)
	if a.ControlPoints()[1] != Pt(1, 2) {
		t.Error("AdoptBez copied its input")
	}

	invalid := [][]Point{
		nil,
		{Pt(1, 1)},
		{Pt(1, 1), Pt(1, 1), Pt(1, 1)},
		{Pt(0, 0), Pt(math.NaN(), 0)},
		{Pt(0, 0), Pt(0, math.Inf(-1))},
	}
	for _, pts := range invalid {
		if _, err := NewBez(pts...); !errors.Is(err, ErrDegenerateCurve) {
			t.Errorf("%v: got error %v, want %v", pts, err, ErrDegenerateCurve)
		}
	}
}

func TestBezEval(t *testing.T) {
	c := CubicBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)}
	b := c.Bez()
	const n = 16
	for i := range n + 1 {
		ts := float64(i) / n
		assertNear(t, c.Eval(ts), b.Eval(ts), 1e-12)
		if d := c.Deriv(ts).Sub(b.Deriv(ts)).Hypot(); d > 1e-12 {
			t.Errorf("derivatives at %v differ by %g", ts, d)
		}
	}
	if b.Eval(0) != c.P0 || b.Eval(1) != c.P3 {
		t.Error("end points aren't reproduced exactly")
	}

	// Degrees beyond the inline buffer.
	pts := make([]Point, 2*maxInlineDegree)
	for i := range pts {
		pts[i] = Pt(float64(i), 0)
	}
	long := MustBez(pts...)
	assertNear(t, long.Eval(0.5), Pt(float64(len(pts)-1)/2, 0), 1e-9)
	if d := long.Deriv(0.3); math.Abs(d.X-float64(len(pts)-1)) > 1e-9 || d.Y != 0 {
		t.Errorf("got derivative %v", d)
	}
}

func TestBezHodograph(t *testing.T) {
	b := MustBez(Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0))
	h := b.Hodograph()
	diff(t, []Point{Pt(3, 6), Pt(6, 3), Pt(3, -9)}, h.ControlPoints())
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, Point(b.Deriv(ts)), h.Eval(ts), 1e-12)
	}
	if h := MustBez(Pt(0, 0), Pt(2, 1)).Hodograph(); h.Degree() != 0 {
		t.Errorf("hodograph of a line has degree %d", h.Degree())
	}
}

func TestBezSplit(t *testing.T) {
	b := MustBez(Pt(0.1, 0.3), Pt(1.7, 2.9), Pt(3.3, -1.1), Pt(4.1, 0.7), Pt(5.9, 1.3))
	for _, at := range []float64{0.5, 0.3, 1.0 / 3.0} {
		l, r := b.Split(at)
		if l.Start() != b.Start() || r.End() != b.End() || l.End() != r.Start() {
			t.Errorf("split at %v doesn't join exactly", at)
		}
		for i := range 11 {
			ts := float64(i) / 10
			assertNear(t, l.Eval(ts), b.Eval(ts*at), 1e-12)
			assertNear(t, r.Eval(ts), b.Eval(at+ts*(1-at)), 1e-12)
		}
	}

	s := b.Subsegment(0.2, 0.7)
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, s.Eval(ts), b.Eval(0.2+ts*0.5), 1e-12)
	}
	rev := b.Subsegment(0.7, 0.2)
	assertNear(t, rev.Start(), b.Eval(0.7), 1e-12)
	assertNear(t, rev.End(), b.Eval(0.2), 1e-12)

	if s := b.Subsegment(1, 1); s.Start() != b.End() || s.End() != b.End() {
		t.Errorf("empty subsegment at the end is %v", s)
	}
	diff(t, b.ControlPoints(), b.Subsegment(0, 1).ControlPoints())
}

func TestBezReverse(t *testing.T) {
	b := MustBez(Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0))
	r := b.Reverse()
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, r.Eval(ts), b.Eval(1-ts), 1e-12)
	}
	if b.ControlPoints()[0] != Pt(0, 0) {
		t.Error("Reverse modified its receiver")
	}
}

func TestBezBoxes(t *testing.T) {
	b := MustBez(Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0))
	diff(t, Rect{0, 0, 4, 3}, b.ControlBox())

	tight := b.BoundingBox()
	if tight.X0 != 0 || tight.X1 != 4 || tight.Y0 != 0 {
		t.Errorf("got bounding box %v", tight)
	}
	var maxY float64
	for i := range 1001 {
		maxY = max(maxY, b.Eval(float64(i)/1000).Y)
	}
	if math.Abs(tight.Y1-maxY) > 1e-6 {
		t.Errorf("bounding box reaches %v, curve reaches %v", tight.Y1, maxY)
	}

	ex := MustBez(Pt(0, 0), Pt(1, 4), Pt(2, 0), Pt(3, 4), Pt(4, 0)).Extrema()
	for i := 1; i < len(ex); i++ {
		if ex[i] <= ex[i-1] {
			t.Errorf("extrema %v aren't sorted", ex)
		}
	}
	if len(ex) != 3 {
		t.Fatalf("got extrema %v, expected 3", ex)
	}
	diff(t, 0.5, ex[1], cmpopts.EquateApprox(0, 1e-12))
}

func TestBezTransform(t *testing.T) {
	b := MustBez(Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0))
	aff := Rotate(0.7).ThenTranslate(Vec(1, 1))
	tb := b.Transform(aff)
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, tb.Eval(ts), b.Eval(ts).Transform(aff), 1e-12)
	}
	moved := b.Translate(Vec(1, -1))
	diff(t, Pt(1, -1), moved.Start())
	diff(t, Pt(5, -1), moved.End())
}
